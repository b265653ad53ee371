package utils

import "strings"

// nameSuffixes are generational suffixes that are not part of a player's
// usable last name. Keys are case-folded; sources disagree on "Jr." vs "JR.".
var nameSuffixes = map[string]bool{
	"jr.": true,
	"sr.": true,
	"ii":  true,
	"iii": true,
	"iv":  true,
	"v":   true,
}

func isNameSuffix(token string) bool {
	return nameSuffixes[strings.ToLower(token)]
}

// LastName extracts the last name from a full player name, skipping
// generational suffixes ("Luis Robert Jr." -> "Robert").
func LastName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	last := parts[len(parts)-1]
	if isNameSuffix(last) && len(parts) >= 3 {
		last = parts[len(parts)-2]
	}
	return last
}

// NormalizeName folds a player name for comparison across sources:
// lowercased, suffix dropped, interior whitespace collapsed.
func NormalizeName(fullName string) string {
	parts := strings.Fields(fullName)
	filtered := parts[:0]
	for _, p := range parts {
		if isNameSuffix(p) {
			continue
		}
		filtered = append(filtered, p)
	}
	return strings.ToLower(strings.Join(filtered, " "))
}

// NormalizeOpponent strips the home/away prefix from a schedule opponent
// abbreviation ("@ BOS" or "vs BOS" -> "BOS").
func NormalizeOpponent(opp string) string {
	opp = strings.TrimPrefix(opp, "@ ")
	opp = strings.TrimPrefix(opp, "vs ")
	return strings.TrimSpace(opp)
}
