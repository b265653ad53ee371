package aggregator

import (
	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"
	"baseball-preview-go/utils"

	log "github.com/sirupsen/logrus"
)

// matchPlayer finds a record by stable player ID first, falling back to a
// normalized-name comparison (case-folded, generational suffix dropped).
// Multiple name matches take the first in source order.
func matchPlayer(records []providers.StatRecord, id int, name string) (providers.StatRecord, bool) {
	if id != 0 {
		for _, r := range records {
			if r.PlayerID == id {
				return r, true
			}
		}
	}

	normalized := utils.NormalizeName(name)
	if normalized == "" {
		return providers.StatRecord{}, false
	}

	var found *providers.StatRecord
	matches := 0
	for i := range records {
		if utils.NormalizeName(records[i].Name) == normalized {
			if found == nil {
				found = &records[i]
			}
			matches++
		}
	}
	if found == nil {
		return providers.StatRecord{}, false
	}
	if matches > 1 {
		log.Debugf("%s %d name matches for %q, using first (%d)", logcolors.LogAggregator,
			matches, name, found.PlayerID)
	}
	return *found, true
}

// re24Key is the display key for a batter's RE24 series
func re24Key(name string) string {
	return utils.LastName(name)
}
