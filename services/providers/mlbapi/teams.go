package mlbapi

import "strings"

// Team holds static metadata for one MLB club
type Team struct {
	ID       int
	Abbr     string
	FullName string
	Division string
	Venue    string
}

var teams = map[string]Team{
	// AL East
	"NYY": {147, "NYY", "New York Yankees", "AL East", "Yankee Stadium"},
	"BOS": {111, "BOS", "Boston Red Sox", "AL East", "Fenway Park"},
	"TB":  {139, "TB", "Tampa Bay Rays", "AL East", "Tropicana Field"},
	"TOR": {141, "TOR", "Toronto Blue Jays", "AL East", "Rogers Centre"},
	"BAL": {110, "BAL", "Baltimore Orioles", "AL East", "Camden Yards"},

	// AL Central
	"CLE": {114, "CLE", "Cleveland Guardians", "AL Central", "Progressive Field"},
	"MIN": {142, "MIN", "Minnesota Twins", "AL Central", "Target Field"},
	"CWS": {145, "CWS", "Chicago White Sox", "AL Central", "Guaranteed Rate Field"},
	"DET": {116, "DET", "Detroit Tigers", "AL Central", "Comerica Park"},
	"KC":  {118, "KC", "Kansas City Royals", "AL Central", "Kauffman Stadium"},

	// AL West
	"HOU": {117, "HOU", "Houston Astros", "AL West", "Minute Maid Park"},
	"TEX": {140, "TEX", "Texas Rangers", "AL West", "Globe Life Field"},
	"SEA": {136, "SEA", "Seattle Mariners", "AL West", "T-Mobile Park"},
	"LAA": {108, "LAA", "Los Angeles Angels", "AL West", "Angel Stadium"},
	"OAK": {133, "OAK", "Oakland Athletics", "AL West", "Oakland Coliseum"},

	// NL East
	"ATL": {144, "ATL", "Atlanta Braves", "NL East", "Truist Park"},
	"PHI": {143, "PHI", "Philadelphia Phillies", "NL East", "Citizens Bank Park"},
	"NYM": {121, "NYM", "New York Mets", "NL East", "Citi Field"},
	"MIA": {146, "MIA", "Miami Marlins", "NL East", "loanDepot park"},
	"WSH": {120, "WSH", "Washington Nationals", "NL East", "Nationals Park"},

	// NL Central
	"MIL": {158, "MIL", "Milwaukee Brewers", "NL Central", "American Family Field"},
	"STL": {138, "STL", "St. Louis Cardinals", "NL Central", "Busch Stadium"},
	"CHC": {112, "CHC", "Chicago Cubs", "NL Central", "Wrigley Field"},
	"CIN": {113, "CIN", "Cincinnati Reds", "NL Central", "Great American Ball Park"},
	"PIT": {134, "PIT", "Pittsburgh Pirates", "NL Central", "PNC Park"},

	// NL West
	"LAD": {119, "LAD", "Los Angeles Dodgers", "NL West", "Dodger Stadium"},
	"SD":  {135, "SD", "San Diego Padres", "NL West", "Petco Park"},
	"SF":  {137, "SF", "San Francisco Giants", "NL West", "Oracle Park"},
	"COL": {115, "COL", "Colorado Rockies", "NL West", "Coors Field"},
	"ARI": {109, "ARI", "Arizona Diamondbacks", "NL West", "Chase Field"},
}

var teamsByID = func() map[int]Team {
	m := make(map[int]Team, len(teams))
	for _, t := range teams {
		m[t.ID] = t
	}
	return m
}()

// ByAbbr looks up a team by its abbreviation (case-insensitive)
func ByAbbr(abbr string) (Team, bool) {
	t, ok := teams[strings.ToUpper(abbr)]
	return t, ok
}

// ByID looks up a team by its MLB team ID
func ByID(id int) (Team, bool) {
	t, ok := teamsByID[id]
	return t, ok
}

// AbbrForName resolves a full or partial club name ("New York Yankees",
// "Yankees") to an abbreviation. Unknown names return "".
func AbbrForName(name string) string {
	if name == "" {
		return ""
	}
	for abbr, t := range teams {
		if strings.Contains(name, nickname(t.FullName)) {
			return abbr
		}
	}
	return ""
}

// nickname returns the club name without its city ("Red Sox", "Yankees")
func nickname(fullName string) string {
	switch fullName {
	case "Boston Red Sox":
		return "Red Sox"
	case "Toronto Blue Jays":
		return "Blue Jays"
	case "Chicago White Sox":
		return "White Sox"
	}
	words := strings.Fields(fullName)
	return words[len(words)-1]
}

// Abbrs returns all team abbreviations
func Abbrs() []string {
	out := make([]string, 0, len(teams))
	for abbr := range teams {
		out = append(out, abbr)
	}
	return out
}

// DivisionTeams returns the abbreviations of every team in a division
func DivisionTeams(division string) []string {
	var out []string
	for abbr, t := range teams {
		if t.Division == division {
			out = append(out, abbr)
		}
	}
	return out
}
