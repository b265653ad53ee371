package mlbapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"baseball-preview-go/services/providers"
)

const sportID = 1

// Client is the Stats API adapter. All requests go through the shared
// cache-through fetcher; times are rendered in the configured timezone.
type Client struct {
	f   *providers.Fetcher
	loc *time.Location
}

// New creates a Stats API client
func New(f *providers.Fetcher, loc *time.Location) *Client {
	if loc == nil {
		loc = time.UTC
	}
	return &Client{f: f, loc: loc}
}

// localClock formats an RFC3339 UTC timestamp as a local clock time and
// AM/PM marker ("7:05", "PM"). Unparseable input returns ("TBD", "").
func (c *Client) localClock(rfc3339 string) (string, string) {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return "TBD", ""
	}
	local := t.In(c.loc)
	clock := strings.TrimPrefix(local.Format("3:04"), "0")
	return clock, local.Format("PM")
}

func parseRate(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseNumber(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// slashLine joins AVG/OBP/SLG as the display slash line
func slashLine(b battingStats) string {
	if b.Avg == "" && b.Obp == "" && b.Slg == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", b.Avg, b.Obp, b.Slg)
}

// batterRecord maps a boxscore player's season batting line to a StatRecord
func batterRecord(p boxscorePlayer) providers.StatRecord {
	b := p.SeasonStats.Batting
	return providers.StatRecord{
		PlayerID: p.Person.ID,
		Name:     p.Person.FullName,
		Position: p.Position.Abbreviation,
		Number:   parseNumber(p.JerseyNumber),
		Slash:    slashLine(b),
		HR:       b.HomeRuns,
		RBI:      b.Rbi,
		TB:       b.TotalBase,
		OPS:      parseRate(b.Ops),
	}
}

// pitcherRecord maps a boxscore player's season pitching line to a StatRecord
func pitcherRecord(p boxscorePlayer) providers.StatRecord {
	s := p.SeasonStats.Pitching
	return providers.StatRecord{
		PlayerID: p.Person.ID,
		Name:     p.Person.FullName,
		Position: p.Position.Abbreviation,
		Number:   parseNumber(p.JerseyNumber),
		Wins:     s.Wins,
		Losses:   s.Losses,
		ERA:      parseRate(s.Era),
		WHIP:     parseRate(s.Whip),
		KPer9:    parseRate(s.StrikeoutsPer9),
		BBPer9:   parseRate(s.WalksPer9),
		Innings:  parseRate(s.InningsPitched),
	}
}
