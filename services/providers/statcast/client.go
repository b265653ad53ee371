package statcast

import (
	"context"
	"fmt"
	"sort"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// Client is the Baseball Savant adapter. Savant serves pitch-level rows as
// CSV; the shared fetcher caches the raw body like any other endpoint.
type Client struct {
	f *providers.Fetcher
}

// New creates a Savant client
func New(f *providers.Fetcher) *Client {
	return &Client{f: f}
}

var pitchNames = map[string]string{
	"FF": "4-Seam FB",
	"SI": "Sinker",
	"FC": "Cutter",
	"SL": "Slider",
	"CU": "Curveball",
	"CH": "Changeup",
	"FS": "Splitter",
	"KN": "Knuckleball",
	"SC": "Screwball",
	"FO": "Forkball",
	"EP": "Eephus",
	"FA": "Fastball",
	"ST": "Sweeper",
	"SV": "Slurve",
}

// PitchName converts a pitch type code to its display name
func PitchName(code string) string {
	if name, ok := pitchNames[code]; ok {
		return name
	}
	return code
}

func (c *Client) searchCSV(ctx context.Context, params map[string]any) ([]pitchRow, error) {
	body, err := c.f.GetRaw(ctx, "/statcast_search/csv", params)
	if err != nil {
		return nil, err
	}
	rows, err := parsePitchCSV(body)
	if err != nil {
		return nil, providers.NewProviderError("statcast", "failed to parse csv", err)
	}
	return rows, nil
}

// PitchMix computes a pitcher's per-pitch-type usage profile for a season:
// usage share, average velocity and spin, and whiff rate per swing.
func (c *Client) PitchMix(ctx context.Context, pitcherID, season int) ([]providers.PitchMix, error) {
	rows, err := c.searchCSV(ctx, map[string]any{
		"all":                "true",
		"type":               "details",
		"player_type":        "pitcher",
		"pitchers_lookup[]":  pitcherID,
		"game_date_gt":       fmt.Sprintf("%d-03-01", season),
		"game_date_lt":       fmt.Sprintf("%d-11-15", season),
	})
	if err != nil {
		return nil, err
	}

	type agg struct {
		count     int
		totalVelo float64
		veloCount int
		totalSpin float64
		spinCount int
		swings    int
		whiffs    int
	}
	groups := make(map[string]*agg)
	total := 0
	for _, r := range rows {
		if r.PitchType == "" {
			continue
		}
		g := groups[r.PitchType]
		if g == nil {
			g = &agg{}
			groups[r.PitchType] = g
		}
		g.count++
		total++
		if r.ReleaseSpeed > 0 {
			g.totalVelo += r.ReleaseSpeed
			g.veloCount++
		}
		if r.ReleaseSpin > 0 {
			g.totalSpin += r.ReleaseSpin
			g.spinCount++
		}
		switch r.Description {
		case "swinging_strike", "swinging_strike_blocked":
			g.swings++
			g.whiffs++
		case "foul", "hit_into_play":
			g.swings++
		}
	}

	if total == 0 {
		return nil, nil
	}

	var mix []providers.PitchMix
	for code, g := range groups {
		m := providers.PitchMix{
			PitchType: PitchName(code),
			UsagePct:  float64(g.count) / float64(total) * 100,
		}
		if g.veloCount > 0 {
			m.AvgVelocity = g.totalVelo / float64(g.veloCount)
		}
		if g.spinCount > 0 {
			m.AvgSpin = g.totalSpin / float64(g.spinCount)
		}
		if g.swings > 0 {
			m.WhiffPct = float64(g.whiffs) / float64(g.swings) * 100
		}
		mix = append(mix, m)
	}

	sort.Slice(mix, func(i, j int) bool {
		if mix[i].UsagePct != mix[j].UsagePct {
			return mix[i].UsagePct > mix[j].UsagePct
		}
		return mix[i].PitchType < mix[j].PitchType
	})

	log.Infof("%s Pitch mix for %d: %d pitch types from %d pitches", logcolors.LogStatcast, pitcherID, len(mix), total)
	return mix, nil
}

// BatterGameRE24 reduces a batter's pitch-level run-expectancy deltas to
// per-game totals, ordered by game date. Rows without a delta (automatic
// balls and strikes) are dropped; each distinct at-bat counts one PA.
func (c *Client) BatterGameRE24(ctx context.Context, batterID int, startDate, endDate string) ([]providers.GameRE24, error) {
	rows, err := c.searchCSV(ctx, map[string]any{
		"all":              "true",
		"type":             "details",
		"player_type":      "batter",
		"batters_lookup[]": batterID,
		"game_date_gt":     startDate,
		"game_date_lt":     endDate,
	})
	if err != nil {
		return nil, err
	}

	type gameAgg struct {
		date    string
		re24    float64
		atBats  map[int]bool
	}
	games := make(map[int]*gameAgg)
	for _, r := range rows {
		if !r.HasDelta {
			continue
		}
		g := games[r.GamePk]
		if g == nil {
			g = &gameAgg{date: r.GameDate, atBats: make(map[int]bool)}
			games[r.GamePk] = g
		}
		g.re24 += r.DeltaRunExp
		g.atBats[r.AtBatNumber] = true
	}

	out := make([]providers.GameRE24, 0, len(games))
	for pk, g := range games {
		out = append(out, providers.GameRE24{
			GameID:   pk,
			GameDate: g.date,
			RE24:     g.re24,
			PA:       len(g.atBats),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameDate != out[j].GameDate {
			return out[i].GameDate < out[j].GameDate
		}
		return out[i].GameID < out[j].GameID
	})

	log.Infof("%s RE24 for batter %d: %d games", logcolors.LogStatcast, batterID, len(out))
	return out, nil
}
