package fangraphs

import (
	"context"
	"fmt"
	"math"
	"strings"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"
	"baseball-preview-go/utils"

	log "github.com/sirupsen/logrus"
)

// Client is the FanGraphs leaderboard adapter, used as a best-effort
// enrichment source for advanced batting stats.
type Client struct {
	f *providers.Fetcher
}

// New creates a FanGraphs client
func New(f *providers.Fetcher) *Client {
	return &Client{f: f}
}

// leaderboardResponse is the leaders JSON payload. FanGraphs uses the stat
// symbols verbatim as field names.
type leaderboardResponse struct {
	Data []leaderRow `json:"data"`
}

type leaderRow struct {
	PlayerName string  `json:"PlayerName"`
	WRCPlus    float64 `json:"wRC+"`
	BBPct      float64 `json:"BB%"`
	KPct       float64 `json:"K%"`
	ISO        float64 `json:"ISO"`
	BABIP      float64 `json:"BABIP"`
	WAR        float64 `json:"WAR"`
	Off        float64 `json:"Off"`
	Def        float64 `json:"Def"`
}

// leaderboard fetches the full-season batting leaderboard (1+ PA). The
// endpoint cache makes repeated per-player lookups cheap.
func (c *Client) leaderboard(ctx context.Context, season int) ([]leaderRow, error) {
	var resp leaderboardResponse
	params := map[string]any{
		"pos":    "all",
		"stats":  "bat",
		"lg":     "all",
		"season": season,
		"qual":   1,
		"pageitems": 2000,
	}
	if err := c.f.GetJSON(ctx, "/api/leaders/major-league/data", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// BatterAdvanced looks up one batter's advanced line by name. A batter with
// no leaderboard row returns (nil, nil): absence is not an error here.
func (c *Client) BatterAdvanced(ctx context.Context, name string, season int) (*providers.AdvancedBatting, error) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return nil, providers.NewProviderError("fangraphs", fmt.Sprintf("cannot match single-word name %q", name), nil)
	}
	first := utils.NormalizeName(parts[0])
	last := utils.NormalizeName(parts[len(parts)-1])

	rows, err := c.leaderboard(ctx, season)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		normalized := utils.NormalizeName(row.PlayerName)
		if !strings.Contains(normalized, first) || !strings.Contains(normalized, last) {
			continue
		}

		owar, dwar := splitWAR(row.WAR, row.Off, row.Def)
		return &providers.AdvancedBatting{
			WRCPlus: int(math.Round(row.WRCPlus)),
			BBPct:   row.BBPct * 100,
			KPct:    row.KPct * 100,
			ISO:     row.ISO,
			BABIP:   row.BABIP,
			OWAR:    owar,
			DWAR:    dwar,
		}, nil
	}

	log.Debugf("%s No leaderboard row for %s", logcolors.LogFangraphs, name)
	return nil, nil
}

// splitWAR apportions total WAR between offense and defense by the relative
// magnitude of the Off and Def run values. FanGraphs does not publish the
// split directly.
func splitWAR(war, off, def float64) (owar, dwar float64) {
	magnitude := math.Abs(off) + math.Abs(def)
	if magnitude == 0 {
		return war / 2, war / 2
	}
	owar = war * off / magnitude
	dwar = war - owar
	return owar, dwar
}
