package mlbapi

import (
	"context"
	"fmt"
	"time"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// PitcherSeasonStats fetches one pitcher's season line
func (c *Client) PitcherSeasonStats(ctx context.Context, playerID, season int) (*providers.StatRecord, error) {
	p, err := c.person(ctx, playerID, "pitching", season)
	if err != nil {
		return nil, err
	}

	rec := providers.StatRecord{
		PlayerID: p.ID,
		Name:     p.FullName,
		Age:      p.CurrentAge,
		Position: p.PrimaryPosition.Abbreviation,
		Number:   parseNumber(p.PrimaryNumber),
	}
	if s, ok := seasonSplit(p, "pitching"); ok {
		rec.Wins = s.Wins
		rec.Losses = s.Losses
		rec.ERA = parseRate(s.Era)
		rec.WHIP = parseRate(s.Whip)
		rec.KPer9 = parseRate(s.StrikeoutsPer9)
		rec.BBPer9 = parseRate(s.WalksPer9)
		rec.Innings = parseRate(s.InningsPitched)
	}
	return &rec, nil
}

// BatterSeasonStats fetches one batter's season line
func (c *Client) BatterSeasonStats(ctx context.Context, playerID, season int) (*providers.StatRecord, error) {
	p, err := c.person(ctx, playerID, "hitting", season)
	if err != nil {
		return nil, err
	}

	rec := providers.StatRecord{
		PlayerID: p.ID,
		Name:     p.FullName,
		Age:      p.CurrentAge,
		Position: p.PrimaryPosition.Abbreviation,
		Number:   parseNumber(p.PrimaryNumber),
	}
	if s, ok := seasonSplitBatting(p); ok {
		rec.Slash = slashLine(s)
		rec.HR = s.HomeRuns
		rec.RBI = s.Rbi
		rec.TB = s.TotalBase
		rec.OPS = parseRate(s.Ops)
	}
	return &rec, nil
}

func (c *Client) person(ctx context.Context, playerID int, group string, season int) (*person, error) {
	var resp peopleResponse
	endpoint := fmt.Sprintf("/people/%d", playerID)
	params := map[string]any{
		"hydrate": fmt.Sprintf("stats(group=[%s],type=[season],season=%d)", group, season),
	}
	if err := c.f.GetJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.People) == 0 {
		return nil, providers.NewProviderError("mlbapi", fmt.Sprintf("no person found for id %d", playerID), nil)
	}
	return &resp.People[0], nil
}

func seasonSplit(p *person, group string) (pitchingStats, bool) {
	for _, s := range p.Stats {
		if s.Group.DisplayName != group || s.Type.DisplayName != "season" {
			continue
		}
		if len(s.Splits) > 0 {
			return s.Splits[len(s.Splits)-1].Stat.pitchingStats, true
		}
	}
	return pitchingStats{}, false
}

func seasonSplitBatting(p *person) (battingStats, bool) {
	for _, s := range p.Stats {
		if s.Group.DisplayName != "hitting" || s.Type.DisplayName != "season" {
			continue
		}
		if len(s.Splits) > 0 {
			return s.Splits[len(s.Splits)-1].Stat.battingStats, true
		}
	}
	return battingStats{}, false
}

// LookupPlayer resolves a player name to an ID. Multiple matches return the
// first, which the API orders by relevance.
func (c *Client) LookupPlayer(ctx context.Context, name string) (int, error) {
	var resp peopleResponse
	params := map[string]any{"names": name, "sportIds": sportID}
	if err := c.f.GetJSON(ctx, "/people/search", params, &resp); err != nil {
		return 0, err
	}
	if len(resp.People) == 0 {
		return 0, providers.NewProviderError("mlbapi", fmt.Sprintf("no player found for %q", name), nil)
	}
	if len(resp.People) > 1 {
		log.Debugf("%s %d matches for %q, using %s (%d)", logcolors.LogMLB,
			len(resp.People), name, resp.People[0].FullName, resp.People[0].ID)
	}
	return resp.People[0].ID, nil
}

// Transactions fetches a team's roster moves over the trailing window
func (c *Client) Transactions(ctx context.Context, team, date string, daysBack int) ([]providers.Transaction, error) {
	t, ok := ByAbbr(team)
	if !ok {
		return nil, providers.NewProviderError("mlbapi", fmt.Sprintf("unknown team %q", team), nil)
	}

	end, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, providers.NewProviderError("mlbapi", fmt.Sprintf("bad date %q", date), err)
	}
	start := end.AddDate(0, 0, -daysBack)

	var resp transactionsResponse
	params := map[string]any{
		"teamId":    t.ID,
		"startDate": start.Format("2006-01-02"),
		"endDate":   date,
	}
	if err := c.f.GetJSON(ctx, "/transactions", params, &resp); err != nil {
		return nil, err
	}

	out := make([]providers.Transaction, 0, len(resp.Transactions))
	for _, tr := range resp.Transactions {
		out = append(out, providers.Transaction{
			Date:        tr.Date,
			Team:        AbbrForName(tr.ToTeam.Name),
			Description: tr.Description,
		})
	}
	return out, nil
}

// LeagueLeaders fetches the OPS leaderboard for a season
func (c *Client) LeagueLeaders(ctx context.Context, season, limit int) ([]providers.Leader, error) {
	var resp leadersResponse
	params := map[string]any{
		"leaderCategories": "onBasePlusSlugging",
		"statGroup":        "hitting",
		"sportId":          sportID,
		"season":           season,
		"limit":            limit,
	}
	if err := c.f.GetJSON(ctx, "/stats/leaders", params, &resp); err != nil {
		return nil, err
	}

	var leaders []providers.Leader
	for _, cat := range resp.LeagueLeaders {
		for _, l := range cat.Leaders {
			leaders = append(leaders, providers.Leader{
				Category: cat.LeaderCategory,
				Rank:     l.Rank,
				Name:     l.Person.FullName,
				Team:     AbbrForName(l.Team.Name),
				Value:    l.Value,
			})
		}
	}
	return leaders, nil
}
