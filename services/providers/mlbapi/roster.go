package mlbapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"

	log "github.com/sirupsen/logrus"
)

func (c *Client) boxscore(ctx context.Context, gameID int) (*boxscoreResponse, error) {
	var resp boxscoreResponse
	endpoint := fmt.Sprintf("/game/%d/boxscore", gameID)
	if err := c.f.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// playerByID finds a boxscore player record; the map is keyed "ID<playerId>"
func (t boxscoreTeam) playerByID(id int) (boxscorePlayer, bool) {
	p, ok := t.Players[fmt.Sprintf("ID%d", id)]
	return p, ok
}

// Lineups returns both teams' announced batting orders for a game, each in
// batting order with season batting lines attached.
func (c *Client) Lineups(ctx context.Context, gameID int) (away, home []providers.StatRecord, err error) {
	box, err := c.boxscore(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	away = lineupFor(box.Teams.Away)
	home = lineupFor(box.Teams.Home)
	log.Infof("%s Lineups for game %d: away %d, home %d", logcolors.LogMLB, gameID, len(away), len(home))
	return away, home, nil
}

func lineupFor(t boxscoreTeam) []providers.StatRecord {
	order := t.BattingOrder
	if len(order) == 0 {
		// Fall back to per-player battingOrder strings ("100".."900")
		type slot struct {
			pos    int
			player boxscorePlayer
		}
		var slots []slot
		for _, p := range t.Players {
			if p.BattingOrder == "" || !strings.HasSuffix(p.BattingOrder, "00") {
				continue
			}
			slots = append(slots, slot{parseNumber(p.BattingOrder), p})
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })
		out := make([]providers.StatRecord, 0, len(slots))
		for _, s := range slots {
			out = append(out, batterRecord(s.player))
		}
		return out
	}

	out := make([]providers.StatRecord, 0, len(order))
	for _, id := range order {
		if p, ok := t.playerByID(id); ok {
			out = append(out, batterRecord(p))
		}
	}
	return out
}

// BenchPlayers returns both teams' bench batters for a game in source order
func (c *Client) BenchPlayers(ctx context.Context, gameID int) (away, home []providers.StatRecord, err error) {
	box, err := c.boxscore(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	return benchFor(box.Teams.Away), benchFor(box.Teams.Home), nil
}

func benchFor(t boxscoreTeam) []providers.StatRecord {
	out := make([]providers.StatRecord, 0, len(t.Bench))
	for _, id := range t.Bench {
		if p, ok := t.playerByID(id); ok {
			out = append(out, batterRecord(p))
		}
	}
	return out
}

// Bullpen returns both teams' available relievers for a game in source order
func (c *Client) Bullpen(ctx context.Context, gameID int) (away, home []providers.BullpenPitcher, err error) {
	box, err := c.boxscore(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	return bullpenFor(box.Teams.Away), bullpenFor(box.Teams.Home), nil
}

func bullpenFor(t boxscoreTeam) []providers.BullpenPitcher {
	out := make([]providers.BullpenPitcher, 0, len(t.Bullpen))
	for _, id := range t.Bullpen {
		if p, ok := t.playerByID(id); ok {
			out = append(out, providers.BullpenPitcher{StatRecord: pitcherRecord(p)})
		}
	}
	return out
}

// Injuries returns a team's injured-list entries from its 40-man roster
func (c *Client) Injuries(ctx context.Context, team string) ([]providers.Injury, error) {
	t, ok := ByAbbr(team)
	if !ok {
		return nil, providers.NewProviderError("mlbapi", fmt.Sprintf("unknown team %q", team), nil)
	}

	var resp rosterResponse
	endpoint := fmt.Sprintf("/teams/%d/roster", t.ID)
	params := map[string]any{"rosterType": "40Man"}
	if err := c.f.GetJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}

	var injuries []providers.Injury
	for _, entry := range resp.Roster {
		if !strings.Contains(entry.Status.Description, "Injured") {
			continue
		}
		injuries = append(injuries, providers.Injury{
			PlayerName: entry.Person.FullName,
			Position:   entry.Position.Abbreviation,
			Status:     entry.Status.Description,
		})
	}

	log.Infof("%s %d injured-list entries for %s", logcolors.LogMLB, len(injuries), team)
	return injuries, nil
}
