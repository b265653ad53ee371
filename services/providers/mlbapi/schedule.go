package mlbapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// Schedule fetches a team's games between two dates (inclusive, YYYY-MM-DD)
func (c *Client) Schedule(ctx context.Context, team, startDate, endDate string) ([]providers.GameSummary, error) {
	t, ok := ByAbbr(team)
	if !ok {
		return nil, providers.NewProviderError("mlbapi", fmt.Sprintf("unknown team %q", team), nil)
	}

	var resp scheduleResponse
	params := map[string]any{
		"sportId":   sportID,
		"teamId":    t.ID,
		"startDate": startDate,
		"endDate":   endDate,
		"hydrate":   "probablePitcher",
	}
	if err := c.f.GetJSON(ctx, "/schedule", params, &resp); err != nil {
		return nil, err
	}

	var games []providers.GameSummary
	for _, date := range resp.Dates {
		for _, g := range date.Games {
			clock, ampm := c.localClock(g.GameDate)
			games = append(games, providers.GameSummary{
				GameID:      g.GamePk,
				GameDate:    g.OfficialDate,
				GameTime:    clock,
				AMPM:        ampm,
				Status:      g.Status.DetailedState,
				Venue:       g.Venue.Name,
				HomeTeam:    AbbrForName(g.Teams.Home.Team.Name),
				AwayTeam:    AbbrForName(g.Teams.Away.Team.Name),
				HomeScore:   g.Teams.Home.Score,
				AwayScore:   g.Teams.Away.Score,
				HomeWins:    g.Teams.Home.LeagueRecord.Wins,
				HomeLosses:  g.Teams.Home.LeagueRecord.Losses,
				AwayWins:    g.Teams.Away.LeagueRecord.Wins,
				AwayLosses:  g.Teams.Away.LeagueRecord.Losses,
				HomePitcher: g.Teams.Home.ProbablePitcher.FullName,
				AwayPitcher: g.Teams.Away.ProbablePitcher.FullName,
			})
		}
	}

	log.Infof("%s Retrieved %d games for %s (%s to %s)", logcolors.LogMLB, len(games), team, startDate, endDate)
	return games, nil
}

// SeasonCalendar returns every scheduled game for a team's season as
// ScheduleEntry rows from the team's perspective, without off-day filler.
func (c *Client) SeasonCalendar(ctx context.Context, team string, season int, today string) ([]providers.ScheduleEntry, error) {
	games, err := c.Schedule(ctx, team, fmt.Sprintf("%d-03-01", season), fmt.Sprintf("%d-11-15", season))
	if err != nil {
		return nil, err
	}

	entries := make([]providers.ScheduleEntry, 0, len(games))
	for _, g := range games {
		entries = append(entries, toScheduleEntry(g, team, today))
	}
	return entries, nil
}

// toScheduleEntry renders one game from the given team's perspective
func toScheduleEntry(g providers.GameSummary, team, today string) providers.ScheduleEntry {
	isHome := g.HomeTeam == team

	var opponent string
	var teamScore, oppScore int
	if isHome {
		opponent = "vs " + g.AwayTeam
		teamScore, oppScore = g.HomeScore, g.AwayScore
	} else {
		opponent = "@ " + g.HomeTeam
		teamScore, oppScore = g.AwayScore, g.HomeScore
	}

	var result, score string
	if strings.Contains(g.Status, "Final") {
		if teamScore > oppScore {
			result = "W"
		} else {
			result = "L"
		}
		score = fmt.Sprintf("%d-%d", teamScore, oppScore)
	}

	gameTime := ""
	if g.GameTime != "" && g.GameTime != "TBD" {
		gameTime = g.GameTime + " " + g.AMPM
	}

	return providers.ScheduleEntry{
		GameDate: g.GameDate,
		Opponent: opponent,
		Result:   result,
		Score:    score,
		Status:   g.Status,
		GameTime: gameTime,
		IsToday:  g.GameDate == today,
	}
}

// ScheduleContext builds the calendar window around a game date: every day
// in the window appears, off days as placeholder rows. The window is aligned
// to the Sunday of the game's week.
func (c *Client) ScheduleContext(ctx context.Context, team, gameDate string, weeksBefore, weeksAfter int) ([]providers.ScheduleEntry, error) {
	ref, err := time.Parse("2006-01-02", gameDate)
	if err != nil {
		return nil, providers.NewProviderError("mlbapi", fmt.Sprintf("bad game date %q", gameDate), err)
	}

	entries, err := c.SeasonCalendar(ctx, team, ref.Year(), gameDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]providers.ScheduleEntry, len(entries))
	for _, e := range entries {
		byDate[e.GameDate] = e
	}

	weekSunday := ref.AddDate(0, 0, -int(ref.Weekday()))
	start := weekSunday.AddDate(0, 0, -7*weeksBefore)
	end := weekSunday.AddDate(0, 0, 7*(weeksAfter+1)-1)

	var calendar []providers.ScheduleEntry
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		if e, ok := byDate[dateStr]; ok {
			calendar = append(calendar, e)
			continue
		}
		calendar = append(calendar, providers.ScheduleEntry{
			GameDate: dateStr,
			Status:   "OFF",
			IsToday:  dateStr == gameDate,
		})
	}
	return calendar, nil
}

// TeamRecord fetches a team's current win/loss record from the standings
func (c *Client) TeamRecord(ctx context.Context, team string, season int) (providers.TeamRecord, error) {
	t, ok := ByAbbr(team)
	if !ok {
		return providers.TeamRecord{}, providers.NewProviderError("mlbapi", fmt.Sprintf("unknown team %q", team), nil)
	}

	records, err := c.standings(ctx, season)
	if err != nil {
		return providers.TeamRecord{}, err
	}

	r, ok := records[t.Abbr]
	if !ok {
		return providers.TeamRecord{}, providers.NewProviderError("mlbapi", fmt.Sprintf("no standings entry for %s", team), nil)
	}
	return r, nil
}

// DivisionRecords fetches the records of every team in a division
func (c *Client) DivisionRecords(ctx context.Context, division string, season int) (map[string]providers.TeamRecord, error) {
	records, err := c.standings(ctx, season)
	if err != nil {
		return nil, err
	}

	out := make(map[string]providers.TeamRecord)
	for _, abbr := range DivisionTeams(division) {
		if r, ok := records[abbr]; ok {
			out[abbr] = r
		}
	}
	return out, nil
}

func (c *Client) standings(ctx context.Context, season int) (map[string]providers.TeamRecord, error) {
	var resp standingsResponse
	params := map[string]any{
		"leagueId": "103,104",
		"season":   season,
	}
	if err := c.f.GetJSON(ctx, "/standings", params, &resp); err != nil {
		return nil, err
	}

	records := make(map[string]providers.TeamRecord)
	for _, rec := range resp.Records {
		for _, tr := range rec.TeamRecords {
			t, ok := ByID(tr.Team.ID)
			if !ok {
				continue
			}
			records[t.Abbr] = providers.TeamRecord{Wins: tr.Wins, Losses: tr.Losses}
		}
	}
	return records, nil
}
