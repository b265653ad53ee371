package aggregator

import (
	"context"
	"fmt"
	"time"

	"baseball-preview-go/bundle"
	"baseball-preview-go/logcolors"
	"baseball-preview-go/metrics"
	"baseball-preview-go/services/providers"
	"baseball-preview-go/services/providers/mlbapi"
	"baseball-preview-go/stats"

	log "github.com/sirupsen/logrus"
)

// GameSource is the official stats adapter surface the aggregator consumes
type GameSource interface {
	Schedule(ctx context.Context, team, startDate, endDate string) ([]providers.GameSummary, error)
	SeasonCalendar(ctx context.Context, team string, season int, today string) ([]providers.ScheduleEntry, error)
	ScheduleContext(ctx context.Context, team, gameDate string, weeksBefore, weeksAfter int) ([]providers.ScheduleEntry, error)
	DivisionRecords(ctx context.Context, division string, season int) (map[string]providers.TeamRecord, error)
	Lineups(ctx context.Context, gameID int) (away, home []providers.StatRecord, err error)
	BenchPlayers(ctx context.Context, gameID int) (away, home []providers.StatRecord, err error)
	Bullpen(ctx context.Context, gameID int) (away, home []providers.BullpenPitcher, err error)
	PitcherSeasonStats(ctx context.Context, playerID, season int) (*providers.StatRecord, error)
	BatterSeasonStats(ctx context.Context, playerID, season int) (*providers.StatRecord, error)
	Injuries(ctx context.Context, team string) ([]providers.Injury, error)
	Transactions(ctx context.Context, team, date string, daysBack int) ([]providers.Transaction, error)
	LeagueLeaders(ctx context.Context, season, limit int) ([]providers.Leader, error)
	LookupPlayer(ctx context.Context, name string) (int, error)
}

// PitchSource is the pitch-level adapter surface
type PitchSource interface {
	PitchMix(ctx context.Context, pitcherID, season int) ([]providers.PitchMix, error)
	BatterGameRE24(ctx context.Context, batterID int, startDate, endDate string) ([]providers.GameRE24, error)
}

// EnrichmentSource provides best-effort advanced batting lines
type EnrichmentSource interface {
	BatterAdvanced(ctx context.Context, name string, season int) (*providers.AdvancedBatting, error)
}

// ForecastSource provides game-day temperatures
type ForecastSource interface {
	ForecastTemperature(ctx context.Context, venue string) (int, bool, error)
}

// Deps wires the aggregator's collaborators. Pitches, Enrich, and Forecast
// may be nil; their sections degrade to warnings.
type Deps struct {
	Games    GameSource
	Pitches  PitchSource
	Enrich   EnrichmentSource
	Forecast ForecastSource
	Store    *bundle.Store
}

// Options controls one build
type Options struct {
	Force        bool // rebuild even when a cached bundle exists
	Strict       bool // missing required fields become an error
	Transactions int  // trailing window in days, 0 for the default
	Leaders      int  // leaderboard size, 0 for the default
}

// Aggregator assembles render-ready bundles from the upstream adapters
type Aggregator struct {
	games    GameSource
	pitches  PitchSource
	enrich   EnrichmentSource
	forecast ForecastSource
	store    *bundle.Store
}

// New creates an aggregator
func New(deps Deps) *Aggregator {
	return &Aggregator{
		games:    deps.Games,
		pitches:  deps.Pitches,
		enrich:   deps.Enrich,
		forecast: deps.Forecast,
		store:    deps.Store,
	}
}

// Build assembles the bundle for one game. Required sections that cannot be
// fetched make the report incomplete; optional sections degrade to warnings
// and the build continues. Re-running for the same game replaces the stored
// bundle wholesale.
func (a *Aggregator) Build(ctx context.Context, away, home, date string, opts Options) (*bundle.Bundle, *Report, error) {
	if !opts.Force && a.store != nil {
		if b, ok := a.store.Get(away, home, date); ok {
			stats.Get().RecordBundleHit()
			log.Infof("%s Using cached bundle for %s @ %s on %s", logcolors.LogAggregator, away, home, date)
			report, err := Validate(b, opts.Strict)
			return b, report, err
		}
		stats.Get().RecordBundleMiss()
	}

	season, err := seasonOf(date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid game date %q: %w", date, err)
	}

	log.Infof("%s Building bundle for %s @ %s on %s", logcolors.LogAggregator, away, home, date)

	b := &bundle.Bundle{
		AwayTeam: away,
		HomeTeam: home,
		GameDate: date,
	}
	b.Metadata.Season = season
	report := &Report{}

	if t, ok := mlbapi.ByAbbr(away); ok {
		b.AwayTeamFull = t.FullName
		b.AwayDivision = t.Division
	}
	if t, ok := mlbapi.ByAbbr(home); ok {
		b.HomeTeamFull = t.FullName
		b.HomeDivision = t.Division
	}

	game, found := a.findGame(ctx, away, home, date, report)
	if found {
		b.GameTime = game.GameTime + " " + game.AMPM
		b.Venue = game.Venue
		b.AwayRecord = fmt.Sprintf("%d-%d", game.AwayWins, game.AwayLosses)
		b.HomeRecord = fmt.Sprintf("%d-%d", game.HomeWins, game.HomeLosses)
	}

	a.buildPitchers(ctx, b, game, season, report)
	a.buildRosters(ctx, b, game, found, season, report)
	a.enrichLineups(ctx, b, season, report)
	a.buildRE24(ctx, b, season, date, report)
	a.buildScheduleSections(ctx, b, home, date, season, report)
	a.buildDivisionRace(ctx, b, season, report)
	a.buildExtras(ctx, b, away, home, date, season, opts, report)

	validation, verr := Validate(b, opts.Strict)
	report.Missing = validation.Missing
	report.Warnings = append(report.Warnings, validation.Warnings...)
	stats.Get().RecordAggregation(verr == nil)
	if verr != nil {
		stats.Get().RecordValidationFailure()
		return b, report, verr
	}

	if a.store != nil {
		if _, err := a.store.Set(away, home, date, b); err != nil {
			return b, report, fmt.Errorf("failed to store bundle: %w", err)
		}
	}
	return b, report, nil
}

func seasonOf(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	return t.Year(), nil
}

// findGame fetches the date's slate and applies the double-header pick
func (a *Aggregator) findGame(ctx context.Context, away, home, date string, report *Report) (providers.GameSummary, bool) {
	games, err := a.games.Schedule(ctx, home, date, date)
	if err != nil {
		report.warn("schedule fetch failed: %v", err)
		return providers.GameSummary{}, false
	}

	var slate []providers.GameSummary
	for _, g := range games {
		if g.HomeTeam == home && g.AwayTeam == away {
			slate = append(slate, g)
		}
	}
	game, ok := pickGame(slate)
	if !ok {
		report.warn("no %s @ %s game on %s", away, home, date)
	}
	return game, ok
}

func (a *Aggregator) buildPitchers(ctx context.Context, b *bundle.Bundle, game providers.GameSummary, season int, report *Report) {
	b.AwayPitcher = a.fetchPitcher(ctx, game.AwayPitcher, season, "away", report)
	b.HomePitcher = a.fetchPitcher(ctx, game.HomePitcher, season, "home", report)

	if a.pitches == nil {
		return
	}
	if b.AwayPitcher != nil {
		if mix, err := a.pitches.PitchMix(ctx, b.AwayPitcher.PlayerID, season); err != nil {
			report.warn("away pitcher pitch mix fetch failed: %v", err)
		} else {
			b.AwayPitcherPitches = mix
		}
	}
	if b.HomePitcher != nil {
		if mix, err := a.pitches.PitchMix(ctx, b.HomePitcher.PlayerID, season); err != nil {
			report.warn("home pitcher pitch mix fetch failed: %v", err)
		} else {
			b.HomePitcherPitches = mix
		}
	}
}

func (a *Aggregator) fetchPitcher(ctx context.Context, name string, season int, side string, report *Report) *providers.StatRecord {
	if name == "" {
		report.warn("%s probable pitcher not announced", side)
		return nil
	}
	id, err := a.games.LookupPlayer(ctx, name)
	if err != nil {
		report.warn("%s pitcher lookup failed for %q: %v", side, name, err)
		return nil
	}
	rec, err := a.games.PitcherSeasonStats(ctx, id, season)
	if err != nil {
		report.warn("%s pitcher stats fetch failed for %q: %v", side, name, err)
		return nil
	}
	return rec
}

func (a *Aggregator) buildRosters(ctx context.Context, b *bundle.Bundle, game providers.GameSummary, found bool, season int, report *Report) {
	if !found {
		return
	}

	awayLineup, homeLineup, err := a.games.Lineups(ctx, game.GameID)
	if err != nil {
		report.warn("lineups fetch failed: %v", err)
	} else {
		b.AwayLineup = awayLineup
		b.HomeLineup = homeLineup
		a.backfillLineup(ctx, b.AwayLineup, season, "away", report)
		a.backfillLineup(ctx, b.HomeLineup, season, "home", report)
	}

	awayBench, homeBench, err := a.games.BenchPlayers(ctx, game.GameID)
	if err != nil {
		report.warn("bench fetch failed: %v", err)
	} else {
		b.AwayBench = dropLineupPlayers(awayBench, b.AwayLineup)
		b.HomeBench = dropLineupPlayers(homeBench, b.HomeLineup)
	}

	awayPen, homePen, err := a.games.Bullpen(ctx, game.GameID)
	if err != nil {
		report.warn("bullpen fetch failed: %v", err)
	} else {
		b.AwayBullpen = awayPen
		b.HomeBullpen = homePen
	}
}

// backfillLineup fills batting lines the boxscore left empty. Pre-game
// boxscores often carry no season stats for late lineup additions.
func (a *Aggregator) backfillLineup(ctx context.Context, lineup []providers.StatRecord, season int, side string, report *Report) {
	failures := 0
	for i := range lineup {
		if lineup[i].Slash != "" || lineup[i].PlayerID == 0 {
			continue
		}
		rec, err := a.games.BatterSeasonStats(ctx, lineup[i].PlayerID, season)
		if err != nil {
			failures++
			continue
		}
		lineup[i].Slash = rec.Slash
		lineup[i].HR = rec.HR
		lineup[i].RBI = rec.RBI
		lineup[i].TB = rec.TB
		lineup[i].OPS = rec.OPS
		lineup[i].OPSPlus = rec.OPSPlus
	}
	if failures > 0 {
		report.warn("%s lineup stat backfill failed for %d batters", side, failures)
	}
}

// dropLineupPlayers removes bench entries who are already in the lineup.
// Boxscores occasionally list a late lineup addition in both places.
func dropLineupPlayers(bench, lineup []providers.StatRecord) []providers.StatRecord {
	if len(bench) == 0 || len(lineup) == 0 {
		return bench
	}
	out := bench[:0]
	for _, p := range bench {
		if _, starting := matchPlayer(lineup, p.PlayerID, p.Name); !starting {
			out = append(out, p)
		}
	}
	return out
}

// enrichLineups attaches advanced batting lines per batter. Enrichment is
// best-effort: a failed or absent row never drops the batter.
func (a *Aggregator) enrichLineups(ctx context.Context, b *bundle.Bundle, season int, report *Report) {
	if a.enrich == nil {
		return
	}
	failures := 0
	for _, lineup := range [][]providers.StatRecord{b.AwayLineup, b.HomeLineup} {
		for i := range lineup {
			adv, err := a.enrich.BatterAdvanced(ctx, lineup[i].Name, season)
			if err != nil {
				failures++
				continue
			}
			lineup[i].Advanced = adv
		}
	}
	if failures > 0 {
		report.warn("advanced batting enrichment failed for %d batters", failures)
	}
}

// buildRE24 computes each lineup batter's cumulative RE24 series for the
// season up to the game date, keyed by last name.
func (a *Aggregator) buildRE24(ctx context.Context, b *bundle.Bundle, season int, date string, report *Report) {
	if a.pitches == nil {
		return
	}
	start := fmt.Sprintf("%d-03-01", season)

	b.AwayRE24 = a.lineupRE24(ctx, b.AwayLineup, start, date, "away", report)
	b.HomeRE24 = a.lineupRE24(ctx, b.HomeLineup, start, date, "home", report)
}

func (a *Aggregator) lineupRE24(ctx context.Context, lineup []providers.StatRecord, start, end, side string, report *Report) map[string][]metrics.PlayerGameRE24 {
	if len(lineup) == 0 {
		return nil
	}
	out := make(map[string][]metrics.PlayerGameRE24, len(lineup))
	failures := 0
	for _, batter := range lineup {
		games, err := a.pitches.BatterGameRE24(ctx, batter.PlayerID, start, end)
		if err != nil {
			failures++
			continue
		}
		if len(games) == 0 {
			continue
		}
		out[re24Key(batter.Name)] = metrics.AccumulateRE24(games)
	}
	if failures > 0 {
		report.warn("%s RE24 fetch failed for %d batters", side, failures)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (a *Aggregator) buildScheduleSections(ctx context.Context, b *bundle.Bundle, home, date string, season int, report *Report) {
	calendar, err := a.games.ScheduleContext(ctx, home, date, 2, 2)
	if err != nil {
		report.warn("schedule context fetch failed: %v", err)
	} else {
		b.ScheduleContext = calendar
	}

	entries, err := a.games.SeasonCalendar(ctx, home, season, date)
	if err != nil {
		report.warn("season schedule fetch failed: %v", err)
		return
	}

	if series, ok := metrics.ReconstructSeries(entries, b.AwayTeam, date); ok {
		b.Series = &series
	} else {
		report.warn("series reconstruction failed for %s on %s", b.AwayTeam, date)
	}

	h2h := metrics.HeadToHead(entries, b.AwayTeam, date)
	b.HeadToHead = &h2h
}

func (a *Aggregator) buildDivisionRace(ctx context.Context, b *bundle.Bundle, season int, report *Report) {
	race := make(map[string][]metrics.Standing)
	for _, division := range []string{b.AwayDivision, b.HomeDivision} {
		if division == "" {
			continue
		}
		if _, done := race[division]; done {
			continue
		}
		records, err := a.games.DivisionRecords(ctx, division, season)
		if err != nil {
			report.warn("%s standings fetch failed: %v", division, err)
			continue
		}
		race[division] = metrics.DivisionRace(records)
	}
	if len(race) > 0 {
		b.DivisionRace = race
	}
}

func (a *Aggregator) buildExtras(ctx context.Context, b *bundle.Bundle, away, home, date string, season int, opts Options, report *Report) {
	if a.forecast != nil && b.Venue != "" {
		temp, ok, err := a.forecast.ForecastTemperature(ctx, b.Venue)
		if err != nil {
			report.warn("forecast fetch failed: %v", err)
		} else if ok {
			b.TemperatureF = &temp
		}
	}

	if injuries, err := a.games.Injuries(ctx, away); err != nil {
		report.warn("away injuries fetch failed: %v", err)
	} else {
		b.AwayInjuries = injuries
	}
	if injuries, err := a.games.Injuries(ctx, home); err != nil {
		report.warn("home injuries fetch failed: %v", err)
	} else {
		b.HomeInjuries = injuries
	}

	daysBack := opts.Transactions
	if daysBack <= 0 {
		daysBack = 7
	}
	if txs, err := a.games.Transactions(ctx, home, date, daysBack); err != nil {
		report.warn("transactions fetch failed: %v", err)
	} else {
		b.Transactions = txs
	}

	limit := opts.Leaders
	if limit <= 0 {
		limit = 10
	}
	if leaders, err := a.games.LeagueLeaders(ctx, season, limit); err != nil {
		report.warn("league leaders fetch failed: %v", err)
	} else {
		b.Leaders = leaders
	}
}
