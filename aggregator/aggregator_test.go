package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"baseball-preview-go/bundle"
	"baseball-preview-go/services/providers"
)

// stubGames implements GameSource from canned responses. A nil error field
// means success with the canned value.
type stubGames struct {
	schedule    []providers.GameSummary
	scheduleErr error
	calendar    []providers.ScheduleEntry
	calendarErr error
	contextRows []providers.ScheduleEntry
	standings   map[string]providers.TeamRecord
	lineup      []providers.StatRecord
	lineupErr   error
	bench       []providers.StatRecord
	bullpen     []providers.BullpenPitcher
	pitcher     *providers.StatRecord
	pitcherErr  error
	batter      *providers.StatRecord
	batterErr   error
	playerID    int
	lookupErr   error
	injuries    []providers.Injury
	txs         []providers.Transaction
	leaders     []providers.Leader

	lineupCalls int
}

func (s *stubGames) Schedule(_ context.Context, _, _, _ string) ([]providers.GameSummary, error) {
	return s.schedule, s.scheduleErr
}

func (s *stubGames) SeasonCalendar(_ context.Context, _ string, _ int, _ string) ([]providers.ScheduleEntry, error) {
	return s.calendar, s.calendarErr
}

func (s *stubGames) ScheduleContext(_ context.Context, _, _ string, _, _ int) ([]providers.ScheduleEntry, error) {
	return s.contextRows, nil
}

func (s *stubGames) DivisionRecords(_ context.Context, _ string, _ int) (map[string]providers.TeamRecord, error) {
	return s.standings, nil
}

func (s *stubGames) Lineups(_ context.Context, _ int) ([]providers.StatRecord, []providers.StatRecord, error) {
	s.lineupCalls++
	return s.lineup, s.lineup, s.lineupErr
}

func (s *stubGames) BenchPlayers(_ context.Context, _ int) ([]providers.StatRecord, []providers.StatRecord, error) {
	return s.bench, s.bench, nil
}

func (s *stubGames) Bullpen(_ context.Context, _ int) ([]providers.BullpenPitcher, []providers.BullpenPitcher, error) {
	return s.bullpen, s.bullpen, nil
}

func (s *stubGames) PitcherSeasonStats(_ context.Context, _, _ int) (*providers.StatRecord, error) {
	return s.pitcher, s.pitcherErr
}

func (s *stubGames) BatterSeasonStats(_ context.Context, _, _ int) (*providers.StatRecord, error) {
	return s.batter, s.batterErr
}

func (s *stubGames) Injuries(_ context.Context, _ string) ([]providers.Injury, error) {
	return s.injuries, nil
}

func (s *stubGames) Transactions(_ context.Context, _, _ string, _ int) ([]providers.Transaction, error) {
	return s.txs, nil
}

func (s *stubGames) LeagueLeaders(_ context.Context, _, _ int) ([]providers.Leader, error) {
	return s.leaders, nil
}

func (s *stubGames) LookupPlayer(_ context.Context, _ string) (int, error) {
	return s.playerID, s.lookupErr
}

type stubPitches struct {
	mix    []providers.PitchMix
	mixErr error
	re24   []providers.GameRE24
}

func (s *stubPitches) PitchMix(_ context.Context, _, _ int) ([]providers.PitchMix, error) {
	return s.mix, s.mixErr
}

func (s *stubPitches) BatterGameRE24(_ context.Context, _ int, _, _ string) ([]providers.GameRE24, error) {
	return s.re24, nil
}

type stubEnrich struct {
	adv *providers.AdvancedBatting
	err error
}

func (s *stubEnrich) BatterAdvanced(_ context.Context, _ string, _ int) (*providers.AdvancedBatting, error) {
	return s.adv, s.err
}

type stubForecast struct {
	temp int
	ok   bool
	err  error
}

func (s *stubForecast) ForecastTemperature(_ context.Context, _ string) (int, bool, error) {
	return s.temp, s.ok, s.err
}

func fullLineup() []providers.StatRecord {
	names := []string{
		"Jarren Duran", "Rafael Devers", "Masataka Yoshida",
		"Triston Casas", "Wilyer Abreu", "Connor Wong",
		"Ceddanne Rafaela", "David Hamilton", "Rob Refsnyder",
	}
	lineup := make([]providers.StatRecord, len(names))
	for i, n := range names {
		lineup[i] = providers.StatRecord{PlayerID: 700 + i, Name: n, Slash: ".270/.330/.410"}
	}
	return lineup
}

func healthyGames() *stubGames {
	return &stubGames{
		schedule: []providers.GameSummary{{
			GameID: 777001, GameDate: "2025-06-06", GameTime: "7:10", AMPM: "PM",
			Status: "Scheduled", Venue: "Fenway Park",
			HomeTeam: "BOS", AwayTeam: "NYY",
			HomeWins: 35, HomeLosses: 27, AwayWins: 40, AwayLosses: 22,
			HomePitcher: "Brayan Bello", AwayPitcher: "Gerrit Cole",
		}},
		calendar: []providers.ScheduleEntry{
			{GameDate: "2025-06-05", Opponent: "vs NYY", Result: "L", Score: "2-4", Status: "Final"},
			{GameDate: "2025-06-06", Opponent: "vs NYY", Status: "Scheduled"},
		},
		contextRows: []providers.ScheduleEntry{
			{GameDate: "2025-06-05", Opponent: "vs NYY", Result: "L", Status: "Final"},
			{GameDate: "2025-06-06", Opponent: "vs NYY", Status: "Scheduled", IsToday: true},
		},
		standings: map[string]providers.TeamRecord{
			"NYY": {Wins: 40, Losses: 22},
			"BOS": {Wins: 35, Losses: 27},
		},
		lineup: fullLineup(),
		bench: []providers.StatRecord{
			{PlayerID: 801, Name: "Romy Gonzalez"},
		},
		bullpen: []providers.BullpenPitcher{
			{StatRecord: providers.StatRecord{PlayerID: 901, Name: "Kenley Jansen"}},
		},
		pitcher: &providers.StatRecord{
			PlayerID: 543037, Name: "Gerrit Cole",
			Wins: 5, Losses: 2, ERA: 2.95, Innings: 61.0,
		},
		playerID: 543037,
		injuries: []providers.Injury{{PlayerName: "Trevor Story", Status: "60-Day IL"}},
		txs:      []providers.Transaction{{Date: "2025-06-04", Team: "BOS", Description: "Recalled Romy Gonzalez"}},
		leaders:  []providers.Leader{{Category: "ops", Rank: 1, Name: "Aaron Judge", Team: "NYY", Value: "1.150"}},
	}
}

func newTestAggregator(t *testing.T, games *stubGames) *Aggregator {
	t.Helper()

	store, err := bundle.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return New(Deps{
		Games: games,
		Pitches: &stubPitches{
			mix:  []providers.PitchMix{{PitchType: "4-Seam FB", UsagePct: 52.1, AvgVelocity: 97.2}},
			re24: []providers.GameRE24{{GameID: 1, GameDate: "2025-06-01", RE24: 0.8, PA: 4}},
		},
		Enrich:   &stubEnrich{adv: &providers.AdvancedBatting{WRCPlus: 120, BBPct: 9.5}},
		Forecast: &stubForecast{temp: 72, ok: true},
		Store:    store,
	})
}

func TestBuildAssemblesBundle(t *testing.T) {
	games := healthyGames()
	agg := newTestAggregator(t, games)

	b, report, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !report.Complete() {
		t.Errorf("Expected complete report, missing: %v", report.Missing)
	}

	if b.AwayTeamFull != "New York Yankees" || b.HomeTeamFull != "Boston Red Sox" {
		t.Errorf("Wrong full names: %q / %q", b.AwayTeamFull, b.HomeTeamFull)
	}
	if b.Venue != "Fenway Park" {
		t.Errorf("Expected venue Fenway Park, got %q", b.Venue)
	}
	if b.GameTime != "7:10 PM" {
		t.Errorf("Expected game time 7:10 PM, got %q", b.GameTime)
	}
	if b.AwayRecord != "40-22" || b.HomeRecord != "35-27" {
		t.Errorf("Wrong records: %q / %q", b.AwayRecord, b.HomeRecord)
	}
	if b.AwayPitcher == nil || b.AwayPitcher.Name != "Gerrit Cole" {
		t.Fatalf("Expected away pitcher Gerrit Cole, got %+v", b.AwayPitcher)
	}
	if len(b.AwayPitcherPitches) != 1 || b.AwayPitcherPitches[0].PitchType != "4-Seam FB" {
		t.Errorf("Wrong pitch mix: %+v", b.AwayPitcherPitches)
	}
	if len(b.AwayLineup) != 9 || len(b.HomeLineup) != 9 {
		t.Errorf("Expected 9-man lineups, got %d/%d", len(b.AwayLineup), len(b.HomeLineup))
	}
	if b.AwayLineup[0].Advanced == nil || b.AwayLineup[0].Advanced.WRCPlus != 120 {
		t.Errorf("Lineup not enriched: %+v", b.AwayLineup[0].Advanced)
	}
	if len(b.AwayRE24) != 9 {
		t.Errorf("Expected RE24 series for 9 batters, got %d", len(b.AwayRE24))
	}
	series, ok := b.AwayRE24["Duran"]
	if !ok || len(series) != 1 || series[0].CumulativeRE24 != 0.8 {
		t.Errorf("Wrong RE24 series for Duran: %+v", series)
	}
	if b.Series == nil || b.Series.GameNumber != 2 {
		t.Errorf("Wrong series context: %+v", b.Series)
	}
	if b.HeadToHead == nil || b.HeadToHead.Losses != 1 {
		t.Errorf("Wrong head-to-head: %+v", b.HeadToHead)
	}
	if len(b.DivisionRace["AL East"]) != 2 {
		t.Errorf("Expected 2 AL East standings rows, got %d", len(b.DivisionRace["AL East"]))
	}
	if b.TemperatureF == nil || *b.TemperatureF != 72 {
		t.Errorf("Wrong temperature: %v", b.TemperatureF)
	}
	if len(b.AwayInjuries) != 1 || len(b.Transactions) != 1 || len(b.Leaders) != 1 {
		t.Errorf("Extras not populated: %d injuries, %d txs, %d leaders",
			len(b.AwayInjuries), len(b.Transactions), len(b.Leaders))
	}
	if b.Metadata.Season != 2025 {
		t.Errorf("Expected season 2025, got %d", b.Metadata.Season)
	}
}

func TestBuildStoresAndReusesBundle(t *testing.T) {
	games := healthyGames()
	agg := newTestAggregator(t, games)
	ctx := context.Background()

	if _, _, err := agg.Build(ctx, "NYY", "BOS", "2025-06-06", Options{}); err != nil {
		t.Fatalf("First build failed: %v", err)
	}
	if games.lineupCalls != 1 {
		t.Fatalf("Expected 1 lineup fetch, got %d", games.lineupCalls)
	}

	// Second build hits the stored bundle and skips every fetch.
	if _, _, err := agg.Build(ctx, "NYY", "BOS", "2025-06-06", Options{}); err != nil {
		t.Fatalf("Second build failed: %v", err)
	}
	if games.lineupCalls != 1 {
		t.Errorf("Cached build should not refetch, got %d lineup fetches", games.lineupCalls)
	}

	// Force rebuilds from the sources.
	if _, _, err := agg.Build(ctx, "NYY", "BOS", "2025-06-06", Options{Force: true}); err != nil {
		t.Fatalf("Forced build failed: %v", err)
	}
	if games.lineupCalls != 2 {
		t.Errorf("Forced build should refetch, got %d lineup fetches", games.lineupCalls)
	}
}

func TestBuildDegradesOnOptionalFailures(t *testing.T) {
	games := healthyGames()
	games.calendarErr = errors.New("upstream down")
	agg := New(Deps{
		Games:    games,
		Pitches:  &stubPitches{mixErr: errors.New("csv export failed")},
		Enrich:   &stubEnrich{err: errors.New("leaderboard unavailable")},
		Forecast: &stubForecast{err: errors.New("gridpoint lookup failed")},
	})

	b, report, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{})
	if err != nil {
		t.Fatalf("Build should degrade, not fail: %v", err)
	}
	if !report.Complete() {
		t.Errorf("Required fields should survive optional failures: %v", report.Missing)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("Expected warnings for degraded sections")
	}
	if b.Series != nil {
		t.Error("Series should be absent when the season schedule is unavailable")
	}
	if len(b.AwayPitcherPitches) != 0 {
		t.Error("Pitch mix should be absent when the pitch source fails")
	}
	if b.TemperatureF != nil {
		t.Error("Temperature should be absent when the forecast fails")
	}
	if b.AwayLineup[0].Advanced != nil {
		t.Error("Enrichment failure should leave the batter unenriched")
	}
	if len(b.AwayLineup) != 9 {
		t.Errorf("Enrichment failure must not drop batters, got %d", len(b.AwayLineup))
	}

	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "season schedule fetch failed") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a season schedule warning, got %v", report.Warnings)
	}
}

func TestBuildStrictMissingPitcher(t *testing.T) {
	games := healthyGames()
	games.schedule[0].AwayPitcher = ""
	games.schedule[0].HomePitcher = ""
	agg := New(Deps{Games: games})

	_, report, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{Strict: true})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if report.Complete() {
		t.Error("Report should list the missing pitchers")
	}
	found := 0
	for _, m := range verr.Missing {
		if strings.Contains(m, "starting pitcher") {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Expected both pitchers missing, got %v", verr.Missing)
	}
}

func TestBuildStrictFailureNotStored(t *testing.T) {
	games := healthyGames()
	games.scheduleErr = errors.New("schedule down")
	store, err := bundle.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	agg := New(Deps{Games: games, Store: store})

	if _, _, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{Strict: true}); err == nil {
		t.Fatal("Expected strict build to fail without a schedule")
	}
	if store.Has("NYY", "BOS", "2025-06-06") {
		t.Error("Failed strict build should not be stored")
	}
}

func TestBuildRejectsBadDate(t *testing.T) {
	agg := New(Deps{Games: healthyGames()})
	if _, _, err := agg.Build(context.Background(), "NYY", "BOS", "June 6", Options{}); err == nil {
		t.Fatal("Expected error for malformed date")
	}
}

func TestBuildIgnoresUnrelatedGames(t *testing.T) {
	games := healthyGames()
	games.schedule = append(games.schedule, providers.GameSummary{
		GameID: 777002, GameDate: "2025-06-06", Status: "Scheduled",
		HomeTeam: "BOS", AwayTeam: "TOR",
	})
	agg := New(Deps{Games: games})

	b, _, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if b.Venue != "Fenway Park" || b.AwayRecord != "40-22" {
		t.Errorf("Picked the wrong game: venue %q, record %q", b.Venue, b.AwayRecord)
	}
}

func TestBuildBackfillsEmptyBattingLines(t *testing.T) {
	games := healthyGames()
	games.lineup[3].Slash = ""
	games.lineup[3].HR = 0
	games.batter = &providers.StatRecord{Slash: ".281/.352/.480", HR: 12, RBI: 40}
	agg := New(Deps{Games: games})

	b, _, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if b.AwayLineup[3].Slash != ".281/.352/.480" || b.AwayLineup[3].HR != 12 {
		t.Errorf("Batting line not backfilled: %+v", b.AwayLineup[3])
	}
	if b.AwayLineup[3].Name != "Triston Casas" {
		t.Errorf("Backfill must not replace identity, got %q", b.AwayLineup[3].Name)
	}
}

func TestBuildBackfillFailureKeepsBatter(t *testing.T) {
	games := healthyGames()
	games.lineup[0].Slash = ""
	games.batterErr = errors.New("stats unavailable")
	agg := New(Deps{Games: games})

	b, report, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(b.AwayLineup) != 9 {
		t.Fatalf("Backfill failure must not drop batters, got %d", len(b.AwayLineup))
	}
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "backfill failed") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a backfill warning, got %v", report.Warnings)
	}
}

func TestBenchDropsLineupPlayers(t *testing.T) {
	games := healthyGames()
	// Duran is in the lineup and incorrectly listed on the bench too.
	games.bench = append(games.bench, providers.StatRecord{PlayerID: 700, Name: "Jarren Duran"})
	agg := New(Deps{Games: games})

	b, _, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(b.AwayBench) != 1 || b.AwayBench[0].Name != "Romy Gonzalez" {
		t.Errorf("Expected bench deduped to Romy Gonzalez, got %+v", b.AwayBench)
	}
}

func TestBuildForcedRebuildsAreIdentical(t *testing.T) {
	agg := newTestAggregator(t, healthyGames())

	b1, _, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{Force: true})
	if err != nil {
		t.Fatalf("First build failed: %v", err)
	}
	b2, _, err := agg.Build(context.Background(), "NYY", "BOS", "2025-06-06", Options{Force: true})
	if err != nil {
		t.Fatalf("Second build failed: %v", err)
	}

	// The assembly timestamp is the only field allowed to differ.
	b1.Metadata.FetchedAt = time.Time{}
	b2.Metadata.FetchedAt = time.Time{}
	j1, err := json.Marshal(b1)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	j2, err := json.Marshal(b2)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(j1, j2) {
		t.Errorf("Forced rebuilds differ:\n%s\n%s", j1, j2)
	}
}
