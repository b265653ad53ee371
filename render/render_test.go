package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"baseball-preview-go/bundle"
	"baseball-preview-go/metrics"
	"baseball-preview-go/services/providers"
)

func sampleBundle() *bundle.Bundle {
	temp := 72
	return &bundle.Bundle{
		AwayTeam:     "NYY",
		HomeTeam:     "BOS",
		AwayTeamFull: "New York Yankees",
		HomeTeamFull: "Boston Red Sox",
		GameDate:     "2025-06-06",
		GameTime:     "7:10 PM",
		Venue:        "Fenway Park",
		AwayRecord:   "40-22",
		HomeRecord:   "35-27",
		AwayPitcher: &providers.StatRecord{
			Name: "Gerrit Cole", Wins: 5, Losses: 2, ERA: 2.95, WHIP: 1.02, Innings: 61, KPer9: 10.3,
		},
		HomePitcher: &providers.StatRecord{
			Name: "Brayan Bello", Wins: 4, Losses: 3, ERA: 3.61, WHIP: 1.24, Innings: 55, KPer9: 8.1,
		},
		AwayPitcherPitches: []providers.PitchMix{
			{PitchType: "4-Seam FB", UsagePct: 52.1, AvgVelocity: 97.2, AvgSpin: 2400, WhiffPct: 28.3},
		},
		AwayLineup: []providers.StatRecord{
			{Name: "Aaron Judge", Position: "RF", Slash: ".320/.440/.680", HR: 22, RBI: 54,
				Advanced: &providers.AdvancedBatting{WRCPlus: 198}},
		},
		AwayRE24: map[string][]metrics.PlayerGameRE24{
			"Judge": {{GameNumber: 1, GameDate: "2025-06-01", RE24: 1.2, CumulativeRE24: 1.2}},
		},
		Series: &metrics.SeriesSummary{
			Opponent: "NYY", GameNumber: 2, TotalGames: 3,
			SeriesWins: 0, SeriesLosses: 1, SeasonWins: 2, SeasonLosses: 3,
		},
		DivisionRace: map[string][]metrics.Standing{
			"AL East": {
				{Team: "NYY", Wins: 40, Losses: 22, GamesBehind: 0},
				{Team: "BOS", Wins: 35, Losses: 27, GamesBehind: 5},
			},
		},
		ScheduleContext: []providers.ScheduleEntry{
			{GameDate: "2025-06-05", Opponent: "vs NYY", Result: "L", Score: "2-4", Status: "Final"},
			{GameDate: "2025-06-06", Opponent: "vs NYY", Status: "Scheduled", GameTime: "7:10 PM", IsToday: true},
		},
		TemperatureF: &temp,
		AwayInjuries: []providers.Injury{{PlayerName: "Giancarlo Stanton", Status: "10-Day IL"}},
		Transactions: []providers.Transaction{{Date: "2025-06-04", Description: "Recalled Romy Gonzalez"}},
		Leaders:      []providers.Leader{{Rank: 1, Name: "Aaron Judge", Team: "NYY", Value: "1.150"}},
	}
}

func TestHTMLRendersSections(t *testing.T) {
	doc, err := HTML(sampleBundle())
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	html := string(doc)

	for _, want := range []string{
		"New York Yankees (40-22) @ Boston Red Sox (35-27)",
		"2025-06-06 7:10 PM",
		"Fenway Park",
		"72°F",
		"Game 2 of 3 vs NYY",
		"Gerrit Cole",
		"2.95",
		"4-Seam FB",
		"52.1%",
		"Aaron Judge",
		"198",
		"+1.20",
		"AL East",
		"Giancarlo Stanton",
		"Recalled Romy Gonzalez",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Rendered document missing %q", want)
		}
	}
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("Expected a complete HTML document")
	}
}

func TestHTMLOmitsAbsentSections(t *testing.T) {
	b := sampleBundle()
	b.TemperatureF = nil
	b.Series = nil
	b.Transactions = nil
	b.AwayPitcherPitches = nil

	doc, err := HTML(b)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	html := string(doc)

	if strings.Contains(html, "°F") {
		t.Error("Temperature should be omitted")
	}
	if strings.Contains(html, "Game 2 of 3") {
		t.Error("Series line should be omitted")
	}
	if strings.Contains(html, "Pitch Mix") {
		t.Error("Pitch mix section should be omitted")
	}
	if strings.Contains(html, "Transactions") {
		t.Error("Transactions section should be omitted")
	}
}

func TestHTMLMissingRE24ShowsZero(t *testing.T) {
	b := sampleBundle()
	b.AwayRE24 = nil

	doc, err := HTML(b)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(string(doc), "0.00") {
		t.Error("Absent RE24 series should render as 0.00")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, sampleBundle())
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "NYY_BOS_2025-06-06.html" {
		t.Errorf("Unexpected filename %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "Fenway Park") {
		t.Error("Written file missing rendered content")
	}
}
