package bundle

import (
	"time"

	"baseball-preview-go/metrics"
	"baseball-preview-go/services/providers"
)

// Metadata identifies a stored bundle and when it was assembled.
type Metadata struct {
	AwayTeam  string    `json:"awayTeam"`
	HomeTeam  string    `json:"homeTeam"`
	GameDate  string    `json:"gameDate"`
	Season    int       `json:"season"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Bundle is the fully aggregated, render-ready record for one game preview.
// Optional sections are nil/empty when their upstream fetch failed; the
// validation pass decides which absences matter.
type Bundle struct {
	Metadata Metadata `json:"metadata"`

	// Game identity
	AwayTeam     string `json:"awayTeam"`
	HomeTeam     string `json:"homeTeam"`
	AwayTeamFull string `json:"awayTeamFull"`
	HomeTeamFull string `json:"homeTeamFull"`
	AwayDivision string `json:"awayDivision"`
	HomeDivision string `json:"homeDivision"`
	GameDate     string `json:"gameDate"`
	GameTime     string `json:"gameTime"`
	Venue        string `json:"venue"`

	// Records
	AwayRecord string `json:"awayRecord"` // "W-L"
	HomeRecord string `json:"homeRecord"`

	// Starting pitchers
	AwayPitcher        *providers.StatRecord `json:"awayPitcher,omitempty"`
	HomePitcher        *providers.StatRecord `json:"homePitcher,omitempty"`
	AwayPitcherPitches []providers.PitchMix  `json:"awayPitcherPitches,omitempty"`
	HomePitcherPitches []providers.PitchMix  `json:"homePitcherPitches,omitempty"`

	// Lineups in batting order; bench and bullpen in source order.
	AwayLineup  []providers.StatRecord     `json:"awayLineup,omitempty"`
	HomeLineup  []providers.StatRecord     `json:"homeLineup,omitempty"`
	AwayBench   []providers.StatRecord     `json:"awayBench,omitempty"`
	HomeBench   []providers.StatRecord     `json:"homeBench,omitempty"`
	AwayBullpen []providers.BullpenPitcher `json:"awayBullpen,omitempty"`
	HomeBullpen []providers.BullpenPitcher `json:"homeBullpen,omitempty"`

	// Schedule calendar for the home team, chronological with OFF days.
	ScheduleContext []providers.ScheduleEntry `json:"scheduleContext,omitempty"`

	// Series context derived from the schedule.
	Series *metrics.SeriesSummary `json:"series,omitempty"`

	// Season head-to-head from the home team's perspective.
	HeadToHead *providers.TeamRecord `json:"headToHead,omitempty"`

	// Division race keyed by division name.
	DivisionRace map[string][]metrics.Standing `json:"divisionRace,omitempty"`

	// Cumulative RE24 series keyed by player last name.
	AwayRE24 map[string][]metrics.PlayerGameRE24 `json:"awayRe24,omitempty"`
	HomeRE24 map[string][]metrics.PlayerGameRE24 `json:"homeRe24,omitempty"`

	// Extras
	TemperatureF *int                    `json:"temperatureF,omitempty"`
	AwayInjuries []providers.Injury      `json:"awayInjuries,omitempty"`
	HomeInjuries []providers.Injury      `json:"homeInjuries,omitempty"`
	Transactions []providers.Transaction `json:"transactions,omitempty"`
	Leaders      []providers.Leader      `json:"leaders,omitempty"`
}
