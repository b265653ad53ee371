package providers

// GameSummary is one normalized row of an upstream schedule response.
type GameSummary struct {
	GameID       int    `json:"gameId"`
	GameDate     string `json:"gameDate"` // YYYY-MM-DD
	GameTime     string `json:"gameTime"` // local clock time, e.g. "7:05"
	AMPM         string `json:"ampm"`     // "AM" or "PM"
	Status       string `json:"status"`   // "Scheduled", "Final", ...
	Venue        string `json:"venue"`
	HomeTeam     string `json:"homeTeam"` // abbreviation
	AwayTeam     string `json:"awayTeam"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	HomeWins     int    `json:"homeWins"`
	HomeLosses   int    `json:"homeLosses"`
	AwayWins     int    `json:"awayWins"`
	AwayLosses   int    `json:"awayLosses"`
	HomePitcher  string `json:"homeProbablePitcher,omitempty"`
	AwayPitcher  string `json:"awayProbablePitcher,omitempty"`
}

// ScheduleEntry is one row of a team's season calendar. Off days appear as
// entries with Status "OFF" and an empty opponent.
type ScheduleEntry struct {
	GameDate     string `json:"gameDate"`
	Opponent     string `json:"opponentAbbr"` // prefixed "vs " (home) or "@ " (away)
	Result       string `json:"result"`       // "W", "L", or "" if not yet played
	Score        string `json:"score"`        // "5-3" from the team's perspective
	Status       string `json:"status"`       // "Final", "Scheduled", "OFF", ...
	GameTime     string `json:"gameTime"`
	IsToday      bool   `json:"isToday"`
}

// IsOffDay reports whether the entry is an off-day placeholder.
func (e ScheduleEntry) IsOffDay() bool {
	return e.Status == "OFF"
}

// StatRecord holds one player's season stat line. Pitchers and batters share
// the type; fields not applicable to the player's role are zero.
type StatRecord struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Age      int    `json:"age,omitempty"`
	Position string `json:"position,omitempty"`
	Number   int    `json:"number,omitempty"`

	// Pitching
	Wins     int     `json:"wins,omitempty"`
	Losses   int     `json:"losses,omitempty"`
	ERA      float64 `json:"era,omitempty"`
	WHIP     float64 `json:"whip,omitempty"`
	KPer9    float64 `json:"kPer9,omitempty"`
	BBPer9   float64 `json:"bbPer9,omitempty"`
	Innings  float64 `json:"inningsPitched,omitempty"`
	WAR      float64 `json:"war,omitempty"`

	// Batting
	Slash   string  `json:"slash,omitempty"` // AVG/OBP/SLG
	HR      int     `json:"hr,omitempty"`
	RBI     int     `json:"rbi,omitempty"`
	TB      int     `json:"totalBases,omitempty"`
	OPS     float64 `json:"ops,omitempty"`
	OPSPlus int     `json:"opsPlus,omitempty"`

	// Enrichment from a secondary source, absent unless enriched.
	Advanced *AdvancedBatting `json:"advanced,omitempty"`
}

// AdvancedBatting carries sabermetric enrichment fields for a batter.
type AdvancedBatting struct {
	WRCPlus int     `json:"wrcPlus"`
	BBPct   float64 `json:"bbPct"`
	KPct    float64 `json:"kPct"`
	ISO     float64 `json:"iso"`
	BABIP   float64 `json:"babip"`
	OWAR    float64 `json:"owar"`
	DWAR    float64 `json:"dwar"`
}

// PitchMix is one pitch type's usage profile for a pitcher.
type PitchMix struct {
	PitchType   string  `json:"pitchType"`
	UsagePct    float64 `json:"usagePct"`
	AvgVelocity float64 `json:"avgVelocity"`
	AvgSpin     float64 `json:"avgSpin"`
	WhiffPct    float64 `json:"whiffPct"`
}

// GameRE24 is one player's run-expectancy delta for a single game.
type GameRE24 struct {
	GameID   int     `json:"gamePk"`
	GameDate string  `json:"gameDate"`
	RE24     float64 `json:"re24"`
	PA       int     `json:"pa"`
}

// BullpenPitcher is a relief pitcher with recent usage.
type BullpenPitcher struct {
	StatRecord
	RecentPitchCounts []int `json:"recentPitchCounts,omitempty"` // last 3 days, newest first
}

// Injury is one injured-list entry for a team.
type Injury struct {
	PlayerName  string `json:"playerName"`
	Position    string `json:"position"`
	Status      string `json:"status"` // "10-Day IL", ...
	Description string `json:"description,omitempty"`
}

// Transaction is one roster move.
type Transaction struct {
	Date        string `json:"date"`
	Team        string `json:"team"`
	Description string `json:"description"`
}

// Leader is one league-leaderboard row.
type Leader struct {
	Category string `json:"category"`
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Value    string `json:"value"`
}

// TeamRecord is a team's season win/loss record.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// ProviderError represents an error from an upstream source with context
// about which source and operation failed.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Provider + ": " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}
