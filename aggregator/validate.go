package aggregator

import (
	"fmt"
	"strings"

	"baseball-preview-go/bundle"
	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// Report records what a bundle build could not fill in. Missing entries are
// required fields; Warnings cover degraded optional sections.
type Report struct {
	Missing  []string `json:"missing,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Report) missing(field string) {
	r.Missing = append(r.Missing, field)
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Complete reports whether every required field is present
func (r *Report) Complete() bool {
	return len(r.Missing) == 0
}

// ValidationError is returned in strict mode when required fields are absent
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing %d required fields:\n  - %s",
		len(e.Missing), strings.Join(e.Missing, "\n  - "))
}

// Validate checks a bundle's completeness. Required: game identity, both
// starting pitchers, both lineups with at least 8 of 9 batters. Everything
// else degrades to a warning. Strict mode turns missing required fields into
// a ValidationError.
func Validate(b *bundle.Bundle, strict bool) (*Report, error) {
	report := &Report{}

	identity := []struct {
		name  string
		value string
	}{
		{"away team", b.AwayTeam},
		{"home team", b.HomeTeam},
		{"away team full name", b.AwayTeamFull},
		{"home team full name", b.HomeTeamFull},
		{"game date", b.GameDate},
		{"game time", b.GameTime},
		{"venue", b.Venue},
	}
	for _, f := range identity {
		if f.value == "" {
			report.missing("game identity: " + f.name)
		}
	}

	if b.AwayRecord == "" || b.AwayRecord == "0-0" {
		report.warn("away team record missing or zero")
	}
	if b.HomeRecord == "" || b.HomeRecord == "0-0" {
		report.warn("home team record missing or zero")
	}

	validatePitcher(b.AwayPitcher, "away", report)
	validatePitcher(b.HomePitcher, "home", report)

	if len(b.AwayPitcherPitches) == 0 {
		report.warn("away pitcher pitch mix missing")
	}
	if len(b.HomePitcherPitches) == 0 {
		report.warn("home pitcher pitch mix missing")
	}

	validateLineup(b.AwayLineup, "away", report)
	validateLineup(b.HomeLineup, "home", report)

	if len(b.AwayBench) == 0 {
		report.warn("away bench missing")
	}
	if len(b.HomeBench) == 0 {
		report.warn("home bench missing")
	}
	if len(b.AwayBullpen) == 0 {
		report.warn("away bullpen missing")
	}
	if len(b.HomeBullpen) == 0 {
		report.warn("home bullpen missing")
	}
	if len(b.DivisionRace) == 0 {
		report.warn("division race missing")
	}
	if len(b.ScheduleContext) == 0 {
		report.warn("schedule context missing")
	}
	if b.Series == nil {
		report.warn("series context missing")
	}
	if b.TemperatureF == nil {
		report.warn("forecast temperature missing")
	}

	for _, m := range report.Missing {
		log.Errorf("%s Missing required: %s", logcolors.LogValidate, m)
	}
	for _, w := range report.Warnings {
		log.Warnf("%s %s", logcolors.LogValidate, w)
	}

	if strict && len(report.Missing) > 0 {
		return report, &ValidationError{Missing: report.Missing}
	}
	return report, nil
}

func validatePitcher(p *providers.StatRecord, side string, report *Report) {
	if p == nil {
		report.missing(side + " starting pitcher")
		return
	}
	if p.Name == "" {
		report.missing(side + " pitcher: name")
	}
	if p.Innings == 0 {
		report.warn("%s pitcher has 0 innings pitched", side)
	}
}

func validateLineup(lineup []providers.StatRecord, side string, report *Report) {
	if len(lineup) == 0 {
		report.missing(side + " lineup")
		return
	}
	if len(lineup) < 8 {
		report.warn("%s lineup incomplete (%d/9 batters)", side, len(lineup))
	}
}
