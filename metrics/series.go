package metrics

import (
	"sort"
	"strings"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"
	"baseball-preview-go/utils"

	log "github.com/sirupsen/logrus"
)

// SeriesSummary describes the contiguous series bracketing a target date,
// the series before it, and the win/loss context entering the target game.
// All tallies count only games strictly before the target date.
type SeriesSummary struct {
	Opponent     string   `json:"opponent"`
	CurrentDates []string `json:"currentSeriesDates"` // up to and including the target date
	GameNumber   int      `json:"currentSeriesGameNum"`
	TotalGames   int      `json:"seriesTotalGames"` // including games past the target date
	PrevDates    []string `json:"prevSeriesDates,omitempty"`
	PrevOpponent string   `json:"prevSeriesOpponent,omitempty"`
	PrevLocation string   `json:"prevSeriesLocation,omitempty"` // "vs " or "@ "
	SeriesWins   int      `json:"seriesWins"`
	SeriesLosses int      `json:"seriesLosses"`
	SeasonWins   int      `json:"seasonWins"`
	SeasonLosses int      `json:"seasonLosses"`
}

// ReconstructSeries derives the current and previous series boundaries plus
// win/loss tallies from one team's chronological schedule. It is a pure
// function of its inputs: the schedule is re-sorted by date before scanning,
// and nothing outside the sequence is consulted.
func ReconstructSeries(schedule []providers.ScheduleEntry, opponent, gameDate string) (SeriesSummary, bool) {
	summary := SeriesSummary{Opponent: opponent}
	if len(schedule) == 0 || gameDate == "" {
		return summary, false
	}

	sorted := make([]providers.ScheduleEntry, len(schedule))
	copy(sorted, schedule)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GameDate < sorted[j].GameDate
	})

	gameIdx := -1
	for i, e := range sorted {
		if e.GameDate == gameDate {
			gameIdx = i
			break
		}
	}
	if gameIdx == -1 {
		log.Warnf("%s Target date %s not found in schedule", logcolors.LogSeries, gameDate)
		return summary, false
	}

	// Scan backward to the start of the current series. An off day has no
	// matching opponent, so it breaks the extension naturally.
	startIdx := gameIdx
	for i := gameIdx - 1; i >= 0; i-- {
		if utils.NormalizeOpponent(sorted[i].Opponent) != opponent {
			break
		}
		startIdx = i
	}

	// Scan forward to the natural end of the series, past the target date.
	endIdx := gameIdx
	for i := gameIdx + 1; i < len(sorted); i++ {
		if utils.NormalizeOpponent(sorted[i].Opponent) != opponent {
			break
		}
		endIdx = i
	}

	for i := startIdx; i <= gameIdx; i++ {
		summary.CurrentDates = append(summary.CurrentDates, sorted[i].GameDate)
	}
	summary.GameNumber = len(summary.CurrentDates)
	summary.TotalGames = endIdx - startIdx + 1

	// Previous series: skip off days backward from just before the current
	// series, then extend backward while the opponent matches.
	if startIdx > 0 {
		prevEnd := startIdx - 1
		for prevEnd >= 0 && sorted[prevEnd].IsOffDay() {
			prevEnd--
		}
		if prevEnd >= 0 {
			summary.PrevOpponent = utils.NormalizeOpponent(sorted[prevEnd].Opponent)

			prevStart := prevEnd
			for i := prevEnd - 1; i >= 0; i-- {
				if utils.NormalizeOpponent(sorted[i].Opponent) != summary.PrevOpponent {
					break
				}
				prevStart = i
			}
			for i := prevStart; i <= prevEnd; i++ {
				summary.PrevDates = append(summary.PrevDates, sorted[i].GameDate)
			}

			if strings.HasPrefix(sorted[prevEnd].Opponent, "@ ") {
				summary.PrevLocation = "@ "
			} else {
				summary.PrevLocation = "vs "
			}
		}
	}

	// Tallies: the target game itself is not yet played for these counts.
	currentDates := make(map[string]bool, len(summary.CurrentDates))
	for _, d := range summary.CurrentDates {
		currentDates[d] = true
	}
	for _, e := range sorted {
		if utils.NormalizeOpponent(e.Opponent) != opponent {
			continue
		}
		if e.Result == "" || e.GameDate >= gameDate {
			continue
		}
		if currentDates[e.GameDate] {
			switch e.Result {
			case "W":
				summary.SeriesWins++
			case "L":
				summary.SeriesLosses++
			}
		}
		switch e.Result {
		case "W":
			summary.SeasonWins++
		case "L":
			summary.SeasonLosses++
		}
	}

	return summary, true
}

// HeadToHead tallies a team's season record against one opponent from its
// schedule, counting only finished games strictly before the cutoff date.
// The schedule-derived count is authoritative; no reported field is trusted.
func HeadToHead(schedule []providers.ScheduleEntry, opponent, beforeDate string) providers.TeamRecord {
	var record providers.TeamRecord
	for _, e := range schedule {
		if utils.NormalizeOpponent(e.Opponent) != opponent {
			continue
		}
		if beforeDate != "" && e.GameDate >= beforeDate {
			continue
		}
		switch e.Result {
		case "W":
			record.Wins++
		case "L":
			record.Losses++
		}
	}
	return record
}
