package metrics

import (
	"sort"

	"baseball-preview-go/services/providers"
)

// Standing is one division-race row with a schedule-derived record.
type Standing struct {
	Team        string  `json:"team"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	GamesBehind float64 `json:"gamesBehind"`
}

// RecordFromSchedule reconstructs a team's win/loss record from its own
// schedule, counting finished games strictly before the cutoff date.
func RecordFromSchedule(schedule []providers.ScheduleEntry, beforeDate string) providers.TeamRecord {
	var record providers.TeamRecord
	for _, e := range schedule {
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

// DivisionRace computes games-behind for a set of team records and returns
// the standings sorted best-first. Ties sort alphabetically by team so the
// output is deterministic.
func DivisionRace(records map[string]providers.TeamRecord) []Standing {
	if len(records) == 0 {
		return nil
	}

	standings := make([]Standing, 0, len(records))
	for team, r := range records {
		standings = append(standings, Standing{Team: team, Wins: r.Wins, Losses: r.Losses})
	}

	sort.Slice(standings, func(i, j int) bool {
		di := standings[i].Wins - standings[i].Losses
		dj := standings[j].Wins - standings[j].Losses
		if di != dj {
			return di > dj
		}
		return standings[i].Team < standings[j].Team
	})

	leader := standings[0]
	for i := range standings {
		gb := float64((leader.Wins-standings[i].Wins)+(standings[i].Losses-leader.Losses)) / 2
		standings[i].GamesBehind = gb
	}
	return standings
}
