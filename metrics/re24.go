package metrics

import (
	"sort"

	"baseball-preview-go/services/providers"
)

// PlayerGameRE24 is one game in a player's run-expectancy series, annotated
// with its position in the sequence and the running total.
type PlayerGameRE24 struct {
	GameNumber     int     `json:"gameNumber"`
	GameDate       string  `json:"gameDate"`
	RE24           float64 `json:"re24"`
	CumulativeRE24 float64 `json:"cumulativeRe24"`
	PA             int     `json:"pa"`
}

// AccumulateRE24 turns per-game run-expectancy deltas into a cumulative
// series. The input is sorted by date here rather than trusted to arrive
// sorted; the scan itself is a strict left-to-right prefix sum.
func AccumulateRE24(games []providers.GameRE24) []PlayerGameRE24 {
	if len(games) == 0 {
		return nil
	}

	sorted := make([]providers.GameRE24, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GameDate < sorted[j].GameDate
	})

	out := make([]PlayerGameRE24, len(sorted))
	cumulative := 0.0
	for i, g := range sorted {
		cumulative += g.RE24
		out[i] = PlayerGameRE24{
			GameNumber:     i + 1,
			GameDate:       g.GameDate,
			RE24:           g.RE24,
			CumulativeRE24: cumulative,
			PA:             g.PA,
		}
	}
	return out
}

// SeasonTotal returns the final cumulative RE24 of a series, or 0 for an
// empty series.
func SeasonTotal(games []PlayerGameRE24) float64 {
	if len(games) == 0 {
		return 0
	}
	return games[len(games)-1].CumulativeRE24
}

// SumLastN sums the RE24 deltas of the final n games strictly before the
// cutoff date. Players with fewer than n recorded games contribute all of
// them; the window is summed, not averaged.
func SumLastN(games []PlayerGameRE24, n int, cutoff string) float64 {
	var before []PlayerGameRE24
	for _, g := range games {
		if g.GameDate < cutoff {
			before = append(before, g)
		}
	}

	start := 0
	if len(before) > n {
		start = len(before) - n
	}

	sum := 0.0
	for _, g := range before[start:] {
		sum += g.RE24
	}
	return sum
}
