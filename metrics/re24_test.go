package metrics

import (
	"math"
	"testing"

	"baseball-preview-go/services/providers"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAccumulateRE24PrefixSum(t *testing.T) {
	games := []providers.GameRE24{
		{GameDate: "2025-06-01", RE24: 1.2, PA: 4},
		{GameDate: "2025-06-02", RE24: -0.5, PA: 5},
		{GameDate: "2025-06-04", RE24: 0.8, PA: 4},
		{GameDate: "2025-06-05", RE24: 0.0, PA: 3},
	}

	out := AccumulateRE24(games)
	if len(out) != 4 {
		t.Fatalf("Expected 4 games, got %d", len(out))
	}

	// cumulative[i] must equal the sum of deltas d1..di
	sum := 0.0
	for i, g := range out {
		sum += g.RE24
		if !almostEqual(g.CumulativeRE24, sum) {
			t.Errorf("Game %d: cumulative %v, expected %v", i+1, g.CumulativeRE24, sum)
		}
		if g.GameNumber != i+1 {
			t.Errorf("Game %d: gameNumber %d, expected %d", i+1, g.GameNumber, i+1)
		}
	}
}

func TestAccumulateRE24SortsInput(t *testing.T) {
	games := []providers.GameRE24{
		{GameDate: "2025-06-05", RE24: 0.3},
		{GameDate: "2025-06-01", RE24: 1.0},
		{GameDate: "2025-06-03", RE24: -0.2},
	}

	out := AccumulateRE24(games)
	if out[0].GameDate != "2025-06-01" || out[2].GameDate != "2025-06-05" {
		t.Errorf("Expected date-sorted output, got %v, %v, %v",
			out[0].GameDate, out[1].GameDate, out[2].GameDate)
	}
	if !almostEqual(out[2].CumulativeRE24, 1.1) {
		t.Errorf("Expected final cumulative 1.1, got %v", out[2].CumulativeRE24)
	}
}

func TestAccumulateRE24Empty(t *testing.T) {
	if out := AccumulateRE24(nil); out != nil {
		t.Errorf("Expected nil for empty input, got %v", out)
	}
}

func TestSeasonTotal(t *testing.T) {
	games := AccumulateRE24([]providers.GameRE24{
		{GameDate: "2025-06-01", RE24: 2.0},
		{GameDate: "2025-06-02", RE24: -0.5},
	})
	if got := SeasonTotal(games); !almostEqual(got, 1.5) {
		t.Errorf("SeasonTotal = %v, expected 1.5", got)
	}
	if got := SeasonTotal(nil); got != 0 {
		t.Errorf("SeasonTotal(nil) = %v, expected 0", got)
	}
}

func TestSumLastNTruncation(t *testing.T) {
	// A player with 3 recorded games before the cutoff and a requested
	// window of 10: the sum covers all 3.
	games := AccumulateRE24([]providers.GameRE24{
		{GameDate: "2025-06-01", RE24: 1.0},
		{GameDate: "2025-06-02", RE24: 0.5},
		{GameDate: "2025-06-03", RE24: -0.25},
	})

	if got := SumLastN(games, 10, "2025-06-10"); !almostEqual(got, 1.25) {
		t.Errorf("SumLastN window 10 over 3 games = %v, expected 1.25", got)
	}
}

func TestSumLastNWindow(t *testing.T) {
	games := AccumulateRE24([]providers.GameRE24{
		{GameDate: "2025-06-01", RE24: 5.0},
		{GameDate: "2025-06-02", RE24: 1.0},
		{GameDate: "2025-06-03", RE24: 2.0},
		{GameDate: "2025-06-04", RE24: 3.0},
	})

	// Last 2 games strictly before 06-04: 06-02 and 06-03
	if got := SumLastN(games, 2, "2025-06-04"); !almostEqual(got, 3.0) {
		t.Errorf("SumLastN(2, 06-04) = %v, expected 3.0", got)
	}

	// The cutoff itself is excluded
	if got := SumLastN(games, 10, "2025-06-01"); got != 0 {
		t.Errorf("SumLastN before first game = %v, expected 0", got)
	}
}
