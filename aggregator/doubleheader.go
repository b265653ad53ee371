package aggregator

import (
	"strings"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// pickGame selects which of a date's games to preview. With two games on
// the slate (a double-header): if exactly one is unfinished, preview that
// one; otherwise prefer the AM start, then the lexicographically smaller
// clock time. One game is returned as-is; an empty slate returns false.
func pickGame(games []providers.GameSummary) (providers.GameSummary, bool) {
	switch len(games) {
	case 0:
		return providers.GameSummary{}, false
	case 1:
		return games[0], true
	}

	var unfinished []int
	for i, g := range games {
		if !strings.Contains(g.Status, "Final") {
			unfinished = append(unfinished, i)
		}
	}
	if len(unfinished) == 1 {
		picked := games[unfinished[0]]
		log.Infof("%s Double-header on %s: picked game %d (only unfinished game)",
			logcolors.LogAggregator, picked.GameDate, picked.GameID)
		return picked, true
	}

	best := 0
	for i := 1; i < len(games); i++ {
		if earlierStart(games[i], games[best]) {
			best = i
		}
	}
	picked := games[best]
	log.Infof("%s Double-header on %s: picked game %d (%s %s start)",
		logcolors.LogAggregator, picked.GameDate, picked.GameID, picked.GameTime, picked.AMPM)
	return picked, true
}

// earlierStart orders games AM before PM, then by clock-time string so the
// pick is deterministic regardless of slate order.
func earlierStart(a, b providers.GameSummary) bool {
	if a.AMPM != b.AMPM {
		return a.AMPM == "AM"
	}
	return a.GameTime < b.GameTime
}
