package main

import (
	"errors"
	"net/http"

	"baseball-preview-go/aggregator"
	"baseball-preview-go/logcolors"
	"baseball-preview-go/stats"

	log "github.com/sirupsen/logrus"
)

func (a *app) getPreview(w http.ResponseWriter, r *http.Request) {
	away := r.URL.Query().Get("away")
	home := r.URL.Query().Get("home")
	date := r.URL.Query().Get("date")
	if away == "" || home == "" || date == "" {
		Respond(w, r).Error(http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "away, home, and date query parameters are required",
		})
		return
	}
	force := r.URL.Query().Get("force") == "true"

	cacheStatus := "HIT"
	if force || !a.store.Has(away, home, date) {
		cacheStatus = "MISS"
	}

	b, report, err := a.agg.Build(r.Context(), away, home, date,
		aggregator.Options{Force: force, Strict: r.URL.Query().Get("strict") == "true"})
	if err != nil {
		var verr *aggregator.ValidationError
		if errors.As(err, &verr) {
			Respond(w, r).Error(http.StatusBadGateway, map[string]interface{}{
				"error":   "bundle incomplete",
				"missing": verr.Missing,
			})
			return
		}
		log.Errorf("%s Preview build failed: %v", logcolors.LogAggregator, err)
		Respond(w, r).Error(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	Respond(w, r).SetCacheStatus(cacheStatus).JSON(map[string]interface{}{
		"bundle":   b,
		"missing":  report.Missing,
		"warnings": report.Warnings,
	})
}

func (a *app) listBundles(w http.ResponseWriter, r *http.Request) {
	Respond(w, r).JSON(map[string]interface{}{
		"bundles": a.store.List(),
	})
}

func (a *app) getCacheStats(w http.ResponseWriter, r *http.Request) {
	cs := a.endpoints.Stats()
	Respond(w, r).JSON(map[string]interface{}{
		"endpoint_cache": cs,
		"bundle_count":   len(a.store.List()),
	})
}

func (a *app) clearCache(w http.ResponseWriter, r *http.Request) {
	n := a.endpoints.ClearAll()
	log.Infof("%s Cleared %d entries via API", logcolors.LogCache, n)
	Respond(w, r).JSON(map[string]interface{}{
		"cleared": n,
	})
}

func (a *app) clearExpiredCache(w http.ResponseWriter, r *http.Request) {
	n := a.endpoints.ClearExpired()
	Respond(w, r).JSON(map[string]interface{}{
		"cleared": n,
	})
}

func (a *app) getStats(w http.ResponseWriter, r *http.Request) {
	snapshot := stats.Get().Snapshot()

	cs := a.endpoints.Stats()
	snapshot["cache_storage"] = map[string]interface{}{
		"entries": cs.Total,
		"valid":   cs.Valid,
		"expired": cs.Expired,
		"size_kb": float64(cs.TotalSizeBytes) / 1024,
	}

	Respond(w, r).JSON(snapshot)
}

func (a *app) getHealthStatus(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":  "ok",
		"bundles": len(a.store.List()),
	}

	breakers := map[string]interface{}{}
	degraded := false
	for source, f := range a.fetchers {
		state := f.Breaker.State().String()
		breakers[source] = state
		if f.Breaker.IsOpen() {
			degraded = true
		}
	}
	health["circuit_breakers"] = breakers
	if degraded {
		health["status"] = "degraded"
	}

	Respond(w, r).JSON(health)
}

func (a *app) getCircuitBreakerStatus(w http.ResponseWriter, r *http.Request) {
	out := map[string]interface{}{}
	for source, f := range a.fetchers {
		out[source] = map[string]interface{}{
			"state":            f.Breaker.State().String(),
			"failures":         f.Breaker.Failures(),
			"time_until_retry": f.Breaker.TimeUntilRetry().String(),
		}
	}
	Respond(w, r).JSON(out)
}

func (a *app) resetCircuitBreaker(w http.ResponseWriter, r *http.Request) {
	for _, f := range a.fetchers {
		f.Breaker.Reset()
	}
	Respond(w, r).JSON(map[string]interface{}{
		"message": "All circuit breakers reset to CLOSED state",
	})
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	Respond(w, r).JSON(map[string]interface{}{
		"help": "Use /preview?away=NYY&home=BOS&date=2025-06-06 to build or fetch a game preview bundle. " +
			"See /bundles, /cache/stats, /stats, /health, /circuit-breaker for operational endpoints.",
	})
}
