package main

import (
	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the API
func (a *app) setupRoutes(router *mux.Router) {
	router.HandleFunc("/preview", a.getPreview)
	router.HandleFunc("/bundles", a.listBundles)

	// Cache management endpoints
	router.HandleFunc("/cache/stats", a.getCacheStats)
	router.HandleFunc("/cache/clear", a.clearCache)
	router.HandleFunc("/cache/clear-expired", a.clearExpiredCache)

	// Health and stats endpoints
	router.HandleFunc("/health", a.getHealthStatus)
	router.HandleFunc("/stats", a.getStats)

	// Circuit breaker endpoints
	router.HandleFunc("/circuit-breaker", a.getCircuitBreakerStatus)
	router.HandleFunc("/circuit-breaker/reset", a.resetCircuitBreaker)

	// Help endpoint
	router.HandleFunc("/", helpHandler)
}
