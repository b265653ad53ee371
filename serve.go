package main

import (
	"net/http"

	"baseball-preview-go/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func cmdServe() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	router := mux.NewRouter()
	a.setupRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: false,
	})

	limiter := middleware.NewIPRateLimiter(
		rate.Limit(a.cfg.Configuration.RateLimitPerSecond),
		a.cfg.Configuration.RateLimitBurstLimit,
	)

	// logging middleware
	loggedRouter := middleware.LoggingMiddleware(router)
	// chain cors middleware
	corsHandler := c.Handler(loggedRouter)
	// chain rate limiter
	handler := middleware.RateLimitMiddleware(corsHandler, limiter)

	port := a.cfg.Configuration.Port
	log.Infof("Server listening on port %s", port)
	return http.ListenAndServe(":"+port, handler)
}
