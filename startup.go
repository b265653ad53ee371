package main

import (
	"fmt"
	"time"

	"baseball-preview-go/aggregator"
	"baseball-preview-go/bundle"
	"baseball-preview-go/cache"
	"baseball-preview-go/config"
	"baseball-preview-go/services/providers"
	"baseball-preview-go/services/providers/fangraphs"
	"baseball-preview-go/services/providers/mlbapi"
	"baseball-preview-go/services/providers/statcast"
	"baseball-preview-go/services/providers/weather"

	log "github.com/sirupsen/logrus"
)

// app holds the wired pipeline shared by every command.
type app struct {
	cfg       config.Config
	endpoints *cache.EndpointCache
	store     *bundle.Store
	agg       *aggregator.Aggregator

	// fetchers kept for breaker introspection in serve mode
	fetchers map[string]*providers.Fetcher
}

func newApp() (*app, error) {
	cfg := config.Get()

	endpoints, err := cache.NewEndpointCache(
		cfg.Configuration.EndpointCachePath,
		cfg.EndpointCacheTTL(),
		cfg.FeatureFlags.CacheCompression,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open endpoint cache: %w", err)
	}

	store, err := bundle.NewStore(cfg.Configuration.BundleCachePath)
	if err != nil {
		endpoints.Close()
		return nil, fmt.Errorf("failed to open bundle store: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Configuration.Timezone)
	if err != nil {
		log.Warnf("Unknown timezone %q, using UTC", cfg.Configuration.Timezone)
		loc = time.UTC
	}

	fetchers := map[string]*providers.Fetcher{
		"mlbapi":    newSourceFetcher(cfg, "mlbapi", cfg.Configuration.MLBAPIBaseURL, endpoints),
		"statcast":  newSourceFetcher(cfg, "statcast", cfg.Configuration.StatcastBaseURL, endpoints),
		"fangraphs": newSourceFetcher(cfg, "fangraphs", cfg.Configuration.FangraphsBaseURL, endpoints),
		"weather":   newSourceFetcher(cfg, "weather", cfg.Configuration.WeatherBaseURL, endpoints),
	}

	agg := aggregator.New(aggregator.Deps{
		Games:    mlbapi.New(fetchers["mlbapi"], loc),
		Pitches:  statcast.New(fetchers["statcast"]),
		Enrich:   fangraphs.New(fetchers["fangraphs"]),
		Forecast: weather.New(fetchers["weather"]),
		Store:    store,
	})

	return &app{
		cfg:       cfg,
		endpoints: endpoints,
		store:     store,
		agg:       agg,
		fetchers:  fetchers,
	}, nil
}

func newSourceFetcher(cfg config.Config, source, baseURL string, ec *cache.EndpointCache) *providers.Fetcher {
	return providers.NewFetcher(providers.FetcherConfig{
		Source:           source,
		BaseURL:          baseURL,
		UserAgent:        cfg.Configuration.UserAgent,
		Timeout:          cfg.UpstreamTimeout(),
		RatePerSecond:    cfg.Configuration.UpstreamRatePerSecond,
		RateBurst:        cfg.Configuration.UpstreamRateBurst,
		BreakerThreshold: cfg.Configuration.CircuitBreakerThreshold,
		BreakerCooldown:  cfg.CircuitBreakerCooldown(),
	}, ec)
}

func (a *app) Close() {
	if err := a.endpoints.Close(); err != nil {
		log.Errorf("Failed to close endpoint cache: %v", err)
	}
}
