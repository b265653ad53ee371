package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Configuration struct {
		// Cache layout
		EndpointCachePath string `envconfig:"ENDPOINT_CACHE_PATH" default:"data/api_cache/endpoints.db"`
		BundleCachePath   string `envconfig:"BUNDLE_CACHE_PATH" default:"data/bundles"`
		RenderOutputPath  string `envconfig:"RENDER_OUTPUT_PATH" default:"data/previews"`

		// Endpoint cache TTL. The bundle tier has no TTL: bundles are
		// invalidated explicitly, never by age.
		EndpointCacheTTLHours int `envconfig:"ENDPOINT_CACHE_TTL_HOURS" default:"6"`

		// Upstream sources
		MLBAPIBaseURL         string  `envconfig:"MLB_API_BASE_URL" default:"https://statsapi.mlb.com/api/v1"`
		StatcastBaseURL       string  `envconfig:"STATCAST_BASE_URL" default:"https://baseballsavant.mlb.com"`
		FangraphsBaseURL      string  `envconfig:"FANGRAPHS_BASE_URL" default:"https://www.fangraphs.com/api"`
		WeatherBaseURL        string  `envconfig:"WEATHER_BASE_URL" default:"https://api.weather.gov"`
		UpstreamTimeoutSecs   int     `envconfig:"UPSTREAM_TIMEOUT_SECS" default:"30"`
		UpstreamRatePerSecond float64 `envconfig:"UPSTREAM_RATE_PER_SECOND" default:"4"`
		UpstreamRateBurst     int     `envconfig:"UPSTREAM_RATE_BURST" default:"8"`
		UserAgent             string  `envconfig:"USER_AGENT" default:"(baseball-preview-go, contact@example.com)"`

		// Circuit breaker for upstream sources
		CircuitBreakerThreshold    int `envconfig:"CIRCUIT_BREAKER_THRESHOLD" default:"5"`
		CircuitBreakerCooldownSecs int `envconfig:"CIRCUIT_BREAKER_COOLDOWN_SECS" default:"300"`

		// Serve mode
		Port                string `envconfig:"PORT" default:"8080"`
		RateLimitPerSecond  int    `envconfig:"RATE_LIMIT_PER_SECOND" default:"2"`
		RateLimitBurstLimit int    `envconfig:"RATE_LIMIT_BURST_LIMIT" default:"5"`

		// Display timezone for game times (schedule calendar)
		Timezone string `envconfig:"TIMEZONE" default:"America/New_York"`
	}

	FeatureFlags struct {
		CacheCompression bool `envconfig:"FF_CACHE_COMPRESSION" default:"true"`
	}
}

// EndpointCacheTTL returns the endpoint cache TTL as a duration.
func (c Config) EndpointCacheTTL() time.Duration {
	return time.Duration(c.Configuration.EndpointCacheTTLHours) * time.Hour
}

// UpstreamTimeout returns the per-request upstream timeout as a duration.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Configuration.UpstreamTimeoutSecs) * time.Second
}

// CircuitBreakerCooldown returns the breaker cooldown as a duration.
func (c Config) CircuitBreakerCooldown() time.Duration {
	return time.Duration(c.Configuration.CircuitBreakerCooldownSecs) * time.Second
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

// Get returns the process-wide configuration.
func Get() Config {
	return conf
}

// Reload re-reads configuration from the environment (primarily for testing).
func Reload() Config {
	conf = mustLoad()
	return conf
}
