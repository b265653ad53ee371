package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"baseball-preview-go/cache"
	"baseball-preview-go/circuitbreaker"
	"baseball-preview-go/logcolors"
	"baseball-preview-go/stats"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Fetcher is the shared cache-through HTTP client for one upstream source.
// Every request goes cache first; misses pass the circuit breaker, wait on
// the per-source rate limiter, hit the upstream, and write back to the cache.
type Fetcher struct {
	Source    string
	BaseURL   string
	UserAgent string
	Client    *http.Client
	Cache     *cache.EndpointCache
	Limiter   *rate.Limiter
	Breaker   *circuitbreaker.CircuitBreaker
}

// FetcherConfig holds what NewFetcher needs for one source
type FetcherConfig struct {
	Source           string
	BaseURL          string
	UserAgent        string
	Timeout          time.Duration
	RatePerSecond    float64
	RateBurst        int
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// NewFetcher builds a fetcher for one source sharing the endpoint cache
func NewFetcher(cfg FetcherConfig, ec *cache.EndpointCache) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 4
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 8
	}

	return &Fetcher{
		Source:    cfg.Source,
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Client:    &http.Client{Timeout: cfg.Timeout},
		Cache:     ec,
		Limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		Breaker: circuitbreaker.New(circuitbreaker.Config{
			Name:      cfg.Source,
			Threshold: cfg.BreakerThreshold,
			Cooldown:  cfg.BreakerCooldown,
		}),
	}
}

// GetJSON fetches endpoint with params, decoding the JSON response into out.
// Cached responses are served without touching the upstream.
func (f *Fetcher) GetJSON(ctx context.Context, endpoint string, params map[string]any, out any) error {
	if f.Cache != nil {
		if payload, ok := f.Cache.Get(f.Source, endpoint, params); ok {
			stats.Get().RecordCacheHit()
			return json.Unmarshal(payload, out)
		}
		stats.Get().RecordCacheMiss()
	}

	body, err := f.fetch(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewProviderError(f.Source, "failed to parse response", err)
	}

	if f.Cache != nil {
		if err := f.Cache.Set(f.Source, endpoint, params, json.RawMessage(body)); err != nil {
			log.Warnf("%s Failed to cache %s response: %v", logcolors.Source(f.Source), endpoint, err)
		}
	}
	return nil
}

// GetRaw fetches endpoint with params, returning the raw body without JSON
// validation. Used for CSV upstreams; responses are cached as JSON strings.
func (f *Fetcher) GetRaw(ctx context.Context, endpoint string, params map[string]any) ([]byte, error) {
	if f.Cache != nil {
		if payload, ok := f.Cache.Get(f.Source, endpoint, params); ok {
			stats.Get().RecordCacheHit()
			var body string
			if err := json.Unmarshal(payload, &body); err == nil {
				return []byte(body), nil
			}
		}
		stats.Get().RecordCacheMiss()
	}

	body, err := f.fetch(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	if f.Cache != nil {
		if err := f.Cache.Set(f.Source, endpoint, params, string(body)); err != nil {
			log.Warnf("%s Failed to cache %s response: %v", logcolors.Source(f.Source), endpoint, err)
		}
	}
	return body, nil
}

func (f *Fetcher) fetch(ctx context.Context, endpoint string, params map[string]any) ([]byte, error) {
	if f.Breaker != nil && !f.Breaker.Allow() {
		return nil, NewProviderError(f.Source, "upstream unavailable", circuitbreaker.ErrCircuitOpen)
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, NewProviderError(f.Source, "rate limiter wait canceled", err)
		}
	}

	requestURL := f.BaseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + encodeParams(params)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, NewProviderError(f.Source, "failed to create request", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("%s GET %s", logcolors.Source(f.Source), requestURL)
	stats.Get().RecordFetch(f.Source)

	resp, err := f.Client.Do(req)
	if err != nil {
		f.recordFailure()
		return nil, NewProviderError(f.Source, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.recordFailure()
		return nil, NewProviderError(f.Source, fmt.Sprintf("upstream returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.recordFailure()
		return nil, NewProviderError(f.Source, "failed to read response", err)
	}

	if f.Breaker != nil {
		f.Breaker.RecordSuccess()
	}
	return body, nil
}

func (f *Fetcher) recordFailure() {
	stats.Get().RecordFetchError()
	if f.Breaker != nil {
		f.Breaker.RecordFailure()
	}
}

// encodeParams builds a query string with keys in sorted order so request
// URLs are stable for logging and tests.
func encodeParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, fmt.Sprint(params[k]))
	}
	return values.Encode()
}
