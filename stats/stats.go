package stats

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats holds pipeline and server statistics with atomic counters
type Stats struct {
	// Process info
	StartTime time.Time

	// Request counters (serve mode)
	TotalRequests   atomic.Int64
	PreviewRequests atomic.Int64
	BundleRequests  atomic.Int64
	CacheRequests   atomic.Int64
	StatsRequests   atomic.Int64
	HealthRequests  atomic.Int64
	OtherRequests   atomic.Int64

	// Endpoint cache performance
	CacheHits   atomic.Int64
	CacheMisses atomic.Int64

	// Bundle cache performance
	BundleHits   atomic.Int64
	BundleMisses atomic.Int64

	// Upstream fetches by source
	MLBAPIFetches    atomic.Int64
	StatcastFetches  atomic.Int64
	FangraphsFetches atomic.Int64
	WeatherFetches   atomic.Int64
	FetchErrors      atomic.Int64

	// Pipeline stages
	Aggregations       atomic.Int64
	AggregationErrors  atomic.Int64
	ValidationFailures atomic.Int64
	Renders            atomic.Int64

	// Rate limiting
	RateLimitExceeded atomic.Int64

	// Response status codes
	Status2xx atomic.Int64
	Status4xx atomic.Int64
	Status5xx atomic.Int64

	// Response time tracking (microseconds)
	totalResponseTime atomic.Int64
	responseCount     atomic.Int64
	minResponseTime   atomic.Int64
	maxResponseTime   atomic.Int64
	responseMu        sync.RWMutex
}

// Global stats instance
var global = newStats()

func newStats() *Stats {
	s := &Stats{StartTime: time.Now()}
	s.minResponseTime.Store(int64(^uint64(0) >> 1)) // Max int64
	return s
}

// Get returns the global stats instance
func Get() *Stats {
	return global
}

// RecordRequest records a request to a specific endpoint
func (s *Stats) RecordRequest(endpoint string) {
	s.TotalRequests.Add(1)
	switch endpoint {
	case "/preview":
		s.PreviewRequests.Add(1)
	case "/bundles":
		s.BundleRequests.Add(1)
	case "/cache":
		s.CacheRequests.Add(1)
	case "/stats":
		s.StatsRequests.Add(1)
	case "/health":
		s.HealthRequests.Add(1)
	default:
		s.OtherRequests.Add(1)
	}
}

// RecordCacheHit records an endpoint cache hit
func (s *Stats) RecordCacheHit() {
	s.CacheHits.Add(1)
}

// RecordCacheMiss records an endpoint cache miss
func (s *Stats) RecordCacheMiss() {
	s.CacheMisses.Add(1)
}

// RecordBundleHit records a bundle cache hit
func (s *Stats) RecordBundleHit() {
	s.BundleHits.Add(1)
}

// RecordBundleMiss records a bundle cache miss
func (s *Stats) RecordBundleMiss() {
	s.BundleMisses.Add(1)
}

// RecordFetch records an upstream fetch by source name
func (s *Stats) RecordFetch(source string) {
	switch source {
	case "mlbapi":
		s.MLBAPIFetches.Add(1)
	case "statcast":
		s.StatcastFetches.Add(1)
	case "fangraphs":
		s.FangraphsFetches.Add(1)
	case "weather":
		s.WeatherFetches.Add(1)
	}
}

// RecordFetchError records a failed upstream fetch
func (s *Stats) RecordFetchError() {
	s.FetchErrors.Add(1)
}

// RecordAggregation records one bundle assembly attempt
func (s *Stats) RecordAggregation(succeeded bool) {
	s.Aggregations.Add(1)
	if !succeeded {
		s.AggregationErrors.Add(1)
	}
}

// RecordValidationFailure records a bundle that failed validation
func (s *Stats) RecordValidationFailure() {
	s.ValidationFailures.Add(1)
}

// RecordRender records one rendered preview
func (s *Stats) RecordRender() {
	s.Renders.Add(1)
}

// RecordRateLimitExceeded records a rejected request (429)
func (s *Stats) RecordRateLimitExceeded() {
	s.RateLimitExceeded.Add(1)
}

// RecordStatusCode records a response status code
func (s *Stats) RecordStatusCode(code int) {
	switch {
	case code >= 200 && code < 300:
		s.Status2xx.Add(1)
	case code >= 400 && code < 500:
		s.Status4xx.Add(1)
	case code >= 500:
		s.Status5xx.Add(1)
	}
}

// RecordResponseTime records a response time
func (s *Stats) RecordResponseTime(duration time.Duration) {
	us := duration.Microseconds()

	s.totalResponseTime.Add(us)
	s.responseCount.Add(1)

	for {
		current := s.minResponseTime.Load()
		if us >= current || s.minResponseTime.CompareAndSwap(current, us) {
			break
		}
	}
	for {
		current := s.maxResponseTime.Load()
		if us <= current || s.maxResponseTime.CompareAndSwap(current, us) {
			break
		}
	}
}

// Uptime returns the process uptime
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

// CacheHitRate returns the endpoint cache hit rate as a percentage
func (s *Stats) CacheHitRate() float64 {
	hits := s.CacheHits.Load()
	misses := s.CacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// AvgResponseTime returns the average response time
func (s *Stats) AvgResponseTime() time.Duration {
	count := s.responseCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(s.totalResponseTime.Load()/count) * time.Microsecond
}

// MinResponseTime returns the minimum response time
func (s *Stats) MinResponseTime() time.Duration {
	min := s.minResponseTime.Load()
	if min == int64(^uint64(0)>>1) {
		return 0
	}
	return time.Duration(min) * time.Microsecond
}

// MaxResponseTime returns the maximum response time
func (s *Stats) MaxResponseTime() time.Duration {
	return time.Duration(s.maxResponseTime.Load()) * time.Microsecond
}

// Snapshot returns all counters as a JSON-serializable map
func (s *Stats) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"uptime": s.Uptime().String(),
		"requests": map[string]interface{}{
			"total":   s.TotalRequests.Load(),
			"preview": s.PreviewRequests.Load(),
			"bundles": s.BundleRequests.Load(),
			"cache":   s.CacheRequests.Load(),
			"stats":   s.StatsRequests.Load(),
			"health":  s.HealthRequests.Load(),
			"other":   s.OtherRequests.Load(),
		},
		"endpoint_cache": map[string]interface{}{
			"hits":         s.CacheHits.Load(),
			"misses":       s.CacheMisses.Load(),
			"hit_rate_pct": s.CacheHitRate(),
		},
		"bundle_cache": map[string]interface{}{
			"hits":   s.BundleHits.Load(),
			"misses": s.BundleMisses.Load(),
		},
		"fetches": map[string]interface{}{
			"mlbapi":    s.MLBAPIFetches.Load(),
			"statcast":  s.StatcastFetches.Load(),
			"fangraphs": s.FangraphsFetches.Load(),
			"weather":   s.WeatherFetches.Load(),
			"errors":    s.FetchErrors.Load(),
		},
		"pipeline": map[string]interface{}{
			"aggregations":        s.Aggregations.Load(),
			"aggregation_errors":  s.AggregationErrors.Load(),
			"validation_failures": s.ValidationFailures.Load(),
			"renders":             s.Renders.Load(),
		},
		"rate_limit_exceeded": s.RateLimitExceeded.Load(),
		"status_codes": map[string]interface{}{
			"2xx": s.Status2xx.Load(),
			"4xx": s.Status4xx.Load(),
			"5xx": s.Status5xx.Load(),
		},
		"response_times": map[string]interface{}{
			"avg": s.AvgResponseTime().String(),
			"min": s.MinResponseTime().String(),
			"max": s.MaxResponseTime().String(),
		},
	}
}
