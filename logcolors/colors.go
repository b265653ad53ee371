package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"

	// Bright variants for more color variety
	BrightGreen   = "\033[92m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"

	Red       = "\033[31m"
	BrightRed = "\033[91m"
)

// Cache-related log prefixes
const (
	LogCacheInit  = Blue + "[Cache:Init]" + Reset
	LogCache      = Blue + "[Cache:Endpoint]" + Reset
	LogCacheClear = Blue + "[Cache:Clear]" + Reset
	LogBundle     = Green + "[Cache:Bundle]" + Reset
)

// Data pipeline log prefixes
const (
	LogAggregator = BrightGreen + "[Aggregator]" + Reset
	LogValidate   = BrightMagenta + "[Validate]" + Reset
	LogSeries     = Cyan + "[Series]" + Reset
	LogRender     = BrightCyan + "[Render]" + Reset
)

// Upstream source log prefixes
const (
	LogMLB       = BrightBlue + "[MLB]" + Reset
	LogStatcast  = Purple + "[Statcast]" + Reset
	LogFangraphs = BrightMagenta + "[FanGraphs]" + Reset
	LogWeather   = BrightCyan + "[Weather]" + Reset
)

// Rate limiting log prefixes
const (
	LogRateLimit = Purple + "[RateLimit]" + Reset
)

// CircuitBreakerPrefix returns a colored circuit breaker prefix with the given name
func CircuitBreakerPrefix(name string) string {
	return Purple + "[CircuitBreaker:" + name + "]" + Reset
}

// sourceColors are the colors used for upstream source names.
// The same source name always gets the same color.
var sourceColors = []string{
	Green, Blue, Purple, Cyan, Red,
	BrightGreen, BrightBlue, BrightMagenta, BrightCyan, BrightRed,
}

// Source returns a colored source name for log messages
func Source(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	color := sourceColors[hash%len(sourceColors)]
	return color + name + Reset
}
