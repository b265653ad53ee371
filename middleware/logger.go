package middleware

import (
	"net/http"
	"time"

	"baseball-preview-go/stats"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ResponseRecorder wraps http.ResponseWriter to capture status and body size
type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	BodySize   int
}

// NewResponseRecorder creates a recorder defaulting to 200 OK
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (r *ResponseRecorder) WriteHeader(code int) {
	r.StatusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *ResponseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.BodySize += n
	return n, err
}

// getStatusColor returns the ANSI color for a status code class
func getStatusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "\033[32m" // green
	case code >= 300 && code < 400:
		return "\033[36m" // cyan
	case code >= 400 && code < 500:
		return "\033[33m" // yellow
	case code >= 500:
		return "\033[31m" // red
	default:
		return "\033[0m"
	}
}

// LoggingMiddleware tags each request with an ID, logs it with its outcome,
// and records it in the stats counters.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()[:8]
		recorder := NewResponseRecorder(w)
		recorder.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(recorder, r)
		duration := time.Since(start)

		s := stats.Get()
		s.RecordRequest(r.URL.Path)
		s.RecordStatusCode(recorder.StatusCode)
		s.RecordResponseTime(duration)

		log.Infof("[%s] %s %s %s%d\033[0m %dB %v (%s)",
			requestID, r.Method, r.URL.Path,
			getStatusColor(recorder.StatusCode), recorder.StatusCode,
			recorder.BodySize, duration.Round(time.Microsecond), r.RemoteAddr)
	})
}
