package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"crimestats/internal/platform/net/middleware"
)

// StackOptions tunes the api middleware stack
type StackOptions struct {
	// Origins allowed by CORS; empty allows none
	Origins []string
	// RateLimit is requests per minute per client ip; zero disables it
	RateLimit int
	// Metrics records prometheus request metrics per route
	Metrics bool
	// Slow marks requests at or above this latency as warn in the access log
	Slow time.Duration
	// Timeout cancels request contexts; zero means 30s
	Timeout time.Duration
}

// Stack returns the per scope middleware slice for the api
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 500 * time.Millisecond
	}
	mw := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,
		middleware.RateLimit(middleware.RateLimitOptions{Requests: o.RateLimit, Window: time.Minute}),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
	}
	if o.Metrics {
		mw = append(mw, middleware.Metrics())
	}
	return append(mw,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	)
}

// CommonStack is Stack with defaults
func CommonStack() []func(http.Handler) http.Handler { return Stack(StackOptions{}) }
