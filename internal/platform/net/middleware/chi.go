// Package middleware holds the api middleware: chi and go-chi/cors adapters
// plus the in house access log, panic recovery, rate limit and metrics
package middleware

import (
	"net/http"
	"time"

	pstrings "crimestats/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-ID
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d; report queries observe it
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache disables client and proxy caching of report payloads
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress gzips and deflates responses at level
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// StripSlashes routes /reports/seasonal/ as /reports/seasonal
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is the subset of go-chi/cors the dashboard needs
type CORSOptions struct {
	AllowedOrigins []string
	// AllowedMethods defaults to GET, POST and OPTIONS
	AllowedMethods []string
	// AllowedHeaders defaults to Accept, Content-Type and X-Request-ID
	AllowedHeaders []string
	MaxAge         int
}

// CORS lets the dashboard origin call the api and read the request id and
// rate limit headers
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         o.MaxAge,
	})
}
