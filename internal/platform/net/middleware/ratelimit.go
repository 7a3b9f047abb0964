package middleware

import (
	stdjson "encoding/json"
	"net/http"
	"time"

	perr "crimestats/internal/platform/errors"
	"crimestats/internal/platform/metrics"
	pnet "crimestats/internal/platform/net"

	"github.com/go-chi/httprate"
)

// RateLimitOptions configures the per client limiter
type RateLimitOptions struct {
	// Requests per Window; zero disables limiting
	Requests int
	Window   time.Duration
	// ByRealIP keys on X-Forwarded-For / X-Real-IP instead of RemoteAddr
	ByRealIP bool
}

// RateLimit limits requests per client ip and answers over-limit calls with
// the standard JSON error envelope
func RateLimit(o RateLimitOptions) func(http.Handler) http.Handler {
	if o.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if o.Window <= 0 {
		o.Window = time.Minute
	}
	key := httprate.KeyByIP
	if o.ByRealIP {
		key = httprate.KeyByRealIP
	}
	return httprate.Limit(o.Requests, o.Window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RateLimited.WithLabelValues(routePattern(r)).Inc()
			status, body := pnet.Error(perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit exceeded"), pnet.RequestID(r.Context()))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = stdjson.NewEncoder(w).Encode(body)
		}),
	)
}
