package middleware

import (
	"net/http"
	"strconv"
	"time"

	"crimestats/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records request count and latency per chi route pattern
// unmatched paths share the "unmatched" label to keep cardinality bounded
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := capture(w)
			start := time.Now()

			next.ServeHTTP(cw, r)

			route := routePattern(r)
			metrics.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(cw.status)).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
