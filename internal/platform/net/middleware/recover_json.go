package middleware

import (
	stdjson "encoding/json"
	"net/http"
	"runtime/debug"

	perr "crimestats/internal/platform/errors"
	"crimestats/internal/platform/logger"
	"crimestats/internal/platform/metrics"
	pnet "crimestats/internal/platform/net"
)

// RecoverJSON turns a handler panic into the 500 error envelope and logs the
// stack; http.ErrAbortHandler is re-raised so the server drops the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			metrics.Panics.WithLabelValues(routePattern(r)).Inc()
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = stdjson.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
