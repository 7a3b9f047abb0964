package middleware

import (
	"net/http"
	"time"

	"crimestats/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// AccessLogOptions configures the access log
type AccessLogOptions struct {
	// Slow logs requests at or above this latency at warn; zero disables
	Slow time.Duration
}

// captureWriter records the status and body size a handler produced
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func capture(w http.ResponseWriter) *captureWriter {
	return &captureWriter{ResponseWriter: w, status: http.StatusOK}
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (cw *captureWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }

// AccessLogZerolog writes one line per request on the request scoped logger
// report routes also carry the report slug
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := capture(w)
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case cw.status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			if report := chi.URLParam(r, "report"); report != "" {
				evt = evt.Str("report", report)
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}
