package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crimestats/internal/platform/metrics"
	"crimestats/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Metrics())
	r.Get("/api/v1/reports/{report}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	counter := metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/reports/{report}", "502")
	before := testutil.ToFloat64(counter)
	for _, p := range []string{"/api/v1/reports/seasonal", "/api/v1/reports/long-term"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("counter delta = %v, want 2", got)
	}
}
