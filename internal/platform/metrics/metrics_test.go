package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsRegisteredAndServed(t *testing.T) {
	ReportsTotal.WithLabelValues("crime-type", "empty").Inc()
	if got := testutil.ToFloat64(ReportsTotal.WithLabelValues("crime-type", "empty")); got < 1 {
		t.Fatalf("ReportsTotal = %v", got)
	}
	BreakerState.WithLabelValues("reports-pg").Set(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{"crimestats_reports_total", `crimestats_breaker_state{name="reports-pg"} 2`} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
