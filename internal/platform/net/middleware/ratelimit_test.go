package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "crimestats/internal/platform/errors"
	"crimestats/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

func TestRateLimit_RejectsOverLimitWithEnvelope(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.RateLimit(middleware.RateLimitOptions{Requests: 2, Window: time.Minute}))
	r.Get("/reports/{report}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/reports/seasonal", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}
	for i := 0; i < 2; i++ {
		if rec := do(); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	rec := do()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status %d, want 429", rec.Code)
	}
	var body struct {
		Code perr.ErrorCode `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Code != perr.ErrorCodeTooManyRequests {
		t.Fatalf("body = %s (%v)", rec.Body.String(), err)
	}
}

func TestRateLimit_ZeroDisables(t *testing.T) {
	h := middleware.RateLimit(middleware.RateLimitOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d limited with limiter disabled", i)
		}
	}
}
