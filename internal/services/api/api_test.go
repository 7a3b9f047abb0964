package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"crimestats/internal/platform/config"
	phttp "crimestats/internal/platform/net/http"
	"crimestats/internal/platform/store"
	reportsmod "crimestats/internal/services/api/reports/module"

	"github.com/go-chi/chi/v5"
)

type emptyRows struct{}

func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return nil }
func (emptyRows) Err() error        { return nil }
func (emptyRows) Close()            {}
func (emptyRows) Columns() []string { return []string{"crime_code", "crime_type", "incident_count"} }

type fakeCH struct{ calls int }

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) {
	f.calls++
	return emptyRows{}, nil
}
func (f *fakeCH) Ping(context.Context) error { return nil }
func (f *fakeCH) Close() error               { return nil }

func mount(t *testing.T, ch *fakeCH) phttp.Router {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Config:        config.New(),
		Store:         &store.Store{CH: ch},
		Reports:       reportsmod.Options{Backend: reportsmod.BackendCH},
		EnableSwagger: true,
		EnableMetrics: true,
	})
	return r
}

func do(r phttp.Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMount_Routes(t *testing.T) {
	ch := &fakeCH{}
	r := mount(t, ch)

	cases := []struct {
		path string
		code int
		body string
	}{
		{"/api/v1/meta/health", 200, `"service":"crimestats-api"`},
		{"/api/v1/meta/ready", 200, `"status":"ok"`},
		{"/api/v1/meta/catalog", 200, `"Violent"`},
		{"/api/v1/reports/crime-type", 200, `"state":"empty"`},
		{"/api/v1/reports/crime-type?crimeCategories=Violent", 200, `"state":"ok"`},
		{"/api/v1/reports/burglary-map", 404, `"error"`},
		{"/docs/doc.json", 200, `"/reports/{report}"`},
		{"/metrics", 200, "crimestats_reports_total"},
		{"/", 307, ""},
	}
	for _, tc := range cases {
		rec := do(r, "GET", tc.path)
		if rec.Code != tc.code || !strings.Contains(rec.Body.String(), tc.body) {
			t.Fatalf("%s: code=%d body=%s", tc.path, rec.Code, rec.Body.String())
		}
	}
	if ch.calls != 1 {
		t.Fatalf("executor calls = %d, want 1", ch.calls)
	}
}

func TestMount_SwaggerVersionFromBuild(t *testing.T) {
	rec := do(mount(t, &fakeCH{}), "GET", "/docs/doc.json")
	var spec struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatal(err)
	}
	if spec.Info.Version != "dev" {
		t.Fatalf("version = %q", spec.Info.Version)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_API_RATE_LIMIT", "0")
	t.Setenv("CORE_API_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SERVICE_REPORTS_BACKEND", "ch")

	o := FromConfig(config.New(), nil)
	if o.RateLimit != 0 || len(o.Origins) != 2 || o.Reports.Backend != reportsmod.BackendCH || !o.EnableSwagger {
		t.Fatalf("options %+v", o)
	}
}
