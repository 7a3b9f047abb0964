package module

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	modkit "crimestats/internal/modkit"
	"crimestats/internal/platform/config"
	phttp "crimestats/internal/platform/net/http"
	"crimestats/internal/platform/store"
	"crimestats/internal/platform/testkit"
	"crimestats/internal/services/api/reports/domain"

	"github.com/go-chi/chi/v5"
)

type chRows struct {
	cols []string
	data [][]any
	i    int
}

func (r *chRows) Next() bool        { r.i++; return r.i <= len(r.data) }
func (r *chRows) Err() error        { return nil }
func (r *chRows) Close()            {}
func (r *chRows) Columns() []string { return r.cols }
func (r *chRows) Scan(dst ...any) error {
	for i, v := range r.data[r.i-1] {
		*(dst[i].(*any)) = v
	}
	return nil
}

type fakeCH struct{ sql string }

func (f *fakeCH) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	f.sql = sql
	return &chRows{
		cols: []string{"crime_code", "crime_type", "incident_count"},
		data: [][]any{{"110", "HOMICIDE", uint64(4)}},
	}, nil
}
func (f *fakeCH) Ping(context.Context) error { return nil }
func (f *fakeCH) Close() error               { return nil }

func TestFromConfig_Defaults(t *testing.T) {
	o := FromConfig(config.New())
	if o.Backend != BackendPG || o.Timeout != 15*time.Second || o.BreakerFailures != 5 {
		t.Fatalf("defaults %+v", o)
	}
	if o.Fallback.IsZero() || o.Fallback.Start.Month() != time.January || o.Fallback.End.Day() != 31 {
		t.Fatalf("fallback %+v", o.Fallback)
	}
	if o.LongTermFloor.Year() != 2020 {
		t.Fatalf("floor %v", o.LongTermFloor)
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	t.Setenv("SERVICE_REPORTS_BACKEND", "CH")
	t.Setenv("SERVICE_REPORTS_EVENT_START", "none")
	t.Setenv("SERVICE_REPORTS_STRICT", "true")
	t.Setenv("SERVICE_REPORTS_TIMEOUT", "2s")
	t.Setenv("CORE_API_ECHO_SQL", "true")

	o := FromConfig(config.New())
	if o.Backend != BackendCH || !o.Strict || o.Timeout != 2*time.Second || !o.EchoSQL {
		t.Fatalf("overrides %+v", o)
	}
	if !o.Fallback.IsZero() {
		t.Fatalf("fallback should be cleared: %+v", o.Fallback)
	}
}

func TestFromConfig_BadBackendPanics(t *testing.T) {
	t.Setenv("SERVICE_REPORTS_BACKEND", "duck")
	testkit.MustPanic(t, func() { FromConfig(config.New()) })
}

func TestNew_MissingBackendPanics(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{}, Options{Backend: BackendPG}) })
	testkit.MustPanic(t, func() { New(modkit.Deps{}, Options{Backend: BackendCH}) })
}

func TestNew_BadCatalogPanics(t *testing.T) {
	testkit.MustPanic(t, func() {
		New(modkit.Deps{CH: &fakeCH{}}, Options{Backend: BackendCH, CatalogPath: "/nonexistent/catalog.yaml"})
	})
}

func TestModule_MountsAndRuns(t *testing.T) {
	ch := &fakeCH{}
	m := New(modkit.Deps{CH: ch}, Options{Backend: BackendCH, EchoSQL: true})
	if m.Name() != "reports" {
		t.Fatalf("name %q", m.Name())
	}
	if m.Prefix() != "/reports" {
		t.Fatalf("prefix %q", m.Prefix())
	}
	if _, ok := modkit.PortOf[domain.ServicePort](m); !ok {
		t.Fatal("reports port not exposed")
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/reports/crime-type?crimeCategories=Violent", nil))
	if rec.Code != 200 {
		t.Fatalf("code %d body %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data domain.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.State != domain.StateOK || env.Data.Result.RowsAffected != 1 {
		t.Fatalf("report %+v", env.Data)
	}
	if env.Data.Query == nil || env.Data.Query.SQL != ch.sql || env.Data.Query.Dialect != "ch" {
		t.Fatalf("query echo %+v", env.Data.Query)
	}
}
