package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crimestats/internal/core/criteria"
	perr "crimestats/internal/platform/errors"
	phttp "crimestats/internal/platform/net/http"
	"crimestats/internal/services/api/reports/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	report string
	params criteria.Params
	out    domain.Report
	err    error
}

func (f *fakeSvc) Run(_ context.Context, report string, p criteria.Params) (domain.Report, error) {
	f.report, f.params = report, p
	return f.out, f.err
}

type envelope struct {
	StatusCode int            `json:"status_code"`
	Code       perr.ErrorCode `json:"code"`
	Error      string         `json:"error"`
	Data       *domain.Report `json:"data"`
}

func serve(t *testing.T, s *fakeSvc, req *stdhttp.Request) (int, envelope) {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/reports", func(rr phttp.Router) { Register(rr, s) })

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestGet_ParsesQuery(t *testing.T) {
	s := &fakeSvc{out: domain.Report{Report: "crime-type", State: domain.StateOK, Result: domain.EmptyResult()}}
	req := httptest.NewRequest("GET",
		"/reports/crime-type?crimeCategories=Violent,Fraud&laRegions=North&startDate=2024-01-01&season=holiday&holidays=July4th", nil)

	code, env := serve(t, s, req)
	if code != 200 || env.Data == nil || env.Data.State != domain.StateOK {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	if s.report != "crime-type" {
		t.Fatalf("report %q", s.report)
	}
	p := s.params
	if len(p.CrimeCategories) != 2 || p.LARegions[0] != "North" || p.StartDate != "2024-01-01" ||
		p.FilterBy != "holiday" || p.Holidays[0] != "July4th" {
		t.Fatalf("params %+v", p)
	}
}

func TestGet_ValidatesQuery(t *testing.T) {
	s := &fakeSvc{}
	req := httptest.NewRequest("GET", "/reports/crime-type?ageRange="+strings.Repeat("9", 40), nil)

	code, env := serve(t, s, req)
	if code != 400 || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	if s.report != "" {
		t.Fatal("service reached with invalid params")
	}
}

func TestPost_BindsBody(t *testing.T) {
	s := &fakeSvc{out: domain.Report{Report: "long-term", State: domain.StateEmpty, Result: domain.EmptyResult()}}
	req := httptest.NewRequest("POST", "/reports/long-term",
		strings.NewReader(`{"timeGranularity":"Month","descent":["Asian"]}`))

	code, env := serve(t, s, req)
	if code != 200 || env.Data == nil || env.Data.State != domain.StateEmpty {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	if s.report != "long-term" || s.params.TimeGranularity != "Month" || s.params.Descent[0] != "Asian" {
		t.Fatalf("report=%q params=%+v", s.report, s.params)
	}
}

func TestPost_RejectsUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/reports/long-term", strings.NewReader(`{"bogus":1}`))
	code, env := serve(t, &fakeSvc{}, req)
	if code != 400 || env.Code != perr.ErrorCodeJSON {
		t.Fatalf("code=%d env=%+v", code, env)
	}
}

func TestRun_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		out      domain.Report
		err      error
		wantCode int
		wantData bool
	}{
		{"unknown report", domain.Report{}, perr.NotFoundf("unknown report"), 404, false},
		{"validation", domain.Report{}, perr.Newf(perr.ErrorCodeValidation, "bad"), 400, false},
		{"executor failed", domain.Report{ReportID: "r1", State: domain.StateFailed, Result: domain.EmptyResult()},
			perr.Queryf("report query failed"), 502, true},
		{"breaker open", domain.Report{ReportID: "r2", State: domain.StateFailed, Result: domain.EmptyResult()},
			perr.Unavailablef("report executor unavailable"), 503, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &fakeSvc{out: tc.out, err: tc.err}
			code, env := serve(t, s, httptest.NewRequest("GET", "/reports/seasonal", nil))
			if code != tc.wantCode || env.Error == "" {
				t.Fatalf("code=%d env=%+v", code, env)
			}
			if (env.Data != nil) != tc.wantData {
				t.Fatalf("data present=%v want %v", env.Data != nil, tc.wantData)
			}
			if tc.wantData && env.Data.ReportID != tc.out.ReportID {
				t.Fatalf("report id %q", env.Data.ReportID)
			}
		})
	}
}
