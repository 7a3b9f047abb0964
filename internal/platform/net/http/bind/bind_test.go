package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "crimestats/internal/platform/errors"
)

type filters struct {
	Report  string   `json:"report" validate:"required,min=3"`
	Regions []string `json:"laRegions,omitempty" validate:"max=2,dive,max=8"`
	Secret  string   `json:"-"`
	Plain   int      `validate:"max=5"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/reports/x", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		opts  []Options
		code  perr.ErrorCode
		field string
	}{
		{name: "ok", body: `{"report":"seasonal","laRegions":["North"]}`},
		{name: "empty", body: "", code: perr.ErrorCodeJSON},
		{name: "whitespace", body: "  \n", code: perr.ErrorCodeJSON},
		{name: "broken", body: `{"report":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"report":"seasonal","x":1}`, code: perr.ErrorCodeJSON},
		{name: "unknown allowed", body: `{"report":"seasonal","x":1}`, opts: []Options{{AllowExtra: true}}},
		{name: "trailing", body: `{"report":"seasonal"} {"report":"demographic"}`, code: perr.ErrorCodeJSON},
		{name: "too large", body: `{"report":"seasonal"}`, opts: []Options{{MaxBytes: 8}}, code: perr.ErrorCodeJSON},
		{name: "required", body: `{"laRegions":["North"]}`, code: perr.ErrorCodeValidation, field: "report"},
		{name: "list cap", body: `{"report":"seasonal","laRegions":["a","b","c"]}`, code: perr.ErrorCodeValidation, field: "laRegions"},
		{name: "element cap", body: `{"report":"seasonal","laRegions":["Harbor-West"]}`, code: perr.ErrorCodeValidation, field: "laRegions[0]"},
		{name: "untagged field name", body: `{"report":"seasonal","Plain":9}`, code: perr.ErrorCodeValidation, field: "Plain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseJSON[filters](post(tc.body), tc.opts...)
			if tc.code == perr.ErrorCodeUnknown {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Report != "seasonal" {
					t.Fatalf("got %+v", got)
				}
				return
			}
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("code = %v (%v), want %v", perr.CodeOf(err), err, tc.code)
			}
			if tc.field != "" {
				e, ok := perr.As(err)
				if !ok || e.Field() != tc.field {
					t.Fatalf("field = %v, want %q", err, tc.field)
				}
			}
		})
	}
}

func TestParseJSON_AllowEmpty(t *testing.T) {
	type optional struct {
		Gender string `json:"gender" validate:"max=8"`
	}
	got, err := ParseJSON[optional](post(""), Options{AllowEmpty: true})
	if err != nil || got.Gender != "" {
		t.Fatalf("got %+v, %v", got, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Body = nil
	if _, err := ParseJSON[optional](req, Options{AllowEmpty: true}); err != nil {
		t.Fatalf("nil body: %v", err)
	}
}

func TestValidate_Messages(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"min", filters{Report: "ab"}, "report must be at least 3"},
		{"max", filters{Report: "seasonal", Plain: 6}, "Plain must be at most 5"},
		{"required", filters{}, "report is a required field"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	err := Validate(42)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestDescribe_PlainError(t *testing.T) {
	f, m := describe(errors.New("boom"))
	if f != "" || m != "boom" {
		t.Fatalf("describe = %q %q", f, m)
	}
}
