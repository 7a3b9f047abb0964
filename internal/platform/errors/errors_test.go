package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeUnknown:         http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeQuery:           http.StatusBadGateway,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Errorf("HTTPStatusCode(%d) = %d, want %d", code, got, want)
		}
	}
}

func TestError_WrapAndField(t *testing.T) {
	cause := stderrs.New("dial tcp: refused")
	err := Wrap(cause, ErrorCodeQuery, "report query failed")
	if err.Error() != "report query failed: dial tcp: refused" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("cause lost")
	}

	outer := fmt.Errorf("run: %w", WithField(err, "report"))
	if !IsCode(outer, ErrorCodeQuery) || HTTPStatus(outer) != http.StatusBadGateway {
		t.Fatalf("code through fmt wrap = %v", CodeOf(outer))
	}
	w := WireFrom(outer)
	if w.Message != "report query failed" || w.Field != "report" {
		t.Fatalf("wire = %+v", w)
	}

	if e, _ := As(err); e.Field() != "" {
		t.Fatal("WithField mutated the original")
	}
	plain := stderrs.New("x")
	if WithField(plain, "f") != plain {
		t.Fatal("foreign error should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
	if w := WireFrom(NotFoundf("unknown report %q", "weekly")); w.Code != ErrorCodeNotFound || w.Message != `unknown report "weekly"` {
		t.Fatalf("wire = %+v", w)
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatal("nil receiver")
	}
}

func TestSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Queryf("x"), ErrorCodeQuery},
		{Internalf("x"), ErrorCodeUnknown},
		{New(ErrorCodeTooManyRequests, "x"), ErrorCodeTooManyRequests},
	}
	for _, tc := range cases {
		if CodeOf(tc.err) != tc.code {
			t.Errorf("%v: code %d, want %d", tc.err, CodeOf(tc.err), tc.code)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Verdict
	}{
		{"deadline", context.DeadlineExceeded, VerdictTimeout},
		{"wrapped deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), VerdictTimeout},
		{"pg statement timeout", &pgconn.PgError{Code: "57014"}, VerdictTimeout},
		{"pg shutdown", &pgconn.PgError{Code: "57P01"}, VerdictUnavailable},
		{"pg too many conns", &pgconn.PgError{Code: "53300"}, VerdictUnavailable},
		{"pg connection class", &pgconn.PgError{Code: "08006"}, VerdictUnavailable},
		{"pg undefined table", &pgconn.PgError{Code: "42P01"}, VerdictFailed},
		{"ch timeout", &clickhouse.Exception{Code: 159}, VerdictTimeout},
		{"ch overloaded", &clickhouse.Exception{Code: 202}, VerdictUnavailable},
		{"ch syntax", &clickhouse.Exception{Code: 62}, VerdictFailed},
		{"canceled", context.Canceled, VerdictFailed},
		{"plain", stderrs.New("boom"), VerdictFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFromExecutor(t *testing.T) {
	if FromExecutor(nil, "q") != nil {
		t.Fatal("nil in, nil out")
	}
	cases := []struct {
		err  error
		code ErrorCode
		msg  string
	}{
		{&pgconn.PgError{Code: "57014"}, ErrorCodeQuery, "report query timed out"},
		{&pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable, "report query unavailable"},
		{stderrs.New("bad column"), ErrorCodeQuery, "report query failed"},
	}
	for _, tc := range cases {
		err := FromExecutor(tc.err, "report query")
		if w := WireFrom(err); w.Code != tc.code || w.Message != tc.msg {
			t.Errorf("%v: wire %+v", tc.err, w)
		}
		if !stderrs.Is(err, tc.err) {
			t.Errorf("%v: cause lost", tc.err)
		}
	}
}
