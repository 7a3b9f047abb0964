package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"crimestats/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	cases := []struct{ in, want string }{
		{"select 1", "select 1"},
		{"  SELECT\n\tyear,\r\n  count(*)  FROM x ", "SELECT year, count(*) FROM x"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := compact(tc.in); got != tc.want {
			t.Errorf("compact(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// stepClock advances by step on every call
func stepClock(step time.Duration) func() time.Time {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(step)
		return at
	}
}

func trace(ctx context.Context, tr *Tracer, sql string, args []any, err error) {
	ctx = tr.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: sql, Args: args})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 2"), Err: err})
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(l), &m); err != nil {
			t.Fatalf("bad json %q: %v", l, err)
		}
		out = append(out, m)
	}
	return out
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf).Level(zerolog.ErrorLevel), 50*time.Millisecond)

	tr.now = stepClock(10 * time.Millisecond)
	ctx := logger.WithRequest(context.Background(), "req-9")
	trace(ctx, tr, "SELECT year,\n  count(*) FROM crime_incident WHERE area = ANY($1)", []any{[]string{"Central"}}, nil)

	tr.now = stepClock(80 * time.Millisecond)
	trace(context.Background(), tr, "SELECT 1", []any{1, 2}, errors.New("canceling statement due to statement timeout"))

	trace(context.Background(), tr, pingSQL, nil, nil)
	tr.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

	got := lines(t, &buf)
	if len(got) != 2 {
		t.Fatalf("lines = %d: %s", len(got), buf.String())
	}

	fast, slow := got[0], got[1]
	if fast["level"] != "debug" || fast["slow"] != false || fast["request_id"] != "req-9" || fast["component"] != "pg" {
		t.Fatalf("fast line = %v", fast)
	}
	if fast["sql"] != "SELECT year, count(*) FROM crime_incident WHERE area = ANY($1)" || fast["args"] == nil {
		t.Fatalf("fast line = %v", fast)
	}
	if fast["elapsed_ms"] != float64(10) || fast["rows"] != float64(2) {
		t.Fatalf("fast timing = %v", fast)
	}

	if slow["level"] != "warn" || slow["slow"] != true || slow["arg_count"] != float64(2) {
		t.Fatalf("slow line = %v", slow)
	}
	if _, ok := slow["args"]; ok {
		t.Fatalf("slow line leaks args: %v", slow)
	}
	if !strings.Contains(slow["error"].(string), "statement timeout") {
		t.Fatalf("slow error = %v", slow["error"])
	}
}

func TestTracer_NoSlowThreshold(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf), 0)
	tr.now = stepClock(time.Hour)
	trace(context.Background(), tr, "SELECT 1", nil, nil)
	if got := lines(t, &buf); len(got) != 1 || got[0]["slow"] != false {
		t.Fatalf("lines = %v", got)
	}
}
