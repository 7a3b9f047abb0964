package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "crimestats/internal/platform/testkit"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"INFO":      zerolog.InfoLevel,
		" warning ": zerolog.WarnLevel,
		"warn":      zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"":          zerolog.DebugLevel,
		"loud":      zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuild(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "json", Service: "crimestats-api", Component: "reports", Writer: &buf})
	l.Debug().Msg("dropped")
	l.Info().Str("report", "seasonal").Msg("report executed")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("debug line below info level: %s", out)
	}
	kit.MustContain(t, out, `"service":"crimestats-api"`)
	kit.MustContain(t, out, `"component":"reports"`)
	kit.MustContain(t, out, `"report":"seasonal"`)
	kit.MustContain(t, out, `"go_version"`)
}

func TestBuild_ConsoleCallerSampling(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "debug", Format: "console", Writer: &buf, WithCaller: true, SampleEvery: 2})
	for i := 0; i < 4; i++ {
		l.Info().Int("i", i).Msg("tick")
	}
	out := buf.String()
	if n := strings.Count(out, "tick"); n != 2 {
		t.Fatalf("sampled lines = %d, want 2\n%s", n, out)
	}
	kit.MustContain(t, out, "logger_test.go")
}

func TestInitGetNamedC(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Service: "svc-a", Writer: &buf})
	Init(Options{Level: "error", Writer: &bytes.Buffer{}})

	Get().Info().Msg("root-msg")
	Named("api").Info().Msg("named-msg")
	if Named("") != Get() {
		t.Fatal("Named(\"\") should return the root")
	}
	ctx := WithField(WithRequest(context.Background(), "req-123"), "report", "long-term")
	C(ctx).Info().Msg("ctx-msg")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, `"component":"api"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"report":"long-term"`)
	kit.MustContain(t, out, `"service":"svc-a"`)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "crimestats-explain")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	got := FromEnv()
	want := Options{Level: "warn", Format: "json", Service: "crimestats-explain", WithCaller: true, SampleEvery: 5}
	if got != want {
		t.Fatalf("FromEnv = %+v", got)
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "chi-7")
	cases := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"chi fallback", ctx, "chi-7"},
		{"own wins", WithRequest(ctx, "own-1"), "own-1"},
		{"empty ignored", WithRequest(context.Background(), ""), ""},
	}
	for _, tc := range cases {
		if got := RequestID(tc.ctx); got != tc.want {
			t.Errorf("%s: RequestID = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestWithField_DoesNotAlias(t *testing.T) {
	base := WithField(context.Background(), "a", "1")
	left := WithField(base, "b", "2")
	right := WithField(base, "c", "3")
	l, _ := left.Value(keyFields).([][2]string)
	r, _ := right.Value(keyFields).([][2]string)
	if len(l) != 2 || len(r) != 2 || l[1][0] != "b" || r[1][0] != "c" {
		t.Fatalf("fields aliased: %v %v", l, r)
	}
}
