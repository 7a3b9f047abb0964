// Package logger owns the root zerolog logger and derives request scoped
// children from a context
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"crimestats/internal/platform/config/raw"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the root logger
type Options struct {
	Level      string
	Format     string // "console" or "json"
	Service    string
	Component  string
	Writer     io.Writer
	WithCaller bool
	// SampleEvery keeps one in N events when above 1
	SampleEvery int
}

// FromEnv reads LOG_* through the raw reader; config imports this package
func FromEnv() Options {
	rc := raw.Env("LOG_")
	return Options{
		Level:       strings.ToLower(rc.String("LEVEL", "debug")),
		Format:      strings.ToLower(rc.String("FORMAT", "console")),
		Service:     rc.String("SERVICE", ""),
		Component:   rc.String("COMPONENT", ""),
		WithCaller:  rc.Bool("CALLER", false),
		SampleEvery: rc.Int("SAMPLE_EVERY", 0),
	}
}

// Logger is the project logging type
type Logger = zerolog.Logger

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger. Only the first call has any effect.
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

func build(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Component != "" {
		c = c.Str("component", opt.Component)
	}
	if opt.WithCaller {
		c = c.Caller()
	}
	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel falls back to debug for blank or unknown names
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"req_id"}
	keyFields    = ctxKey{"fields"}
)

// WithRequest annotates ctx with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRequestID, reqID)
}

// WithField adds a string field that every C(ctx) logger carries
func WithField(ctx context.Context, key, value string) context.Context {
	prev, _ := ctx.Value(keyFields).([][2]string)
	fields := make([][2]string, len(prev), len(prev)+1)
	copy(fields, prev)
	return context.WithValue(ctx, keyFields, append(fields, [2]string{key, value}))
}

// RequestID returns the id set by WithRequest, else the one chi's RequestID middleware stored
func RequestID(ctx context.Context) string {
	if s, ok := ctx.Value(keyRequestID).(string); ok && s != "" {
		return s
	}
	return chimw.GetReqID(ctx)
}

// C returns a child logger enriched from ctx (request_id and WithField fields)
func C(ctx context.Context) *Logger {
	builder := Get().With()
	if id := RequestID(ctx); id != "" {
		builder = builder.Str("request_id", id)
	}
	if fields, ok := ctx.Value(keyFields).([][2]string); ok {
		for _, f := range fields {
			builder = builder.Str(f[0], f[1])
		}
	}
	ll := builder.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
