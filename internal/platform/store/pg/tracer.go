package pg

import (
	"context"
	"strings"
	"time"

	"crimestats/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// pingSQL is what pgx sends for Conn.Ping
const pingSQL = "-- ping"

// Tracer logs statements through pgx's tracing hooks. Every statement goes
// out at debug with its args; slow ones at warn with only the arg count.
type Tracer struct {
	log  logger.Logger
	slow time.Duration
	now  func() time.Time
}

// NewTracer returns a tracer that logs below the process level; slow <= 0
// marks nothing as slow
func NewTracer(root logger.Logger, slow time.Duration) *Tracer {
	return &Tracer{
		log:  root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		slow: slow,
		now:  time.Now,
	}
}

var _ pgx.QueryTracer = (*Tracer)(nil)

type traceKey struct{}

type started struct {
	sql  string
	args []any
	at   time.Time
}

func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	if d.SQL == pingSQL {
		return ctx
	}
	return context.WithValue(ctx, traceKey{}, started{sql: d.SQL, args: d.Args, at: t.now()})
}

func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(traceKey{}).(started)
	if !ok {
		return
	}
	elapsed := t.now().Sub(s.at)
	slow := t.slow > 0 && elapsed >= t.slow

	evt := t.log.Debug().Interface("args", s.args)
	if slow {
		evt = t.log.Warn().Int("arg_count", len(s.args))
	}
	if rid := logger.RequestID(ctx); rid != "" {
		evt = evt.Str("request_id", rid)
	}
	evt.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
		Bool("slow", slow).
		Int64("rows", d.CommandTag.RowsAffected()).
		Str("sql", compact(s.sql)).
		Err(d.Err).
		Msg("pg query")
}

// compact folds whitespace runs to one space
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
