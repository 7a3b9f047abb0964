package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is the surface pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// sqlQuerier narrows a pgxQuerier to RowQuerier
type sqlQuerier struct{ q pgxQuerier }

func (s sqlQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

func (s sqlQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows{rs}, nil
}

func (s sqlQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return s.q.QueryRow(ctx, sql, args...)
}

// pgAdapter is the TxRunner over a pool
type pgAdapter struct {
	sqlQuerier
	pool *pgxpool.Pool
}

func newPGAdapter(p *pgxpool.Pool) *pgAdapter {
	return &pgAdapter{sqlQuerier: sqlQuerier{p}, pool: p}
}

var (
	_ TxRunner = (*pgAdapter)(nil)
	_ Pinger   = (*pgAdapter)(nil)
)

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.pool == nil {
		return errors.New("pg: not open")
	}
	return a.pool.Ping(ctx)
}

func (a *pgAdapter) Close() error {
	a.pool.Close()
	return nil
}

// Tx commits when fn returns nil and rolls back otherwise
func (a *pgAdapter) Tx(ctx context.Context, fn func(RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		return fn(sqlQuerier{tx})
	})
}

type rows struct{ pgx.Rows }

func (r rows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}
