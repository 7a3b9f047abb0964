package store

import (
	"context"
	"errors"

	"crimestats/internal/platform/store/ch"
)

// newCHAdapter wraps an open *ch.CH as the store.Clickhouse seam
func newCHAdapter(c *ch.CH) Clickhouse {
	return &clickhouseAdapter{inner: c}
}

type clickhouseAdapter struct {
	inner *ch.CH
}

var _ Clickhouse = (*clickhouseAdapter)(nil)

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{r: r}, nil
}

func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil clickhouse adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

// chRows drops the close error to satisfy store.Rows
type chRows struct{ r *ch.Rows }

func (r *chRows) Next() bool             { return r.r.Next() }
func (r *chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r *chRows) Err() error             { return r.r.Err() }
func (r *chRows) Close()                 { _ = r.r.Close() }
func (r *chRows) Columns() []string      { return r.r.Columns() }
