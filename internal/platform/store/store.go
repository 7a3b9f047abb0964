// Package store opens the report executors. Either backend may be absent.
package store

import (
	"context"
	"errors"
	"fmt"

	"crimestats/internal/platform/logger"
)

// Store holds the configured executors. A zero Store has none.
type Store struct {
	Log logger.Logger

	// PG is nil unless postgres is enabled
	PG TxRunner
	// CH is nil unless clickhouse is enabled
	CH Clickhouse
}

type (
	// Row is one scanned row
	Row interface {
		Scan(dest ...any) error
	}

	// Rows iterates a result set; Columns keeps select order
	Rows interface {
		Row
		Next() bool
		Err() error
		Close()
		Columns() []string
	}

	// CommandTag reports what a statement touched
	CommandTag interface {
		String() string
		RowsAffected() int64
	}
)

// RowQuerier is what report repos run sql through
type RowQuerier interface {
	Querier
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside one transaction, rolled back when fn fails
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar executor
type Clickhouse interface {
	Querier
	Ping(ctx context.Context) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open dials every enabled backend. The first failure closes what was already
// opened and aborts.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := new(Store)
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			s.CH = nil
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

type backend struct {
	name string
	v    any
}

// backends lists the configured executors, clickhouse first
func (s *Store) backends() []backend {
	var out []backend
	if s.CH != nil {
		out = append(out, backend{"ch", s.CH})
	}
	if s.PG != nil {
		out = append(out, backend{"pg", s.PG})
	}
	return out
}

// Guard pings every backend that can be pinged; failures are joined and
// prefixed with the backend name
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, b := range s.backends() {
		p, ok := b.v.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every backend and joins the errors
func (s *Store) Close(context.Context) error {
	var errs []error
	for _, b := range s.backends() {
		if c, ok := b.v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
