// Package pg opens the pgx pool that backs report queries
package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	// AppName is reported as application_name so report queries are visible in pg_stat_activity
	AppName string
	// Tracer sees every statement on every pooled connection
	Tracer pgx.QueryTracer
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg and creates a pool. No connection is made until first use.
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Tracer != nil {
		pcfg.ConnConfig.Tracer = cfg.Tracer
	}
	return newPool(ctx, pcfg)
}
