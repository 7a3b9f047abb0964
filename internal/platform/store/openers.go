package store

import (
	"context"
	"fmt"
	"time"

	chx "crimestats/internal/platform/store/ch"
	"crimestats/internal/platform/store/pg"
)

// openPG opens the pool and waits for postgres to answer, backing off
// between attempts
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pc := pg.Config{URL: cfg.PG.URL, MaxConns: cfg.PG.MaxConns, AppName: cfg.AppName}
	if cfg.PG.LogSQL {
		pc.Tracer = pg.NewTracer(s.Log, time.Duration(cfg.PG.SlowQueryMs)*time.Millisecond)
	}
	pool, err := pg.Open(ctx, pc)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	backoff := 150 * time.Millisecond
	var last error
	for i := 1; i <= attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = pool.Ping(pctx)
		cancel()
		if last == nil {
			return newPGAdapter(pool), nil
		}
		s.Log.Warn().Err(last).Int("attempt", i).Int("of", attempts).Msg("postgres not ready")
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 2*time.Second)
	}
	pool.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, last)
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.AppName, Tag: cfg.CH.Tag})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
