// Package repo runs rendered report queries against postgres or clickhouse
package repo

import (
	"context"
	"fmt"
	"time"

	"crimestats/internal/core/queryplan"
	"crimestats/internal/modkit/repokit"
	"crimestats/internal/platform/store"
)

// Repo executes one rendered report statement
type Repo interface {
	Dialect() queryplan.Dialect
	Fetch(ctx context.Context, sql string, args []any) (store.Result, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements Repo over any read seam
	queries struct {
		q       store.Querier
		dialect queryplan.Dialect
	}
)

// NewPG returns a binder for the postgres dialect
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q, dialect: queryplan.Postgres} }

// NewCH returns a repo over the clickhouse seam
func NewCH(c store.Clickhouse) Repo { return &queries{q: c, dialect: queryplan.ClickHouse} }

func (r *queries) Dialect() queryplan.Dialect { return r.dialect }

func (r *queries) Fetch(ctx context.Context, sql string, args []any) (store.Result, error) {
	return store.Table(ctx, r.q, sql, args...)
}

// txRepo runs every Fetch inside its own transaction so begin hooks apply
type txRepo struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
}

// InTx returns a postgres repo whose statements run in a transaction
// prepared by hooks, typically ReadOnly and StatementTimeout
func InTx(db repokit.TxRunner, binder repokit.Binder[Repo], hooks ...repokit.BeginHook) Repo {
	if db == nil {
		panic("reports.repo requires a non nil TxRunner")
	}
	if len(hooks) > 0 {
		db = repokit.WithBeginHooks(db, hooks...)
	}
	return &txRepo{db: db, binder: binder}
}

func (r *txRepo) Dialect() queryplan.Dialect { return queryplan.Postgres }

func (r *txRepo) Fetch(ctx context.Context, sql string, args []any) (store.Result, error) {
	var res store.Result
	err := repokit.WithTx(ctx, r.db, func(q repokit.Queryer) error {
		var err error
		res, err = repokit.MustBind(r.binder, q).Fetch(ctx, sql, args)
		return err
	})
	return res, err
}

// ReadOnly marks the report transaction read only
func ReadOnly(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, "SET TRANSACTION READ ONLY")
	return err
}

// StatementTimeout bounds every statement in the transaction server side
// SET does not take bind parameters so the value is formatted as whole milliseconds
func StatementTimeout(d time.Duration) repokit.BeginHook {
	ms := d.Milliseconds()
	return func(ctx context.Context, q repokit.Queryer) error {
		if ms <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms))
		return err
	}
}
