// Package repokit binds repositories to the sql seam and runs them inside
// prepared transactions
package repokit

import (
	"context"
	"fmt"

	"crimestats/internal/platform/store"
)

type (
	// Queryer is the sql surface a bound repo sees
	Queryer = store.RowQuerier
	// TxRunner opens transactions over a Queryer
	TxRunner = store.TxRunner
)

// Binder builds a repo over a Queryer, usually one bound to a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q, panicking on a nil Queryer
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in a transaction on db
func WithTx(ctx context.Context, db TxRunner, fn func(Queryer) error) error {
	return db.Tx(ctx, fn)
}

// BeginHook prepares a transaction before the repo sees it, e.g. SET LOCAL
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns db with hooks run, in order, at the start of every
// transaction. A failing hook aborts the transaction.
func WithBeginHooks(db TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return db
	}
	return hooked{TxRunner: db, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for i, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return fmt.Errorf("begin hook %d: %w", i, err)
			}
		}
		return fn(q)
	})
}

// Guarder is a dependency set that can check itself, such as *store.Store
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard panics when g reports an unhealthy dependency
func MustGuard(ctx context.Context, g Guarder) {
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
