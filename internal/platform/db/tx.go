package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queryable is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so a repository picks up an in-flight
// transaction from context transparently.
type Queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type txKey struct{}

// WithQueryable returns a context carrying q, usually a transaction opened by
// WithTx.
func WithQueryable(ctx context.Context, q Queryable) context.Context {
	return context.WithValue(ctx, txKey{}, q)
}

// QueryableFromContext returns the Queryable previously placed in the context,
// if any.
func QueryableFromContext(ctx context.Context) (Queryable, bool) {
	q, ok := ctx.Value(txKey{}).(Queryable)
	return q, ok
}

// TxRunner runs functions inside a pool transaction. Services depend on the
// one-method interface this satisfies rather than on the pool itself.
type TxRunner struct{ pool *pgxpool.Pool }

func NewTxRunner(pool *pgxpool.Pool) *TxRunner { return &TxRunner{pool: pool} }

func (t *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTx(ctx, t.pool, fn)
}

// WithTx begins a transaction on pool, places it in the context and runs fn.
// The transaction commits when fn returns nil and rolls back otherwise.
// Repositories that resolve their connection through QueryableFromContext
// participate in the transaction without knowing about it.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(WithQueryable(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
