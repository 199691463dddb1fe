package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeQueryable struct{}

func (fakeQueryable) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (fakeQueryable) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (fakeQueryable) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func TestQueryableFromContext_Empty(t *testing.T) {
	_, ok := QueryableFromContext(context.Background())
	if ok {
		t.Error("expected no queryable in a fresh context")
	}
}

func TestQueryableFromContext_RoundTrip(t *testing.T) {
	q := fakeQueryable{}
	ctx := WithQueryable(context.Background(), q)

	got, ok := QueryableFromContext(ctx)
	if !ok {
		t.Fatal("expected queryable in context")
	}
	if got != Queryable(q) {
		t.Error("expected the same queryable back")
	}
}

func TestQueryableFromContext_ChildContext(t *testing.T) {
	q := fakeQueryable{}
	ctx := WithQueryable(context.Background(), q)
	child := context.WithValue(ctx, struct{ k string }{"other"}, "value")

	if _, ok := QueryableFromContext(child); !ok {
		t.Error("expected queryable to survive in child context")
	}
}
