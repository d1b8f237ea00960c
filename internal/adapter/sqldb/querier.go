// Package sqldb holds the database/sql plumbing shared by the SQLite and
// MySQL adapters: a context-scoped transaction, the catalog lookups and the
// upsert executor. Driver-specific error mapping is injected as a MapFunc.
package sqldb

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB and *sql.Tx the adapters run statements on.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// MapFunc converts a driver error into a domain error prefixed with op.
type MapFunc func(err error, op string) error

type txKey struct{}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// QuerierFromCtx returns the transaction stored in ctx, or fallback.
func QuerierFromCtx(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}
