package postgres

import "context"

// Executor runs rewrite upsert statements. Inside TxManager.RunInTx it uses
// the context transaction, otherwise the fallback querier.
type Executor struct {
	q Querier
}

// NewExecutor creates an Executor over q (usually *pgxpool.Pool).
func NewExecutor(q Querier) *Executor {
	return &Executor{q: q}
}

// Exec executes query and returns the number of affected rows.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := QuerierFromCtx(ctx, e.q).Exec(ctx, query, args...)
	if err != nil {
		return 0, MapError(err, "exec")
	}
	return tag.RowsAffected(), nil
}
