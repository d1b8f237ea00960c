package sqldb

import "context"

// Executor runs rendered upsert statements, joining the transaction in ctx
// when there is one.
type Executor struct {
	q      Querier
	mapErr MapFunc
}

// NewExecutor creates an Executor.
func NewExecutor(q Querier, mapErr MapFunc) *Executor {
	return &Executor{q: q, mapErr: mapErr}
}

// Exec runs query and returns the number of rows affected.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := QuerierFromCtx(ctx, e.q).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, e.mapErr(err, "exec")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, e.mapErr(err, "rows affected")
	}
	return n, nil
}
