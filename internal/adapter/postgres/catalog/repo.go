// Package catalog reads the catalog metadata the rewrite generator needs:
// attribute ids from eav_attribute and store ids from store.
package catalog

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/catalog-urlgen/internal/adapter/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides catalog metadata lookups on PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a catalog Repo.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// LookupAttributeID returns the id of attributeCode within entityTypeID.
// found is false when the attribute is not defined for that entity type.
func (r *Repo) LookupAttributeID(ctx context.Context, entityTypeID int, attributeCode string) (int, bool, error) {
	query, args, err := psql.
		Select("attribute_id").
		From("eav_attribute").
		Where(sq.Eq{"entity_type_id": entityTypeID}).
		Where(sq.Eq{"attribute_code": attributeCode}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, false, err
	}

	var id int
	err = postgres.QuerierFromCtx(ctx, r.q).QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, postgres.MapError(err, "lookup attribute "+attributeCode)
	}
	return id, true, nil
}

// ListStoreIDs returns store ids greater than minID ordered by id.
func (r *Repo) ListStoreIDs(ctx context.Context, minID int64) ([]int64, error) {
	query, args, err := psql.
		Select("store_id").
		From("store").
		Where(sq.Gt{"store_id": minID}).
		OrderBy("store_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.q), &ids, query, args...); err != nil {
		return nil, postgres.MapError(err, "list store ids")
	}
	return ids, nil
}
