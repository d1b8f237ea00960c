package sqldb

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

// Catalog provides catalog metadata lookups over database/sql. Queries use
// "?" placeholders, which SQLite and MySQL both accept.
type Catalog struct {
	q      Querier
	mapErr MapFunc
}

// NewCatalog creates a Catalog.
func NewCatalog(q Querier, mapErr MapFunc) *Catalog {
	return &Catalog{q: q, mapErr: mapErr}
}

// LookupAttributeID returns the id of attributeCode within entityTypeID.
// found is false when the attribute is not defined for that entity type.
func (c *Catalog) LookupAttributeID(ctx context.Context, entityTypeID int, attributeCode string) (int, bool, error) {
	query, args, err := sq.
		Select("attribute_id").
		From("eav_attribute").
		Where(sq.Eq{"entity_type_id": entityTypeID, "attribute_code": attributeCode}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, false, err
	}

	var id int
	err = QuerierFromCtx(ctx, c.q).QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, c.mapErr(err, "lookup attribute "+attributeCode)
	}
	return id, true, nil
}

// ListStoreIDs returns store ids greater than minID ordered by id.
func (c *Catalog) ListStoreIDs(ctx context.Context, minID int64) ([]int64, error) {
	query, args, err := sq.
		Select("store_id").
		From("store").
		Where(sq.Gt{"store_id": minID}).
		OrderBy("store_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := sqlscan.Select(ctx, QuerierFromCtx(ctx, c.q), &ids, query, args...); err != nil {
		return nil, c.mapErr(err, "list store ids")
	}
	return ids, nil
}
