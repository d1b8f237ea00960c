package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedStores inserts stores with the given ids. Existing ids are left as is.
func SeedStores(t *testing.T, pool *pgxpool.Pool, ids ...int64) {
	t.Helper()
	ctx := context.Background()

	for _, id := range ids {
		suffix := UniqueSuffix()
		_, err := pool.Exec(ctx,
			`INSERT INTO store (store_id, code, name) VALUES ($1, $2, $3)
			 ON CONFLICT (store_id) DO NOTHING`,
			id, "store_"+suffix, "Store "+suffix,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedStores insert %d: %v", id, err)
		}
	}
}

// SeedAttribute registers attributeCode for entityTypeID and returns its id.
func SeedAttribute(t *testing.T, pool *pgxpool.Pool, entityTypeID int, attributeCode string) int {
	t.Helper()

	var id int
	err := pool.QueryRow(context.Background(),
		`INSERT INTO eav_attribute (entity_type_id, attribute_code) VALUES ($1, $2)
		 ON CONFLICT (entity_type_id, attribute_code) DO UPDATE SET attribute_code = EXCLUDED.attribute_code
		 RETURNING attribute_id`,
		entityTypeID, attributeCode,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedAttribute: %v", err)
	}
	return id
}

// RewriteRow is a url_rewrite row as stored.
type RewriteRow struct {
	EntityType      string
	EntityID        int64
	TargetPath      string
	StoreID         int64
	RedirectType    int16
	IsAutogenerated int16
	Description     *string
	Metadata        *string
}

// FetchRewrites returns every url_rewrite row whose request path starts
// with prefix, keyed by request path, plus the raw row count.
func FetchRewrites(t *testing.T, pool *pgxpool.Pool, prefix string) (map[string]RewriteRow, int) {
	t.Helper()

	rows, err := pool.Query(context.Background(),
		`SELECT request_path, entity_type, entity_id, target_path, store_id,
		        redirect_type, is_autogenerated, description, metadata
		 FROM url_rewrite WHERE request_path LIKE $1 || '%'`,
		prefix,
	)
	if err != nil {
		t.Fatalf("testhelper: FetchRewrites query: %v", err)
	}
	defer rows.Close()

	out := make(map[string]RewriteRow)
	count := 0
	for rows.Next() {
		var path string
		var r RewriteRow
		if err := rows.Scan(&path, &r.EntityType, &r.EntityID, &r.TargetPath, &r.StoreID,
			&r.RedirectType, &r.IsAutogenerated, &r.Description, &r.Metadata); err != nil {
			t.Fatalf("testhelper: FetchRewrites scan: %v", err)
		}
		out[path] = r
		count++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("testhelper: FetchRewrites rows: %v", err)
	}
	return out, count
}
