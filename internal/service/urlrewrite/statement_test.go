package urlrewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
)

const columnList = "(entity_type,entity_id,request_path,target_path,redirect_type,store_id,description,is_autogenerated,metadata)"

func TestBuildUpsert_Postgres(t *testing.T) {
	t.Parallel()

	query, args, err := buildUpsert(DialectPostgres, "url_rewrite", makeRows(2))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO url_rewrite "+columnList+" VALUES "), query)
	assert.Contains(t, query, "($1,$2,$3,$4,$5,$6,$7,$8,$9),($10,$11,$12,$13,$14,$15,$16,$17,$18)")
	assert.True(t, strings.HasSuffix(query,
		"ON CONFLICT (request_path) DO UPDATE SET entity_type = EXCLUDED.entity_type, entity_id = EXCLUDED.entity_id, "+
			"target_path = EXCLUDED.target_path, redirect_type = EXCLUDED.redirect_type, store_id = EXCLUDED.store_id, "+
			"description = EXCLUDED.description, is_autogenerated = EXCLUDED.is_autogenerated, metadata = EXCLUDED.metadata"), query)
	assert.NotContains(t, query, "request_path = EXCLUDED.request_path")

	require.Len(t, args, 18)
	assert.Equal(t, []any{"product", int64(1), "item-1.html", "catalog/product/view/id/1", 0, int64(1), nil, 1, nil}, args[:9])
}

func TestBuildUpsert_MySQL(t *testing.T) {
	t.Parallel()

	query, args, err := buildUpsert(DialectMySQL, "url_rewrite", makeRows(1))
	require.NoError(t, err)

	assert.Contains(t, query, "VALUES (?,?,?,?,?,?,?,?,?) ON DUPLICATE KEY UPDATE entity_type = VALUES(entity_type)")
	assert.Contains(t, query, "metadata = VALUES(metadata)")
	assert.Len(t, args, 9)
}

func TestBuildUpsert_SQLite(t *testing.T) {
	t.Parallel()

	query, _, err := buildUpsert(DialectSQLite, "url_rewrite", makeRows(1))
	require.NoError(t, err)

	assert.Contains(t, query, "VALUES (?,?,?,?,?,?,?,?,?) ON CONFLICT (request_path) DO UPDATE SET")
	assert.NotContains(t, query, "$1")
}

func TestBuildUpsert_NoRows(t *testing.T) {
	t.Parallel()

	_, _, err := buildUpsert(DialectPostgres, "url_rewrite", nil)
	assert.Error(t, err)
}

func TestValidateTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		table     string
		chunkSize int
		dialect   Dialect
		wantField string
	}{
		{name: "ok", table: "url_rewrite", chunkSize: ChunkSize, dialect: DialectPostgres},
		{name: "postgres at limit", table: "t", chunkSize: 7281, dialect: DialectPostgres},
		{name: "postgres over limit", table: "t", chunkSize: 7282, dialect: DialectPostgres, wantField: "chunk_size"},
		{name: "mysql over limit", table: "t", chunkSize: 7282, dialect: DialectMySQL, wantField: "chunk_size"},
		{name: "sqlite at limit", table: "t", chunkSize: 3640, dialect: DialectSQLite},
		{name: "sqlite over limit", table: "t", chunkSize: 3641, dialect: DialectSQLite, wantField: "chunk_size"},
		{name: "quoted table", table: `"url_rewrite"`, chunkSize: 1, dialect: DialectPostgres, wantField: "table"},
		{name: "schema qualified", table: "public.url_rewrite", chunkSize: 1, dialect: DialectPostgres, wantField: "table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateTarget(tt.table, tt.chunkSize, tt.dialect)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Errors[0].Field)
		})
	}
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Dialect{"postgres": DialectPostgres, " SQLite ": DialectSQLite, "MYSQL": DialectMySQL} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDialect("mssql")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
