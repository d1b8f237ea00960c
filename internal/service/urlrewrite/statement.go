package urlrewrite

import (
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
)

// Dialect selects placeholder style and conflict clause of the upsert.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
)

// MaxPlaceholders is the largest bind parameter count a single statement
// may carry (PostgreSQL wire protocol limit). SQLite caps lower.
const (
	MaxPlaceholders       = 65535
	maxSQLitePlaceholders = 32766
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectPostgres, DialectSQLite, DialectMySQL:
		return d, nil
	default:
		return "", domain.NewValidationError("dialect", fmt.Sprintf("unsupported dialect %q", s))
	}
}

// ValidateTarget checks that table is a plain SQL identifier and that
// chunkSize rows fit into the bind parameter limit of one d statement.
func ValidateTarget(table string, chunkSize int, d Dialect) error {
	if !identifierRe.MatchString(table) {
		return domain.NewValidationError("table", fmt.Sprintf("invalid identifier %q", table))
	}
	if limit := d.maxPlaceholders(); chunkSize*len(domain.RewriteColumns) > limit {
		return domain.NewValidationError("chunk_size",
			fmt.Sprintf("%d rows exceed %d placeholders per statement", chunkSize, limit))
	}
	return nil
}

func (d Dialect) placeholders() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

func (d Dialect) maxPlaceholders() int {
	if d == DialectSQLite {
		return maxSQLitePlaceholders
	}
	return MaxPlaceholders
}

// conflictClause updates every non-key column from the proposed row.
func (d Dialect) conflictClause() string {
	sets := make([]string, 0, len(domain.RewriteColumns)-1)
	for _, col := range domain.RewriteColumns {
		if col == domain.RewriteConflictColumn {
			continue
		}
		switch d {
		case DialectMySQL:
			sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", col, col))
		default:
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}

	if d == DialectMySQL {
		return "ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", domain.RewriteConflictColumn, strings.Join(sets, ", "))
}

// buildUpsert renders one multi-row upsert covering rows. Args are
// flattened row-major in domain.RewriteColumns order.
func buildUpsert(d Dialect, table string, rows []domain.URLRewrite) (string, []any, error) {
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("build upsert: no rows")
	}

	insert := sq.StatementBuilder.
		PlaceholderFormat(d.placeholders()).
		Insert(table).
		Columns(domain.RewriteColumns...)
	for _, r := range rows {
		insert = insert.Values(r.Values()...)
	}

	query, args, err := insert.Suffix(d.conflictClause()).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert: %w", err)
	}
	return query, args, nil
}
