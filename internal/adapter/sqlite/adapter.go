package sqlite

import (
	"database/sql"

	"github.com/heartmarshall/catalog-urlgen/internal/adapter/sqldb"
)

// Querier is the statement surface shared by *sql.DB and *sql.Tx.
type Querier = sqldb.Querier

// NewCatalog creates a catalog reader mapping SQLite errors.
func NewCatalog(q Querier) *sqldb.Catalog {
	return sqldb.NewCatalog(q, MapError)
}

// NewExecutor creates an upsert executor mapping SQLite errors.
func NewExecutor(q Querier) *sqldb.Executor {
	return sqldb.NewExecutor(q, MapError)
}

// NewTxManager creates a TxManager over db.
func NewTxManager(db *sql.DB) *sqldb.TxManager {
	return sqldb.NewTxManager(db)
}
