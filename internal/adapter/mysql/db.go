// Package mysql runs the rewrite generator against MySQL through
// go-sql-driver/mysql. Catalog lookups, the upsert Executor and the
// TxManager come from sqldb with MySQL error mapping.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/catalog-urlgen/internal/adapter/sqldb"
	"github.com/heartmarshall/catalog-urlgen/internal/config"
	"github.com/heartmarshall/catalog-urlgen/migrations"
)

// ParseDSN parses a go-sql-driver DSN ("user:pass@tcp(host:3306)/catalog").
// The DSN must name a database.
func ParseDSN(dsn string) (*mysql.Config, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("mysql: dsn must not be empty")
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dsn: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("mysql: dsn must name a database")
	}
	return cfg, nil
}

// Open connects to MySQL with the pool settings of cfg and pings it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	mcfg, err := ParseDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(mcfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(int(cfg.MaxConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded MySQL goose migrations and returns the
// number of migrations applied.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	fsys, err := fs.Sub(migrations.FS, "mysql")
	if err != nil {
		return 0, fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectMySQL, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}

// NewCatalog creates a catalog reader mapping MySQL errors.
func NewCatalog(q sqldb.Querier) *sqldb.Catalog {
	return sqldb.NewCatalog(q, MapError)
}

// NewExecutor creates an upsert executor mapping MySQL errors.
func NewExecutor(q sqldb.Querier) *sqldb.Executor {
	return sqldb.NewExecutor(q, MapError)
}

// NewTxManager creates a TxManager over db.
func NewTxManager(db *sql.DB) *sqldb.TxManager {
	return sqldb.NewTxManager(db)
}
