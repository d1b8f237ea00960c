package urlgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/catalog-urlgen/internal/adapter/mysql"
	"github.com/heartmarshall/catalog-urlgen/internal/adapter/postgres"
	"github.com/heartmarshall/catalog-urlgen/internal/adapter/postgres/catalog"
	"github.com/heartmarshall/catalog-urlgen/internal/adapter/sqlite"
	"github.com/heartmarshall/catalog-urlgen/internal/config"
)

// Catalog answers the metadata lookups a generation run needs.
type Catalog interface {
	LookupAttributeID(ctx context.Context, entityTypeID int, attributeCode string) (int, bool, error)
	ListStoreIDs(ctx context.Context, minID int64) ([]int64, error)
}

// Executor runs rendered upsert statements.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// TxRunner runs fn in one database transaction carried by its context.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Backend bundles the database collaborators of the configured driver.
type Backend struct {
	Driver  string
	Catalog Catalog
	Exec    Executor
	Tx      TxRunner
	Close   func()
}

// OpenBackend connects to the configured database. When migrate is set the
// embedded migrations are applied first.
func OpenBackend(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig, migrate bool) (*Backend, error) {
	switch cfg.Driver {
	case "postgres":
		if migrate {
			applied, err := postgres.Migrate(ctx, cfg.DSN)
			if err != nil {
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
			log.Info("migrations applied", slog.String("driver", cfg.Driver), slog.Int("applied", applied))
		}

		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return &Backend{
			Driver:  cfg.Driver,
			Catalog: catalog.New(pool),
			Exec:    postgres.NewExecutor(pool),
			Tx:      postgres.NewTxManager(pool),
			Close:   pool.Close,
		}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if migrate {
			applied, err := sqlite.Migrate(ctx, db)
			if err != nil {
				db.Close()
				return nil, fmt.Errorf("migrate sqlite: %w", err)
			}
			log.Info("migrations applied", slog.String("driver", cfg.Driver), slog.Int("applied", applied))
		}
		return &Backend{
			Driver:  cfg.Driver,
			Catalog: sqlite.NewCatalog(db),
			Exec:    sqlite.NewExecutor(db),
			Tx:      sqlite.NewTxManager(db),
			Close:   func() { db.Close() },
		}, nil

	case "mysql":
		db, err := mysql.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if migrate {
			applied, err := mysql.Migrate(ctx, db)
			if err != nil {
				db.Close()
				return nil, fmt.Errorf("migrate mysql: %w", err)
			}
			log.Info("migrations applied", slog.String("driver", cfg.Driver), slog.Int("applied", applied))
		}
		return &Backend{
			Driver:  cfg.Driver,
			Catalog: mysql.NewCatalog(db),
			Exec:    mysql.NewExecutor(db),
			Tx:      mysql.NewTxManager(db),
			Close:   func() { db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
