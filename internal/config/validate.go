package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/catalog-urlgen/internal/service/urlrewrite"
)

var drivers = []string{"postgres", "sqlite", "mysql"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if !slices.Contains(drivers, c.Database.Driver) {
		return fmt.Errorf("database.driver must be one of %v (got %q)", drivers, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if err := c.Rewrite.validate(c.Database.Driver); err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}

	return nil
}

func (r *RewriteConfig) validate(driver string) error {
	if r.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0 (got %d)", r.ChunkSize)
	}

	dialect, err := urlrewrite.ParseDialect(r.EffectiveDialect(driver))
	if err != nil {
		return err
	}
	if r.Dialect != "" {
		r.Dialect = string(dialect)
	}
	if err := urlrewrite.ValidateTarget(r.Table, r.ChunkSize, dialect); err != nil {
		return err
	}

	if r.ProductEntityTypeID <= 0 {
		return fmt.Errorf("product_entity_type_id must be > 0 (got %d)", r.ProductEntityTypeID)
	}
	if r.CategoryEntityTypeID <= 0 {
		return fmt.Errorf("category_entity_type_id must be > 0 (got %d)", r.CategoryEntityTypeID)
	}

	return nil
}
