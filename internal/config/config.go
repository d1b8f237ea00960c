package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Rewrite  RewriteConfig  `yaml:"rewrite"`
}

// DatabaseConfig holds connection settings. Driver selects the backend:
// "postgres" uses a pgx pool, "sqlite" opens DSN as a database file.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"postgres"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RewriteConfig holds url rewrite generation settings.
type RewriteConfig struct {
	Table     string `yaml:"table"      env:"REWRITE_TABLE"      env-default:"url_rewrite"`
	ChunkSize int    `yaml:"chunk_size" env:"REWRITE_CHUNK_SIZE" env-default:"2500"`
	// Dialect overrides the statement dialect. Empty means the database driver.
	Dialect string `yaml:"dialect" env:"REWRITE_DIALECT"`

	ProductEntityTypeID  int    `yaml:"product_entity_type_id"  env:"REWRITE_PRODUCT_ENTITY_TYPE_ID"  env-default:"4"`
	CategoryEntityTypeID int    `yaml:"category_entity_type_id" env:"REWRITE_CATEGORY_ENTITY_TYPE_ID" env-default:"3"`
	ProductURLSuffix     string `yaml:"product_url_suffix"      env:"REWRITE_PRODUCT_URL_SUFFIX"      env-default:".html"`
	CategoryURLSuffix    string `yaml:"category_url_suffix"     env:"REWRITE_CATEGORY_URL_SUFFIX"     env-default:".html"`

	AutoMigrate bool `yaml:"auto_migrate" env:"REWRITE_AUTO_MIGRATE" env-default:"false"`
}

// EffectiveDialect returns the configured dialect, or driver when unset.
func (c RewriteConfig) EffectiveDialect(driver string) string {
	if c.Dialect != "" {
		return c.Dialect
	}
	return driver
}

// URLSuffixes maps entity type codes to their request path suffix.
func (c RewriteConfig) URLSuffixes() map[string]string {
	return map[string]string{
		"product":  c.ProductURLSuffix,
		"category": c.CategoryURLSuffix,
	}
}

// EntityTypeID returns the numeric entity type id for an entity type code.
func (c RewriteConfig) EntityTypeID(entityType string) (int, bool) {
	switch entityType {
	case "product":
		return c.ProductEntityTypeID, true
	case "category":
		return c.CategoryEntityTypeID, true
	}
	return 0, false
}
