// Package urlrewrite builds search-engine-friendly url_rewrite rows for
// catalog entities and persists them with chunked, idempotent upserts.
package urlrewrite

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
)

const (
	// ChunkSize is the default maximum number of rows per upsert statement.
	ChunkSize = 2500

	// DefaultTable is the default rewrite table name.
	DefaultTable = "url_rewrite"

	urlKeyAttributeCode = "url_key"
)

type attributeLookup interface {
	// LookupAttributeID returns the attribute id for code within an entity
	// type. found is false when no such attribute exists.
	LookupAttributeID(ctx context.Context, entityTypeID int, attributeCode string) (id int, found bool, err error)
}

type storeLister interface {
	// ListStoreIDs returns store ids strictly greater than minID.
	ListStoreIDs(ctx context.Context, minID int64) ([]int64, error)
}

type executor interface {
	// Exec runs a statement with positional args and returns affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// Options configures the rewrite service.
type Options struct {
	Table     string
	ChunkSize int
	Dialect   Dialect
	// URLSuffixes maps an entity type code to the suffix appended to
	// generated request paths (e.g. "product" -> ".html").
	URLSuffixes map[string]string
}

// Service generates and persists url rewrites.
type Service struct {
	attrs  attributeLookup
	stores storeLister
	exec   executor
	opts   Options
	log    *slog.Logger
}

// NewService creates a new rewrite Service. Zero-valued options fall back to
// ChunkSize, DefaultTable and DialectPostgres.
func NewService(
	log *slog.Logger,
	attrs attributeLookup,
	stores storeLister,
	exec executor,
	opts Options,
) (*Service, error) {
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = ChunkSize
	}
	if opts.Dialect == "" {
		opts.Dialect = DialectPostgres
	}

	dialect, err := ParseDialect(string(opts.Dialect))
	if err != nil {
		return nil, err
	}
	opts.Dialect = dialect
	if err := ValidateTarget(opts.Table, opts.ChunkSize, dialect); err != nil {
		return nil, err
	}

	return &Service{
		attrs:  attrs,
		stores: stores,
		exec:   exec,
		opts:   opts,
		log:    log.With("service", "urlrewrite"),
	}, nil
}

// Dialect returns the statement dialect the service renders upserts in.
func (s *Service) Dialect() Dialect {
	return s.opts.Dialect
}

// NewRun starts a generation run for one entity type. Each run owns its
// url_key attribute cache; a Run must not be shared between goroutines.
func (s *Service) NewRun(entityType string) (*Run, error) {
	if entityType == "" {
		return nil, domain.NewValidationError("entity_type", "required")
	}
	return &Run{
		ID:         uuid.New(),
		EntityType: entityType,
		svc:        s,
		attrIDs:    make(map[int]int),
	}, nil
}
