package urlrewrite

import (
	"context"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
)

// Entity is the caller-supplied identity of a catalog entity.
type Entity struct {
	ID int64
	// URLKey is the stored url_key value. When empty, Name is slugified instead.
	URLKey string
	Name   string
	// StoreID scopes the rewrite. 0 means the run's default store.
	StoreID int64
}

// RequestPath derives the public request path from an entity. An entity
// without any ASCII-mappable characters yields "", which Persist drops.
func (r *Run) RequestPath(e Entity) string {
	source := e.URLKey
	if source == "" {
		source = e.Name
	}
	slug := domain.Slugify(source)
	if slug == "" {
		return ""
	}
	return slug + r.svc.opts.URLSuffixes[r.EntityType]
}

// Rows builds one rewrite row per entity. Entities without a store are
// scoped to DefaultStoreID, which is only resolved if some entity needs it.
func (r *Run) Rows(ctx context.Context, entities []Entity) ([]domain.URLRewrite, error) {
	rows := make([]domain.URLRewrite, 0, len(entities))
	for _, e := range entities {
		storeID := e.StoreID
		if storeID == adminStoreID {
			id, err := r.DefaultStoreID(ctx)
			if err != nil {
				return nil, err
			}
			storeID = id
		}
		rows = append(rows, BuildRow(e.ID, r.RequestPath(e), TargetPath(r.EntityType, e.ID), storeID, r.EntityType))
	}
	return rows, nil
}

// Generate builds rows for entities and persists them.
func (r *Run) Generate(ctx context.Context, entities []Entity) (PersistResult, error) {
	rows, err := r.Rows(ctx, entities)
	if err != nil {
		return PersistResult{}, err
	}
	return r.Persist(ctx, rows)
}

// Render builds rows for entities and returns the upsert statements Generate
// would execute, without executing them.
func (r *Run) Render(ctx context.Context, entities []Entity) ([]Statement, PersistResult, error) {
	rows, err := r.Rows(ctx, entities)
	if err != nil {
		return nil, PersistResult{}, err
	}
	return r.svc.Render(rows)
}
