package urlrewrite

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
	"github.com/heartmarshall/catalog-urlgen/pkg/ctxutil"
)

// adminStoreID is the synthetic admin/default scope; rewrites are never
// generated for it.
const adminStoreID int64 = 0

// Run is the state of one generation run for a single entity type.
// It is not safe for concurrent use.
type Run struct {
	ID         uuid.UUID
	EntityType string

	svc *Service

	// attrIDs caches url_key attribute ids per entity type id. A miss is
	// cached as 0 so it is looked up only once per run.
	attrIDs map[int]int

	defaultStoreID int64
}

// Context returns ctx annotated with the run id and entity type.
func (r *Run) Context(ctx context.Context) context.Context {
	return ctxutil.WithEntityType(ctxutil.WithRunID(ctx, r.ID), r.EntityType)
}

// URLKeyAttributeID returns the url_key attribute id of entityTypeID.
// The first call per entity type id issues one lookup; later calls are
// served from the run cache. 0 means the entity type has no url_key
// attribute.
func (r *Run) URLKeyAttributeID(ctx context.Context, entityTypeID int) (int, error) {
	if id, ok := r.attrIDs[entityTypeID]; ok {
		return id, nil
	}

	id, found, err := r.svc.attrs.LookupAttributeID(ctx, entityTypeID, urlKeyAttributeCode)
	if err != nil {
		return 0, fmt.Errorf("lookup url_key attribute for entity type %d: %w", entityTypeID, err)
	}
	if !found {
		id = 0
		r.svc.log.WarnContext(ctx, "url_key attribute not defined",
			slog.String("run_id", r.ID.String()),
			slog.Int("entity_type_id", entityTypeID),
		)
	}

	r.attrIDs[entityTypeID] = id
	return id, nil
}

// ActiveStoreIDs returns every store id except the admin store, in the
// order the store collaborator yields them.
func (r *Run) ActiveStoreIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.svc.stores.ListStoreIDs(ctx, adminStoreID)
	if err != nil {
		return nil, fmt.Errorf("list store ids: %w", err)
	}

	active := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > adminStoreID {
			active = append(active, id)
		}
	}
	return active, nil
}

// DefaultStoreID returns the store that entities without an explicit store
// are scoped to: the lowest active store id. It is looked up once per run.
// A run against a catalog without active stores fails with ErrValidation.
func (r *Run) DefaultStoreID(ctx context.Context) (int64, error) {
	if r.defaultStoreID != adminStoreID {
		return r.defaultStoreID, nil
	}

	ids, err := r.ActiveStoreIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, domain.NewValidationError("store_id", "no active store to scope entities without a store")
	}

	r.defaultStoreID = slices.Min(ids)
	return r.defaultStoreID, nil
}

// Persist upserts rows on behalf of this run.
func (r *Run) Persist(ctx context.Context, rows []domain.URLRewrite) (PersistResult, error) {
	return r.svc.Persist(r.Context(ctx), rows)
}
