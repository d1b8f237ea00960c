package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey      ctxKey = "run_id"
	entityTypeKey ctxKey = "entity_type"
)

// WithRunID stores the generation run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the generation run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithEntityType stores the entity type code of the current run in the context.
func WithEntityType(ctx context.Context, entityType string) context.Context {
	return context.WithValue(ctx, entityTypeKey, entityType)
}

// EntityTypeFromCtx extracts the entity type code from the context.
// Returns an empty string if absent.
func EntityTypeFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(entityTypeKey).(string)
	return v
}
