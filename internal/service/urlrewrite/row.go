package urlrewrite

import (
	"fmt"

	"github.com/heartmarshall/catalog-urlgen/internal/domain"
)

// PathStructure is the canonical internal path of a catalog entity.
const PathStructure = "catalog/%s/view/id/%d"

// TargetPath formats the canonical path for an entity,
// e.g. TargetPath("product", 42) == "catalog/product/view/id/42".
func TargetPath(entityType string, entityID int64) string {
	return fmt.Sprintf(PathStructure, entityType, entityID)
}

// BuildRow assembles a machine-generated rewrite row. Redirect type,
// description and metadata are always empty for generated rows.
func BuildRow(entityID int64, requestPath, targetPath string, storeID int64, entityType string) domain.URLRewrite {
	return domain.URLRewrite{
		EntityType:      entityType,
		EntityID:        entityID,
		RequestPath:     requestPath,
		TargetPath:      targetPath,
		RedirectType:    0,
		StoreID:         storeID,
		Description:     nil,
		IsAutogenerated: true,
		Metadata:        nil,
	}
}
