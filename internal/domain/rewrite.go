package domain

// Entity type codes stored in url_rewrite.entity_type.
const (
	EntityTypeProduct  = "product"
	EntityTypeCategory = "category"
)

// RewriteColumns lists the url_rewrite columns in the order URLRewrite.Values
// emits them. Statement builders rely on this order.
var RewriteColumns = []string{
	"entity_type",
	"entity_id",
	"request_path",
	"target_path",
	"redirect_type",
	"store_id",
	"description",
	"is_autogenerated",
	"metadata",
}

// RewriteConflictColumn is the natural key used for upsert conflict resolution.
const RewriteConflictColumn = "request_path"

// URLRewrite is one row destined for the url_rewrite table.
type URLRewrite struct {
	EntityType      string
	EntityID        int64
	RequestPath     string
	TargetPath      string
	RedirectType    int
	StoreID         int64
	Description     *string
	IsAutogenerated bool
	Metadata        *string
}

// Valid reports whether the row carries an entity type, a request path and
// a target path. Invalid rows are dropped before persistence.
func (r URLRewrite) Valid() bool {
	return r.EntityType != "" && r.RequestPath != "" && r.TargetPath != ""
}

// Values returns the row's column values in RewriteColumns order.
func (r URLRewrite) Values() []any {
	autogenerated := 0
	if r.IsAutogenerated {
		autogenerated = 1
	}
	return []any{
		r.EntityType,
		r.EntityID,
		r.RequestPath,
		r.TargetPath,
		r.RedirectType,
		r.StoreID,
		nullableString(r.Description),
		autogenerated,
		nullableString(r.Metadata),
	}
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
