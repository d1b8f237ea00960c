package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLRewrite_Valid(t *testing.T) {
	t.Parallel()

	base := URLRewrite{EntityType: "product", EntityID: 1, RequestPath: "shirt.html", TargetPath: "catalog/product/view/id/1"}

	tests := []struct {
		name   string
		mutate func(r *URLRewrite)
		want   bool
	}{
		{name: "complete", mutate: func(*URLRewrite) {}, want: true},
		{name: "missing entity type", mutate: func(r *URLRewrite) { r.EntityType = "" }, want: false},
		{name: "missing request path", mutate: func(r *URLRewrite) { r.RequestPath = "" }, want: false},
		{name: "missing target path", mutate: func(r *URLRewrite) { r.TargetPath = "" }, want: false},
		{name: "zero entity id still valid", mutate: func(r *URLRewrite) { r.EntityID = 0 }, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := base
			tt.mutate(&r)
			assert.Equal(t, tt.want, r.Valid())
		})
	}
}

func TestURLRewrite_Values(t *testing.T) {
	t.Parallel()

	desc := "note"
	r := URLRewrite{
		EntityType:      "category",
		EntityID:        7,
		RequestPath:     "women.html",
		TargetPath:      "catalog/category/view/id/7",
		StoreID:         2,
		Description:     &desc,
		IsAutogenerated: true,
	}

	got := r.Values()

	assert.Len(t, got, len(RewriteColumns))
	assert.Equal(t, []any{"category", int64(7), "women.html", "catalog/category/view/id/7", 0, int64(2), "note", 1, nil}, got)
}
