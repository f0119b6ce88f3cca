package repository

import (
	"context"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// TagRepository handles tag data access. Slugs are unique.
type TagRepository struct {
	*Table[model.Tag]
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db database.Database) *TagRepository {
	return &TagRepository{
		Table: NewTable[model.Tag](db, TableConfig{
			Name:    "tag",
			Search:  []string{"name", "slug"},
			Sorts:   []string{"name", "category", "created_on"},
			Filters: filter.Fields{"category": filter.FieldString},
		}),
	}
}

// Delete removes a tag and strips it from every tagged row
func (r *TagRepository) Delete(ctx context.Context, id string) (*model.Tag, error) {
	return r.deleteWith(ctx, id,
		"UPDATE venue SET tag_ids -= $id WHERE tag_ids CONTAINS $id RETURN NONE",
		"UPDATE blog SET tag_ids -= $id WHERE tag_ids CONTAINS $id RETURN NONE",
		"UPDATE recipe SET tag_ids -= $id WHERE tag_ids CONTAINS $id RETURN NONE",
	)
}
