package repository

import (
	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// BlogRepository handles blog data access. Slugs are unique.
type BlogRepository struct {
	*Table[model.Blog]
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db database.Database) *BlogRepository {
	return &BlogRepository{
		Table: NewTable[model.Blog](db, TableConfig{
			Name:   "blog",
			Search: []string{"title", "excerpt"},
			Sorts:  []string{"title", "published_at", "status", "created_on"},
			Filters: filter.Fields{
				"status":       filter.FieldString,
				"author_id":    filter.FieldString,
				"tag_ids":      filter.FieldStringList,
				"published_at": filter.FieldTimestamp,
			},
			TimeFields: []string{"published_at"},
		}),
	}
}
