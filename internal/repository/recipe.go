package repository

import (
	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// RecipeRepository handles recipe data access
type RecipeRepository struct {
	*Table[model.Recipe]
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db database.Database) *RecipeRepository {
	return &RecipeRepository{
		Table: NewTable[model.Recipe](db, TableConfig{
			Name:   "recipe",
			Search: []string{"name", "description"},
			Sorts:  []string{"name", "prep_minutes", "created_on"},
			Filters: filter.Fields{
				"venue_id":     filter.FieldString,
				"is_active":    filter.FieldBool,
				"tag_ids":      filter.FieldStringList,
				"prep_minutes": filter.FieldInt,
			},
		}),
	}
}
