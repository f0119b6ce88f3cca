package repository

import (
	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// LanguageRepository handles language data access. Codes are unique.
type LanguageRepository struct {
	*Table[model.Language]
}

// NewLanguageRepository creates a new language repository
func NewLanguageRepository(db database.Database) *LanguageRepository {
	return &LanguageRepository{
		Table: NewTable[model.Language](db, TableConfig{
			Name:    "language",
			Search:  []string{"code", "name", "native_name"},
			Sorts:   []string{"name", "code", "sort_order", "created_on"},
			Filters: filter.Fields{"is_active": filter.FieldBool, "code": filter.FieldString},
		}),
	}
}
