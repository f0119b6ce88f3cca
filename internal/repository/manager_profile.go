package repository

import (
	"context"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// ManagerProfileRepository handles manager profile data access
type ManagerProfileRepository struct {
	*Table[model.ManagerProfile]
	db database.Database
}

// NewManagerProfileRepository creates a new manager profile repository
func NewManagerProfileRepository(db database.Database) *ManagerProfileRepository {
	return &ManagerProfileRepository{
		Table: NewTable[model.ManagerProfile](db, TableConfig{
			Name:   "manager_profile",
			Search: []string{"display_name", "phone"},
			Sorts:  []string{"display_name", "created_on"},
			Filters: filter.Fields{
				"user_id":   filter.FieldString,
				"venue_ids": filter.FieldStringList,
			},
		}),
		db: db,
	}
}

// GetByUserID returns the profile of a user, or nil when there is none
func (r *ManagerProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.ManagerProfile, error) {
	query := `SELECT * FROM manager_profile WHERE user_id = $user_id LIMIT 1`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return firstRecord[model.ManagerProfile](result)
}
