package repository

import (
	"context"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// VenueRepository handles venue data access
type VenueRepository struct {
	*Table[model.Venue]
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db database.Database) *VenueRepository {
	return &VenueRepository{
		Table: NewTable[model.Venue](db, TableConfig{
			Name:   "venue",
			Search: []string{"name", "address", "city"},
			Sorts:  []string{"name", "city", "status", "created_on", "updated_on"},
			Filters: filter.Fields{
				"status":     filter.FieldString,
				"city":       filter.FieldString,
				"country":    filter.FieldString,
				"tag_ids":    filter.FieldStringList,
				"created_on": filter.FieldTimestamp,
			},
		}),
	}
}

// Delete removes a venue and detaches it from manager profiles, redeem
// items and recipes.
func (r *VenueRepository) Delete(ctx context.Context, id string) (*model.Venue, error) {
	return r.deleteWith(ctx, id,
		"UPDATE manager_profile SET venue_ids -= $id WHERE venue_ids CONTAINS $id RETURN NONE",
		"UPDATE redeem_item SET venue_id = NONE WHERE venue_id = $id RETURN NONE",
		"UPDATE recipe SET venue_id = NONE WHERE venue_id = $id RETURN NONE",
	)
}
