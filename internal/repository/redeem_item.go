package repository

import (
	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// RedeemItemRepository handles redeem item data access
type RedeemItemRepository struct {
	*Table[model.RedeemItem]
}

// NewRedeemItemRepository creates a new redeem item repository
func NewRedeemItemRepository(db database.Database) *RedeemItemRepository {
	return &RedeemItemRepository{
		Table: NewTable[model.RedeemItem](db, TableConfig{
			Name:   "redeem_item",
			Search: []string{"name", "description"},
			Sorts:  []string{"name", "cost", "stock", "created_on"},
			Filters: filter.Fields{
				"venue_id":  filter.FieldString,
				"is_active": filter.FieldBool,
				"cost":      filter.FieldInt,
			},
		}),
	}
}
