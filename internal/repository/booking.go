package repository

import (
	"context"
	"time"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

var openBookingStatuses = []string{string(model.BookingStatusPending), string(model.BookingStatusConfirmed)}

// BookingRepository handles booking data access
type BookingRepository struct {
	*Table[model.Booking]
	db database.Database
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{
		Table: NewTable[model.Booking](db, TableConfig{
			Name:   "booking",
			Search: []string{"guest_name", "guest_email", "guest_phone"},
			Sorts:  []string{"booking_time", "party_size", "status", "created_on"},
			Filters: filter.Fields{
				"status":       filter.FieldString,
				"venue_id":     filter.FieldString,
				"user_id":      filter.FieldString,
				"party_size":   filter.FieldInt,
				"booking_time": filter.FieldTimestamp,
				"created_on":   filter.FieldTimestamp,
			},
			TimeFields: []string{"booking_time"},
		}),
		db: db,
	}
}

// UpdateFromStatus applies the patch only while the booking is still in
// status from. A missing row or a status that moved on returns nil.
func (r *BookingRepository) UpdateFromStatus(ctx context.Context, id string, from model.BookingStatus, patch Patch) (*model.Booking, error) {
	return r.updateWhere(ctx, id, patch, filter.Condition{
		Clause: "status = $from_status",
		Vars:   map[string]interface{}{"from_status": string(from)},
	})
}

// CountOpenForVenue counts pending and confirmed bookings at a venue
func (r *BookingRepository) CountOpenForVenue(ctx context.Context, venueID string) (int, error) {
	return r.Count(ctx, filter.Condition{
		Clause: "venue_id = $venue_id AND status IN $statuses",
		Vars:   map[string]interface{}{"venue_id": venueID, "statuses": openBookingStatuses},
	})
}

// CountByStatus counts bookings in one status
func (r *BookingRepository) CountByStatus(ctx context.Context, status model.BookingStatus) (int, error) {
	return r.Count(ctx, filter.Condition{
		Clause: "status = $status",
		Vars:   map[string]interface{}{"status": string(status)},
	})
}

// CountBetween counts bookings whose time falls in [from, to)
func (r *BookingRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.Count(ctx, filter.Condition{
		Clause: "booking_time >= <datetime> $from AND booking_time < <datetime> $to",
		Vars:   map[string]interface{}{"from": formatTime(from), "to": formatTime(to)},
	})
}

// Recent returns the most recently created bookings
func (r *BookingRepository) Recent(ctx context.Context, limit int) ([]model.Booking, error) {
	query := `SELECT * FROM booking ORDER BY created_on DESC LIMIT $limit`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.Booking](database.StatementRecords(result, 0))
}
