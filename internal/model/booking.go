package model

import "time"

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow},
}

// IsValid returns true if the status is known
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once no further transition is possible
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(bookingTransitions[s]) == 0
}

// IsOpen returns true for bookings that still hold a table
func (s BookingStatus) IsOpen() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Staying in the same state is always allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a table reservation at a venue
type Booking struct {
	ID          string        `json:"id"`
	VenueID     string        `json:"venue_id"`
	UserID      string        `json:"user_id,omitempty"`
	GuestName   string        `json:"guest_name"`
	GuestEmail  string        `json:"guest_email,omitempty"`
	GuestPhone  string        `json:"guest_phone,omitempty"`
	PartySize   int           `json:"party_size"`
	BookingTime time.Time     `json:"booking_time"`
	Status      BookingStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`
}

// Booking field limits
const (
	MinPartySize            = 1
	MaxPartySize            = 50
	MaxBookingNotesLength   = 1000
	MaxBookingGuestNameLen  = 100
	MaxBookingGuestPhoneLen = 30
)

// CreateBookingRequest represents a request to create a booking
type CreateBookingRequest struct {
	VenueID     string        `json:"venue_id"`
	UserID      string        `json:"user_id,omitempty"`
	GuestName   string        `json:"guest_name"`
	GuestEmail  string        `json:"guest_email,omitempty"`
	GuestPhone  string        `json:"guest_phone,omitempty"`
	PartySize   int           `json:"party_size"`
	BookingTime time.Time     `json:"booking_time"`
	Status      BookingStatus `json:"status,omitempty"` // defaults to "pending"
	Notes       string        `json:"notes,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateBookingRequest) Validate() []FieldError {
	var errors []FieldError

	if r.VenueID == "" {
		errors = append(errors, FieldError{Field: "venue_id", Message: "venue_id is required"})
	} else if !IsRecordID(r.VenueID, "venue") {
		errors = append(errors, FieldError{Field: "venue_id", Message: "venue_id must be a venue id"})
	}
	if r.UserID != "" && !IsRecordID(r.UserID, "user") {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id must be a user id"})
	}
	errors = required(errors, "guest_name", r.GuestName)
	errors = validateBookingDetails(errors, r.GuestName, r.GuestEmail, r.GuestPhone, r.Notes)
	errors = validatePartySize(errors, r.PartySize)
	if r.BookingTime.IsZero() {
		errors = append(errors, FieldError{Field: "booking_time", Message: "booking_time is required"})
	}
	if r.Status != "" && !r.Status.IsValid() {
		errors = append(errors, FieldError{Field: "status", Message: "status is not a valid booking status"})
	}

	return errors
}

// UpdateBookingRequest represents a request to update a booking
type UpdateBookingRequest struct {
	GuestName   *string        `json:"guest_name,omitempty"`
	GuestEmail  *string        `json:"guest_email,omitempty"`
	GuestPhone  *string        `json:"guest_phone,omitempty"`
	PartySize   *int           `json:"party_size,omitempty"`
	BookingTime *time.Time     `json:"booking_time,omitempty"`
	Status      *BookingStatus `json:"status,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateBookingRequest) Validate() []FieldError {
	var errors []FieldError

	var name, email, phone, notes string
	if r.GuestName != nil {
		name = *r.GuestName
		if name == "" {
			errors = append(errors, FieldError{Field: "guest_name", Message: "guest_name cannot be empty"})
		}
	}
	if r.GuestEmail != nil {
		email = *r.GuestEmail
	}
	if r.GuestPhone != nil {
		phone = *r.GuestPhone
	}
	if r.Notes != nil {
		notes = *r.Notes
	}
	errors = validateBookingDetails(errors, name, email, phone, notes)
	if r.PartySize != nil {
		errors = validatePartySize(errors, *r.PartySize)
	}
	if r.BookingTime != nil && r.BookingTime.IsZero() {
		errors = append(errors, FieldError{Field: "booking_time", Message: "booking_time cannot be empty"})
	}
	if r.Status != nil && !r.Status.IsValid() {
		errors = append(errors, FieldError{Field: "status", Message: "status is not a valid booking status"})
	}

	return errors
}

func validatePartySize(errors []FieldError, size int) []FieldError {
	if size < MinPartySize || size > MaxPartySize {
		errors = append(errors, FieldError{Field: "party_size", Message: "party_size must be between 1 and 50"})
	}
	return errors
}

func validateBookingDetails(errors []FieldError, name, email, phone, notes string) []FieldError {
	errors = maxLen(errors, "guest_name", name, MaxBookingGuestNameLen)
	if email != "" && !IsValidEmail(email) {
		errors = append(errors, FieldError{Field: "guest_email", Message: "guest_email is not a valid address"})
	}
	errors = maxLen(errors, "guest_phone", phone, MaxBookingGuestPhoneLen)
	return maxLen(errors, "notes", notes, MaxBookingNotesLength)
}
