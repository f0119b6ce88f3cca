package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// BookingStore is the booking storage with a status-guarded update
type BookingStore interface {
	Store[model.Booking]
	UpdateFromStatus(ctx context.Context, id string, from model.BookingStatus, patch repository.Patch) (*model.Booking, error)
}

// BookingService manages table reservations
type BookingService struct {
	bookings BookingStore
	venues   Existence
	users    Existence
}

// NewBookingService creates a new booking service
func NewBookingService(bookings BookingStore, venues, users Existence) *BookingService {
	return &BookingService{
		bookings: bookings,
		venues:   venues,
		users:    users,
	}
}

// List returns a page of bookings
func (s *BookingService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Booking], error) {
	return listPage(ctx, s.bookings, q)
}

// Get returns one booking
func (s *BookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	return getOr(ctx, s.bookings, id, ErrBookingNotFound)
}

// Create records a booking. Bookings start pending or confirmed.
func (s *BookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	errs := req.Validate()
	if req.Status != "" && req.Status.IsValid() && !req.Status.IsOpen() {
		errs = append(errs, model.FieldError{Field: "status", Message: "new bookings must be 'pending' or 'confirmed'"})
	}
	if len(errs) == 0 {
		var err error
		if errs, err = checkRefs(ctx, errs, s.venues, "venue_id", "venue does not exist", req.VenueID); err != nil {
			return nil, err
		}
		if req.UserID != "" {
			if errs, err = checkRefs(ctx, errs, s.users, "user_id", "user does not exist", req.UserID); err != nil {
				return nil, err
			}
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.BookingStatusPending
	}

	booking, err := s.bookings.Create(ctx, &model.Booking{
		VenueID:     req.VenueID,
		UserID:      req.UserID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		GuestPhone:  req.GuestPhone,
		PartySize:   req.PartySize,
		BookingTime: req.BookingTime.UTC(),
		Status:      status,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// Update edits a booking. Status changes follow the booking lifecycle.
func (s *BookingService) Update(ctx context.Context, id string, req *model.UpdateBookingRequest) (*model.Booking, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	current, err := getOr(ctx, s.bookings, id, ErrBookingNotFound)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !current.Status.CanTransitionTo(*req.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, current.Status, *req.Status)
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "guest_name", req.GuestName)
	patch = repository.SetIf(patch, "guest_email", req.GuestEmail)
	patch = repository.SetIf(patch, "guest_phone", req.GuestPhone)
	patch = repository.SetIf(patch, "party_size", req.PartySize)
	patch = repository.SetIf(patch, "status", req.Status)
	patch = repository.SetIf(patch, "notes", req.Notes)
	if req.BookingTime != nil {
		patch = patch.Set("booking_time", req.BookingTime.UTC())
	}
	if patch.Len() == 0 {
		return current, nil
	}

	var booking *model.Booking
	if req.Status != nil {
		booking, err = s.bookings.UpdateFromStatus(ctx, id, current.Status, patch)
	} else {
		booking, err = s.bookings.Update(ctx, id, patch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if booking == nil {
		return nil, s.lostUpdate(ctx, id, current.Status)
	}

	if req.Status != nil && *req.Status != current.Status {
		slog.Info("booking status changed",
			slog.String("booking_id", id),
			slog.String("from", string(current.Status)),
			slog.String("to", string(*req.Status)),
		)
	}
	return booking, nil
}

// lostUpdate explains why an update matched no row: the booking is gone or
// its status moved away from the one the transition was checked against.
func (s *BookingService) lostUpdate(ctx context.Context, id string, checked model.BookingStatus) error {
	latest, err := s.bookings.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	if latest == nil {
		return ErrBookingNotFound
	}
	return fmt.Errorf("%w: status changed from %s to %s", ErrInvalidStatusTransition, checked, latest.Status)
}

// Delete removes a booking
func (s *BookingService) Delete(ctx context.Context, id string) error {
	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if deleted == nil {
		return ErrBookingNotFound
	}
	return nil
}
