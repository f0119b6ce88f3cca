package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

type mockBookingStore struct {
	*mockStore[model.Booking]
	updateFromStatusFunc func(ctx context.Context, id string, from model.BookingStatus, patch repository.Patch) (*model.Booking, error)
}

func (m *mockBookingStore) UpdateFromStatus(ctx context.Context, id string, from model.BookingStatus, patch repository.Patch) (*model.Booking, error) {
	if m.updateFromStatusFunc != nil {
		return m.updateFromStatusFunc(ctx, id, from, patch)
	}
	return m.Update(ctx, id, patch)
}

func newBookingFixture(current model.BookingStatus) (*BookingService, *mockBookingStore) {
	bookings := &mockBookingStore{mockStore: &mockStore[model.Booking]{
		getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			if id != "booking:1" {
				return nil, nil
			}
			return &model.Booking{ID: id, VenueID: "venue:harbour", Status: current}, nil
		},
		updateFunc: func(ctx context.Context, id string, patch repository.Patch) (*model.Booking, error) {
			return &model.Booking{ID: id}, nil
		},
	}}
	return NewBookingService(bookings, existing("venue:harbour"), existing("user:ada")), bookings
}

func validBookingRequest() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		VenueID:     "venue:harbour",
		GuestName:   "Ada",
		PartySize:   4,
		BookingTime: time.Date(2026, 11, 1, 19, 30, 0, 0, time.FixedZone("CET", 3600)),
	}
}

func TestBookingCreate_DefaultsToPending(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingFixture(model.BookingStatusPending)
	booking, err := svc.Create(context.Background(), validBookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.BookingStatusPending {
		t.Errorf("expected pending, got %s", booking.Status)
	}
	if booking.BookingTime.Location() != time.UTC {
		t.Error("booking time should be stored in UTC")
	}
}

func TestBookingCreate_TerminalStatusRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingFixture(model.BookingStatusPending)
	req := validBookingRequest()
	req.Status = model.BookingStatusCompleted

	_, err := svc.Create(context.Background(), req)
	if errs := fieldErrors(t, err); !hasFieldError(errs, "status") {
		t.Errorf("expected status error, got %+v", errs)
	}
}

func TestBookingCreate_UnknownReferences(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingFixture(model.BookingStatusPending)
	req := validBookingRequest()
	req.VenueID = "venue:nowhere"
	req.UserID = "user:ghost"

	_, err := svc.Create(context.Background(), req)
	errs := fieldErrors(t, err)
	if !hasFieldError(errs, "venue_id") || !hasFieldError(errs, "user_id") {
		t.Errorf("expected venue_id and user_id errors, got %+v", errs)
	}
}

func TestBookingUpdate_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    model.BookingStatus
		to      model.BookingStatus
		allowed bool
	}{
		{"pending to confirmed", model.BookingStatusPending, model.BookingStatusConfirmed, true},
		{"pending to cancelled", model.BookingStatusPending, model.BookingStatusCancelled, true},
		{"confirmed to completed", model.BookingStatusConfirmed, model.BookingStatusCompleted, true},
		{"confirmed to no show", model.BookingStatusConfirmed, model.BookingStatusNoShow, true},
		{"pending to completed", model.BookingStatusPending, model.BookingStatusCompleted, false},
		{"cancelled to confirmed", model.BookingStatusCancelled, model.BookingStatusConfirmed, false},
		{"completed to pending", model.BookingStatusCompleted, model.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newBookingFixture(tt.from)
			to := tt.to
			_, err := svc.Update(context.Background(), "booking:1", &model.UpdateBookingRequest{Status: &to})
			if tt.allowed && err != nil {
				t.Errorf("expected transition allowed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrInvalidStatusTransition) {
				t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
			}
		})
	}
}

func TestBookingUpdate_StatusGuardedByCheckedStatus(t *testing.T) {
	t.Parallel()

	svc, bookings := newBookingFixture(model.BookingStatusPending)
	var guardedFrom model.BookingStatus
	bookings.updateFromStatusFunc = func(ctx context.Context, id string, from model.BookingStatus, patch repository.Patch) (*model.Booking, error) {
		guardedFrom = from
		return &model.Booking{ID: id, Status: model.BookingStatusConfirmed}, nil
	}
	bookings.updateFunc = func(ctx context.Context, id string, patch repository.Patch) (*model.Booking, error) {
		t.Error("status change must not use the unguarded update")
		return nil, nil
	}

	to := model.BookingStatusConfirmed
	if _, err := svc.Update(context.Background(), "booking:1", &model.UpdateBookingRequest{Status: &to}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if guardedFrom != model.BookingStatusPending {
		t.Errorf("expected guard on pending, got %q", guardedFrom)
	}
}

func TestBookingUpdate_StatusChangedConcurrently(t *testing.T) {
	t.Parallel()

	svc, bookings := newBookingFixture(model.BookingStatusPending)
	reads := 0
	bookings.getFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		reads++
		if reads == 1 {
			return &model.Booking{ID: id, Status: model.BookingStatusPending}, nil
		}
		return &model.Booking{ID: id, Status: model.BookingStatusCancelled}, nil
	}
	bookings.updateFromStatusFunc = func(ctx context.Context, id string, from model.BookingStatus, patch repository.Patch) (*model.Booking, error) {
		return nil, nil
	}

	to := model.BookingStatusConfirmed
	_, err := svc.Update(context.Background(), "booking:1", &model.UpdateBookingRequest{Status: &to})
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestBookingUpdate_DeletedBeforeStatusWrite(t *testing.T) {
	t.Parallel()

	svc, bookings := newBookingFixture(model.BookingStatusPending)
	reads := 0
	bookings.getFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		reads++
		if reads == 1 {
			return &model.Booking{ID: id, Status: model.BookingStatusPending}, nil
		}
		return nil, nil
	}
	bookings.updateFromStatusFunc = func(ctx context.Context, id string, from model.BookingStatus, patch repository.Patch) (*model.Booking, error) {
		return nil, nil
	}

	to := model.BookingStatusConfirmed
	if _, err := svc.Update(context.Background(), "booking:1", &model.UpdateBookingRequest{Status: &to}); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingUpdate_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingFixture(model.BookingStatusPending)
	if _, err := svc.Update(context.Background(), "booking:2", &model.UpdateBookingRequest{Notes: ptr("x")}); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingDelete_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingFixture(model.BookingStatusPending)
	if err := svc.Delete(context.Background(), "booking:2"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}
