package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// OpenBookingCounter counts bookings that still hold a table at a venue
type OpenBookingCounter interface {
	CountOpenForVenue(ctx context.Context, venueID string) (int, error)
}

// VenueService manages venues
type VenueService struct {
	venues   Store[model.Venue]
	tags     Existence
	bookings OpenBookingCounter
	images   Images
}

// VenueServiceConfig holds the dependencies of VenueService
type VenueServiceConfig struct {
	Venues   Store[model.Venue]
	Tags     Existence
	Bookings OpenBookingCounter
	Images   Images
}

// NewVenueService creates a new venue service
func NewVenueService(cfg VenueServiceConfig) *VenueService {
	return &VenueService{
		venues:   cfg.Venues,
		tags:     cfg.Tags,
		bookings: cfg.Bookings,
		images:   cfg.Images,
	}
}

// List returns a page of venues
func (s *VenueService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Venue], error) {
	return listPage(ctx, s.venues, q)
}

// Get returns one venue
func (s *VenueService) Get(ctx context.Context, id string) (*model.Venue, error) {
	return getOr(ctx, s.venues, id, ErrVenueNotFound)
}

// Create creates a venue. New venues start as drafts.
func (s *VenueService) Create(ctx context.Context, req *model.CreateVenueRequest) (*model.Venue, error) {
	errs := req.Validate()
	if len(errs) == 0 {
		var err error
		if errs, err = checkRefs(ctx, errs, s.tags, "tag_ids", "tag_ids contains an unknown tag", req.TagIDs...); err != nil {
			return nil, err
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.VenueStatusDraft
	}

	venue, err := s.venues.Create(ctx, &model.Venue{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		TagIDs:      orEmpty(req.TagIDs),
		Status:      status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

// Update edits a venue
func (s *VenueService) Update(ctx context.Context, id string, req *model.UpdateVenueRequest) (*model.Venue, error) {
	errs := req.Validate()
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	current, err := getOr(ctx, s.venues, id, ErrVenueNotFound)
	if err != nil {
		return nil, err
	}

	// Coordinates must stay paired after the patch
	lat, lng := current.Latitude, current.Longitude
	if req.Latitude != nil {
		lat = req.Latitude
	}
	if req.Longitude != nil {
		lng = req.Longitude
	}
	if req.ClearCoordinates {
		lat, lng = nil, nil
	}
	if (lat == nil) != (lng == nil) {
		errs = append(errs, model.FieldError{Field: "longitude", Message: "latitude and longitude must be given together"})
	}
	if req.TagIDs != nil {
		if errs, err = checkRefs(ctx, errs, s.tags, "tag_ids", "tag_ids contains an unknown tag", *req.TagIDs...); err != nil {
			return nil, err
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "name", req.Name)
	patch = repository.SetIf(patch, "description", req.Description)
	patch = repository.SetIf(patch, "address", req.Address)
	patch = repository.SetIf(patch, "city", req.City)
	patch = repository.SetIf(patch, "country", req.Country)
	patch = repository.SetIf(patch, "latitude", req.Latitude)
	patch = repository.SetIf(patch, "longitude", req.Longitude)
	if req.ClearCoordinates {
		patch = patch.Set("latitude", nil).Set("longitude", nil)
	}
	patch = repository.SetIf(patch, "phone", req.Phone)
	patch = repository.SetIf(patch, "email", req.Email)
	patch = repository.SetIf(patch, "website", req.Website)
	patch = repository.SetIf(patch, "status", req.Status)
	if req.TagIDs != nil {
		patch = patch.Set("tag_ids", orEmpty(*req.TagIDs))
	}
	if patch.Len() == 0 {
		return current, nil
	}

	venue, err := s.venues.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	return venue, nil
}

// Delete removes a venue that has no pending or confirmed bookings
func (s *VenueService) Delete(ctx context.Context, id string) error {
	if _, err := getOr(ctx, s.venues, id, ErrVenueNotFound); err != nil {
		return err
	}

	open, err := s.bookings.CountOpenForVenue(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return ErrVenueHasOpenBookings
	}

	deleted, err := s.venues.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	if deleted == nil {
		return ErrVenueNotFound
	}
	s.images.discard(ctx, deleted.ImagePath)

	slog.Info("venue deleted", slog.String("venue_id", id))
	return nil
}

// SetImage uploads a new venue image
func (s *VenueService) SetImage(ctx context.Context, id string, r io.Reader) (*model.Venue, error) {
	current, err := getOr(ctx, s.venues, id, ErrVenueNotFound)
	if err != nil {
		return nil, err
	}
	return replaceImage(ctx, s.images, s.venues, id, "image_url", "image_path", current.ImagePath, r, ErrVenueNotFound)
}

// RemoveImage clears the venue image
func (s *VenueService) RemoveImage(ctx context.Context, id string) (*model.Venue, error) {
	current, err := getOr(ctx, s.venues, id, ErrVenueNotFound)
	if err != nil {
		return nil, err
	}
	return clearImage(ctx, s.images, s.venues, id, "image_url", "image_path", current.ImagePath, ErrVenueNotFound)
}
