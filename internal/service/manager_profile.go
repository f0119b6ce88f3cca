package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// UserReader loads accounts
type UserReader interface {
	Get(ctx context.Context, id string) (*model.User, error)
}

// ManagerProfileRepository is the profile storage needed by ManagerProfileService
type ManagerProfileRepository interface {
	Store[model.ManagerProfile]
	GetByUserID(ctx context.Context, userID string) (*model.ManagerProfile, error)
}

// ManagerProfileService manages the staff cards of manager accounts
type ManagerProfileService struct {
	profiles ManagerProfileRepository
	users    UserReader
	venues   Existence
	avatars  Images
}

// ManagerProfileServiceConfig holds the dependencies of ManagerProfileService
type ManagerProfileServiceConfig struct {
	Profiles ManagerProfileRepository
	Users    UserReader
	Venues   Existence
	Avatars  Images
}

// NewManagerProfileService creates a new manager profile service
func NewManagerProfileService(cfg ManagerProfileServiceConfig) *ManagerProfileService {
	return &ManagerProfileService{
		profiles: cfg.Profiles,
		users:    cfg.Users,
		venues:   cfg.Venues,
		avatars:  cfg.Avatars,
	}
}

// List returns a page of manager profiles
func (s *ManagerProfileService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.ManagerProfile], error) {
	return listPage(ctx, s.profiles, q)
}

// Get returns one manager profile
func (s *ManagerProfileService) Get(ctx context.Context, id string) (*model.ManagerProfile, error) {
	return getOr(ctx, s.profiles, id, ErrManagerProfileNotFound)
}

// Create attaches a profile to a staff account. Each account has at most one.
func (s *ManagerProfileService) Create(ctx context.Context, req *model.CreateManagerProfileRequest) (*model.ManagerProfile, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	user, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NewValidationError([]model.FieldError{{Field: "user_id", Message: "user does not exist"}})
	}
	if !user.IsStaff() {
		return nil, ErrUserNotStaff
	}

	errs, err := checkRefs(ctx, nil, s.venues, "venue_ids", "venue_ids contains an unknown venue", req.VenueIDs...)
	if err != nil {
		return nil, err
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrManagerProfileExists
	}

	profile, err := s.profiles.Create(ctx, &model.ManagerProfile{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Bio:         req.Bio,
		VenueIDs:    orEmpty(req.VenueIDs),
	})
	if err != nil {
		// Unique index on user_id catches a concurrent create
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrManagerProfileExists
		}
		return nil, fmt.Errorf("failed to create manager profile: %w", err)
	}
	return profile, nil
}

// Update edits a manager profile
func (s *ManagerProfileService) Update(ctx context.Context, id string, req *model.UpdateManagerProfileRequest) (*model.ManagerProfile, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "display_name", req.DisplayName)
	patch = repository.SetIf(patch, "phone", req.Phone)
	patch = repository.SetIf(patch, "bio", req.Bio)
	if req.VenueIDs != nil {
		errs, err := checkRefs(ctx, nil, s.venues, "venue_ids", "venue_ids contains an unknown venue", *req.VenueIDs...)
		if err != nil {
			return nil, err
		}
		if err := validationError(errs); err != nil {
			return nil, err
		}
		patch = patch.Set("venue_ids", orEmpty(*req.VenueIDs))
	}
	if patch.Len() == 0 {
		return s.Get(ctx, id)
	}

	profile, err := s.profiles.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update manager profile: %w", err)
	}
	if profile == nil {
		return nil, ErrManagerProfileNotFound
	}
	return profile, nil
}

// Delete removes a manager profile and its avatar
func (s *ManagerProfileService) Delete(ctx context.Context, id string) error {
	deleted, err := s.profiles.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete manager profile: %w", err)
	}
	if deleted == nil {
		return ErrManagerProfileNotFound
	}
	s.avatars.discard(ctx, deleted.AvatarPath)
	return nil
}

// SetAvatar uploads a new avatar
func (s *ManagerProfileService) SetAvatar(ctx context.Context, id string, r io.Reader) (*model.ManagerProfile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return replaceImage(ctx, s.avatars, s.profiles, id, "avatar_url", "avatar_path", current.AvatarPath, r, ErrManagerProfileNotFound)
}

// RemoveAvatar clears the avatar
func (s *ManagerProfileService) RemoveAvatar(ctx context.Context, id string) (*model.ManagerProfile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clearImage(ctx, s.avatars, s.profiles, id, "avatar_url", "avatar_path", current.AvatarPath, ErrManagerProfileNotFound)
}
