package service

import (
	"context"
	"fmt"
	"io"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// RedeemItemService manages rewards bought with drink dollars
type RedeemItemService struct {
	items  Store[model.RedeemItem]
	venues Existence
	images Images
}

// NewRedeemItemService creates a new redeem item service
func NewRedeemItemService(items Store[model.RedeemItem], venues Existence, images Images) *RedeemItemService {
	return &RedeemItemService{items: items, venues: venues, images: images}
}

// List returns a page of redeem items
func (s *RedeemItemService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.RedeemItem], error) {
	return listPage(ctx, s.items, q)
}

// Get returns one redeem item
func (s *RedeemItemService) Get(ctx context.Context, id string) (*model.RedeemItem, error) {
	return getOr(ctx, s.items, id, ErrRedeemItemNotFound)
}

// Create adds a redeem item. A nil stock means unlimited.
func (s *RedeemItemService) Create(ctx context.Context, req *model.CreateRedeemItemRequest) (*model.RedeemItem, error) {
	errs := req.Validate()
	if len(errs) == 0 && req.VenueID != "" {
		var err error
		if errs, err = checkRefs(ctx, errs, s.venues, "venue_id", "venue does not exist", req.VenueID); err != nil {
			return nil, err
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	item, err := s.items.Create(ctx, &model.RedeemItem{
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Stock:       req.Stock,
		VenueID:     req.VenueID,
		IsActive:    boolOr(req.IsActive, true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redeem item: %w", err)
	}
	return item, nil
}

// Update edits a redeem item
func (s *RedeemItemService) Update(ctx context.Context, id string, req *model.UpdateRedeemItemRequest) (*model.RedeemItem, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "name", req.Name)
	patch = repository.SetIf(patch, "description", req.Description)
	patch = repository.SetIf(patch, "cost", req.Cost)
	patch = repository.SetIf(patch, "stock", req.Stock)
	patch = repository.SetIf(patch, "is_active", req.IsActive)
	if req.ClearStock {
		patch = patch.Set("stock", nil)
	}
	if req.VenueID != nil {
		if *req.VenueID == "" {
			patch = patch.Set("venue_id", nil)
		} else {
			errs, err := checkRefs(ctx, nil, s.venues, "venue_id", "venue does not exist", *req.VenueID)
			if err != nil {
				return nil, err
			}
			if err := validationError(errs); err != nil {
				return nil, err
			}
			patch = patch.Set("venue_id", *req.VenueID)
		}
	}
	if patch.Len() == 0 {
		return s.Get(ctx, id)
	}

	item, err := s.items.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update redeem item: %w", err)
	}
	if item == nil {
		return nil, ErrRedeemItemNotFound
	}
	return item, nil
}

// Delete removes a redeem item and its image
func (s *RedeemItemService) Delete(ctx context.Context, id string) error {
	deleted, err := s.items.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete redeem item: %w", err)
	}
	if deleted == nil {
		return ErrRedeemItemNotFound
	}
	s.images.discard(ctx, deleted.ImagePath)
	return nil
}

// SetImage uploads a new item image
func (s *RedeemItemService) SetImage(ctx context.Context, id string, r io.Reader) (*model.RedeemItem, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return replaceImage(ctx, s.images, s.items, id, "image_url", "image_path", current.ImagePath, r, ErrRedeemItemNotFound)
}

// RemoveImage clears the item image
func (s *RedeemItemService) RemoveImage(ctx context.Context, id string) (*model.RedeemItem, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clearImage(ctx, s.images, s.items, id, "image_url", "image_path", current.ImagePath, ErrRedeemItemNotFound)
}
