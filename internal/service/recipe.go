package service

import (
	"context"
	"fmt"
	"io"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// RecipeService manages drink recipes
type RecipeService struct {
	recipes Store[model.Recipe]
	tags    Existence
	venues  Existence
	images  Images
}

// RecipeServiceConfig holds the dependencies of RecipeService
type RecipeServiceConfig struct {
	Recipes Store[model.Recipe]
	Tags    Existence
	Venues  Existence
	Images  Images
}

// NewRecipeService creates a new recipe service
func NewRecipeService(cfg RecipeServiceConfig) *RecipeService {
	return &RecipeService{
		recipes: cfg.Recipes,
		tags:    cfg.Tags,
		venues:  cfg.Venues,
		images:  cfg.Images,
	}
}

// List returns a page of recipes
func (s *RecipeService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Recipe], error) {
	return listPage(ctx, s.recipes, q)
}

// Get returns one recipe
func (s *RecipeService) Get(ctx context.Context, id string) (*model.Recipe, error) {
	return getOr(ctx, s.recipes, id, ErrRecipeNotFound)
}

// Create adds a recipe
func (s *RecipeService) Create(ctx context.Context, req *model.CreateRecipeRequest) (*model.Recipe, error) {
	errs := req.Validate()
	if len(errs) == 0 {
		var err error
		if errs, err = s.checkRefs(ctx, errs, req.TagIDs, req.VenueID); err != nil {
			return nil, err
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.Create(ctx, &model.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		TagIDs:       orEmpty(req.TagIDs),
		VenueID:      req.VenueID,
		PrepMinutes:  req.PrepMinutes,
		IsActive:     boolOr(req.IsActive, true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// Update edits a recipe
func (s *RecipeService) Update(ctx context.Context, id string, req *model.UpdateRecipeRequest) (*model.Recipe, error) {
	errs := req.Validate()
	if len(errs) == 0 {
		var tagIDs []string
		if req.TagIDs != nil {
			tagIDs = *req.TagIDs
		}
		var venueID string
		if req.VenueID != nil {
			venueID = *req.VenueID
		}
		var err error
		if errs, err = s.checkRefs(ctx, errs, tagIDs, venueID); err != nil {
			return nil, err
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "name", req.Name)
	patch = repository.SetIf(patch, "description", req.Description)
	patch = repository.SetIf(patch, "ingredients", req.Ingredients)
	patch = repository.SetIf(patch, "instructions", req.Instructions)
	patch = repository.SetIf(patch, "prep_minutes", req.PrepMinutes)
	patch = repository.SetIf(patch, "is_active", req.IsActive)
	if req.TagIDs != nil {
		patch = patch.Set("tag_ids", orEmpty(*req.TagIDs))
	}
	if req.VenueID != nil {
		if *req.VenueID == "" {
			patch = patch.Set("venue_id", nil)
		} else {
			patch = patch.Set("venue_id", *req.VenueID)
		}
	}
	if patch.Len() == 0 {
		return s.Get(ctx, id)
	}

	recipe, err := s.recipes.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// Delete removes a recipe and its image
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	deleted, err := s.recipes.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if deleted == nil {
		return ErrRecipeNotFound
	}
	s.images.discard(ctx, deleted.ImagePath)
	return nil
}

// SetImage uploads a new recipe image
func (s *RecipeService) SetImage(ctx context.Context, id string, r io.Reader) (*model.Recipe, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return replaceImage(ctx, s.images, s.recipes, id, "image_url", "image_path", current.ImagePath, r, ErrRecipeNotFound)
}

// RemoveImage clears the recipe image
func (s *RecipeService) RemoveImage(ctx context.Context, id string) (*model.Recipe, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clearImage(ctx, s.images, s.recipes, id, "image_url", "image_path", current.ImagePath, ErrRecipeNotFound)
}

func (s *RecipeService) checkRefs(ctx context.Context, errs []model.FieldError, tagIDs []string, venueID string) ([]model.FieldError, error) {
	errs, err := checkRefs(ctx, errs, s.tags, "tag_ids", "tag_ids contains an unknown tag", tagIDs...)
	if err != nil {
		return nil, err
	}
	if venueID == "" {
		return errs, nil
	}
	return checkRefs(ctx, errs, s.venues, "venue_id", "venue does not exist", venueID)
}
