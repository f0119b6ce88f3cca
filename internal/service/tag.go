package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// TagService manages content tags
type TagService struct {
	tags Store[model.Tag]
}

// NewTagService creates a new tag service
func NewTagService(tags Store[model.Tag]) *TagService {
	return &TagService{tags: tags}
}

// List returns a page of tags
func (s *TagService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Tag], error) {
	return listPage(ctx, s.tags, q)
}

// Get returns one tag
func (s *TagService) Get(ctx context.Context, id string) (*model.Tag, error) {
	return getOr(ctx, s.tags, id, ErrTagNotFound)
}

// Create creates a tag. The slug is derived from the name when omitted.
func (s *TagService) Create(ctx context.Context, req *model.CreateTagRequest) (*model.Tag, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	slug := req.Slug
	if slug == "" {
		slug = model.Slugify(req.Name)
	}
	category := req.Category
	if category == "" {
		category = model.TagCategoryGeneral
	}

	tag, err := s.tags.Create(ctx, &model.Tag{
		Name:     req.Name,
		Slug:     slug,
		Category: category,
		Color:    req.Color,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrTagSlugTaken
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// Update edits a tag
func (s *TagService) Update(ctx context.Context, id string, req *model.UpdateTagRequest) (*model.Tag, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "name", req.Name)
	patch = repository.SetIf(patch, "slug", req.Slug)
	patch = repository.SetIf(patch, "category", req.Category)
	if req.Color != nil {
		if *req.Color == "" {
			patch = patch.Set("color", nil)
		} else {
			patch = patch.Set("color", *req.Color)
		}
	}
	if patch.Len() == 0 {
		return s.Get(ctx, id)
	}

	tag, err := s.tags.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrTagSlugTaken
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// Delete removes a tag from every venue, post and recipe, then deletes it
func (s *TagService) Delete(ctx context.Context, id string) error {
	deleted, err := s.tags.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if deleted == nil {
		return ErrTagNotFound
	}
	return nil
}
