package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// BlogService manages news posts
type BlogService struct {
	blogs  Store[model.Blog]
	tags   Existence
	covers Images
	now    func() time.Time
}

// NewBlogService creates a new blog service
func NewBlogService(blogs Store[model.Blog], tags Existence, covers Images) *BlogService {
	return &BlogService{
		blogs:  blogs,
		tags:   tags,
		covers: covers,
		now:    time.Now,
	}
}

// List returns a page of posts
func (s *BlogService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Blog], error) {
	return listPage(ctx, s.blogs, q)
}

// Get returns one post
func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	return getOr(ctx, s.blogs, id, ErrBlogNotFound)
}

// Create writes a post authored by authorID
func (s *BlogService) Create(ctx context.Context, authorID string, req *model.CreateBlogRequest) (*model.Blog, error) {
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

	slug := req.Slug
	if slug == "" {
		slug = model.Slugify(req.Title)
	}
	status := req.Status
	if status == "" {
		status = model.BlogStatusDraft
	}
	publishedAt := req.PublishedAt
	if status == model.BlogStatusPublished && publishedAt == nil {
		now := s.now().UTC()
		publishedAt = &now
	}

	blog, err := s.blogs.Create(ctx, &model.Blog{
		Title:       req.Title,
		Slug:        slug,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		TagIDs:      orEmpty(req.TagIDs),
		Status:      status,
		PublishedAt: publishedAt,
		AuthorID:    authorID,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrBlogSlugTaken
		}
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return blog, nil
}

// Update edits a post. Publishing stamps published_at unless one is set.
func (s *BlogService) Update(ctx context.Context, id string, req *model.UpdateBlogRequest) (*model.Blog, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "title", req.Title)
	patch = repository.SetIf(patch, "slug", req.Slug)
	patch = repository.SetIf(patch, "excerpt", req.Excerpt)
	patch = repository.SetIf(patch, "body", req.Body)
	patch = repository.SetIf(patch, "status", req.Status)
	if req.TagIDs != nil {
		errs, err := checkRefs(ctx, nil, s.tags, "tag_ids", "tag_ids contains an unknown tag", *req.TagIDs...)
		if err != nil {
			return nil, err
		}
		if err := validationError(errs); err != nil {
			return nil, err
		}
		patch = patch.Set("tag_ids", orEmpty(*req.TagIDs))
	}
	switch {
	case req.PublishedAt != nil:
		patch = patch.Set("published_at", req.PublishedAt.UTC())
	case req.Status != nil && *req.Status == model.BlogStatusPublished && current.PublishedAt == nil:
		patch = patch.Set("published_at", s.now().UTC())
	}
	if patch.Len() == 0 {
		return current, nil
	}

	blog, err := s.blogs.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrBlogSlugTaken
		}
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

// Delete removes a post and its cover image
func (s *BlogService) Delete(ctx context.Context, id string) error {
	deleted, err := s.blogs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if deleted == nil {
		return ErrBlogNotFound
	}
	s.covers.discard(ctx, deleted.CoverImagePath)
	return nil
}

// SetCover uploads a new cover image
func (s *BlogService) SetCover(ctx context.Context, id string, r io.Reader) (*model.Blog, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return replaceImage(ctx, s.covers, s.blogs, id, "cover_image_url", "cover_image_path", current.CoverImagePath, r, ErrBlogNotFound)
}

// RemoveCover clears the cover image
func (s *BlogService) RemoveCover(ctx context.Context, id string) (*model.Blog, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return clearImage(ctx, s.covers, s.blogs, id, "cover_image_url", "cover_image_path", current.CoverImagePath, ErrBlogNotFound)
}
