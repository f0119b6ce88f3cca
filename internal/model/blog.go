package model

import "time"

// BlogStatus is the publication state of a post
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"
)

// IsValid returns true if the status is known
func (s BlogStatus) IsValid() bool {
	switch s {
	case BlogStatusDraft, BlogStatusPublished, BlogStatusArchived:
		return true
	default:
		return false
	}
}

// Blog is a news post shown in the app. Body is stored as given.
type Blog struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt,omitempty"`
	Body           string     `json:"body,omitempty"`
	TagIDs         []string   `json:"tag_ids"`
	Status         BlogStatus `json:"status"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	AuthorID       string     `json:"author_id,omitempty"`
	CoverImageURL  string     `json:"cover_image_url,omitempty"`
	CoverImagePath string     `json:"cover_image_path,omitempty"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
}

const (
	MaxBlogTitleLength   = 200
	MaxBlogExcerptLength = 500
	MaxBlogTags          = 20
)

// CreateBlogRequest represents a request to create a post
type CreateBlogRequest struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	TagIDs      []string   `json:"tag_ids,omitempty"`
	Status      BlogStatus `json:"status,omitempty"` // defaults to "draft"
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateBlogRequest) Validate() []FieldError {
	var errors []FieldError

	errors = required(errors, "title", r.Title)
	errors = maxLen(errors, "title", r.Title, MaxBlogTitleLength)
	errors = maxLen(errors, "excerpt", r.Excerpt, MaxBlogExcerptLength)
	if r.Slug != "" && !IsValidSlug(r.Slug) {
		errors = append(errors, FieldError{Field: "slug", Message: "slug must be lowercase letters, digits and single hyphens"})
	}
	if r.Title != "" && r.Slug == "" && Slugify(r.Title) == "" {
		errors = append(errors, FieldError{Field: "slug", Message: "slug cannot be derived from title"})
	}
	errors = validateBlogTags(errors, r.TagIDs)
	if r.Status != "" && !r.Status.IsValid() {
		errors = append(errors, FieldError{Field: "status", Message: "status must be 'draft', 'published' or 'archived'"})
	}

	return errors
}

// UpdateBlogRequest represents a request to update a post
type UpdateBlogRequest struct {
	Title       *string     `json:"title,omitempty"`
	Slug        *string     `json:"slug,omitempty"`
	Excerpt     *string     `json:"excerpt,omitempty"`
	Body        *string     `json:"body,omitempty"`
	TagIDs      *[]string   `json:"tag_ids,omitempty"`
	Status      *BlogStatus `json:"status,omitempty"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateBlogRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title != nil {
		if *r.Title == "" {
			errors = append(errors, FieldError{Field: "title", Message: "title cannot be empty"})
		}
		errors = maxLen(errors, "title", *r.Title, MaxBlogTitleLength)
	}
	if r.Slug != nil && !IsValidSlug(*r.Slug) {
		errors = append(errors, FieldError{Field: "slug", Message: "slug must be lowercase letters, digits and single hyphens"})
	}
	if r.Excerpt != nil {
		errors = maxLen(errors, "excerpt", *r.Excerpt, MaxBlogExcerptLength)
	}
	if r.TagIDs != nil {
		errors = validateBlogTags(errors, *r.TagIDs)
	}
	if r.Status != nil && !r.Status.IsValid() {
		errors = append(errors, FieldError{Field: "status", Message: "status must be 'draft', 'published' or 'archived'"})
	}

	return errors
}

func validateBlogTags(errors []FieldError, ids []string) []FieldError {
	if len(ids) > MaxBlogTags {
		errors = append(errors, FieldError{Field: "tag_ids", Message: "a post can have at most 20 tags"})
	}
	return recordIDs(errors, "tag_ids", ids, "tag")
}
