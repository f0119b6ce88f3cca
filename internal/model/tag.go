package model

import "time"

// TagCategory groups tags by what they label
type TagCategory string

const (
	TagCategoryVenue   TagCategory = "venue"
	TagCategoryBlog    TagCategory = "blog"
	TagCategoryRecipe  TagCategory = "recipe"
	TagCategoryGeneral TagCategory = "general"
)

// IsValid returns true if the category is known
func (c TagCategory) IsValid() bool {
	switch c {
	case TagCategoryVenue, TagCategoryBlog, TagCategoryRecipe, TagCategoryGeneral:
		return true
	default:
		return false
	}
}

// Tag is a content label shared by venues, blogs and recipes
type Tag struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Category  TagCategory `json:"category"`
	Color     string      `json:"color,omitempty"`
	CreatedOn time.Time   `json:"created_on"`
	UpdatedOn time.Time   `json:"updated_on"`
}

const (
	MaxTagNameLength = 50
	MaxSlugLength    = 80
)

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Name     string      `json:"name"`
	Slug     string      `json:"slug,omitempty"`     // derived from name when empty
	Category TagCategory `json:"category,omitempty"` // defaults to "general"
	Color    string      `json:"color,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateTagRequest) Validate() []FieldError {
	var errors []FieldError

	errors = required(errors, "name", r.Name)
	errors = maxLen(errors, "name", r.Name, MaxTagNameLength)
	if r.Slug != "" && !IsValidSlug(r.Slug) {
		errors = append(errors, FieldError{Field: "slug", Message: "slug must be lowercase letters, digits and single hyphens"})
	}
	if r.Name != "" && r.Slug == "" && Slugify(r.Name) == "" {
		errors = append(errors, FieldError{Field: "slug", Message: "slug cannot be derived from name"})
	}
	if r.Category != "" && !r.Category.IsValid() {
		errors = append(errors, FieldError{Field: "category", Message: "category must be 'venue', 'blog', 'recipe' or 'general'"})
	}
	if r.Color != "" && !IsValidHexColor(r.Color) {
		errors = append(errors, FieldError{Field: "color", Message: "color must be #RRGGBB"})
	}

	return errors
}

// UpdateTagRequest represents a request to update a tag
type UpdateTagRequest struct {
	Name     *string      `json:"name,omitempty"`
	Slug     *string      `json:"slug,omitempty"`
	Category *TagCategory `json:"category,omitempty"`
	Color    *string      `json:"color,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateTagRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil {
		if *r.Name == "" {
			errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
		}
		errors = maxLen(errors, "name", *r.Name, MaxTagNameLength)
	}
	if r.Slug != nil && !IsValidSlug(*r.Slug) {
		errors = append(errors, FieldError{Field: "slug", Message: "slug must be lowercase letters, digits and single hyphens"})
	}
	if r.Category != nil && !r.Category.IsValid() {
		errors = append(errors, FieldError{Field: "category", Message: "category must be 'venue', 'blog', 'recipe' or 'general'"})
	}
	if r.Color != nil && *r.Color != "" && !IsValidHexColor(*r.Color) {
		errors = append(errors, FieldError{Field: "color", Message: "color must be #RRGGBB"})
	}

	return errors
}
