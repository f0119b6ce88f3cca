package model

import "time"

// Language is a locale offered to app users
type Language struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"` // canonical BCP 47 tag
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	IsActive   bool      `json:"is_active"`
	SortOrder  int       `json:"sort_order"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

const MaxLanguageNameLength = 80

// CreateLanguageRequest represents a request to add a language. Name and
// native name default to the display names for the code.
type CreateLanguageRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name,omitempty"`
	NativeName string `json:"native_name,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
	SortOrder  *int   `json:"sort_order,omitempty"`
}

// Validate checks if the create request is valid. Tag syntax is checked by
// the service when it canonicalises the code.
func (r *CreateLanguageRequest) Validate() []FieldError {
	var errors []FieldError

	errors = required(errors, "code", r.Code)
	errors = maxLen(errors, "name", r.Name, MaxLanguageNameLength)
	errors = maxLen(errors, "native_name", r.NativeName, MaxLanguageNameLength)
	if r.SortOrder != nil && *r.SortOrder < 0 {
		errors = append(errors, FieldError{Field: "sort_order", Message: "sort_order cannot be negative"})
	}

	return errors
}

// UpdateLanguageRequest represents a request to update a language
type UpdateLanguageRequest struct {
	Name       *string `json:"name,omitempty"`
	NativeName *string `json:"native_name,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	SortOrder  *int    `json:"sort_order,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateLanguageRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil {
		if *r.Name == "" {
			errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
		}
		errors = maxLen(errors, "name", *r.Name, MaxLanguageNameLength)
	}
	if r.NativeName != nil {
		if *r.NativeName == "" {
			errors = append(errors, FieldError{Field: "native_name", Message: "native_name cannot be empty"})
		}
		errors = maxLen(errors, "native_name", *r.NativeName, MaxLanguageNameLength)
	}
	if r.SortOrder != nil && *r.SortOrder < 0 {
		errors = append(errors, FieldError{Field: "sort_order", Message: "sort_order cannot be negative"})
	}

	return errors
}
