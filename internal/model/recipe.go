package model

import (
	"strings"
	"time"
)

// Recipe is a drink recipe published in the app
type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	TagIDs       []string  `json:"tag_ids"`
	VenueID      string    `json:"venue_id,omitempty"`
	PrepMinutes  int       `json:"prep_minutes"`
	IsActive     bool      `json:"is_active"`
	ImageURL     string    `json:"image_url,omitempty"`
	ImagePath    string    `json:"image_path,omitempty"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

const (
	MaxRecipeNameLength = 120
	MaxRecipeDescLength = 2000
	MaxRecipeSteps      = 50
	MaxRecipeStepLength = 500
)

// CreateRecipeRequest represents a request to create a recipe
type CreateRecipeRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	TagIDs       []string `json:"tag_ids,omitempty"`
	VenueID      string   `json:"venue_id,omitempty"`
	PrepMinutes  int      `json:"prep_minutes,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateRecipeRequest) Validate() []FieldError {
	var errors []FieldError

	errors = required(errors, "name", r.Name)
	errors = maxLen(errors, "name", r.Name, MaxRecipeNameLength)
	errors = maxLen(errors, "description", r.Description, MaxRecipeDescLength)
	errors = validateSteps(errors, "ingredients", r.Ingredients)
	errors = validateSteps(errors, "instructions", r.Instructions)
	errors = recordIDs(errors, "tag_ids", r.TagIDs, "tag")
	if r.VenueID != "" && !IsRecordID(r.VenueID, "venue") {
		errors = append(errors, FieldError{Field: "venue_id", Message: "venue_id must be a venue id"})
	}
	if r.PrepMinutes < 0 {
		errors = append(errors, FieldError{Field: "prep_minutes", Message: "prep_minutes cannot be negative"})
	}

	return errors
}

// UpdateRecipeRequest represents a request to update a recipe
type UpdateRecipeRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Ingredients  *[]string `json:"ingredients,omitempty"`
	Instructions *[]string `json:"instructions,omitempty"`
	TagIDs       *[]string `json:"tag_ids,omitempty"`
	VenueID      *string   `json:"venue_id,omitempty"`
	PrepMinutes  *int      `json:"prep_minutes,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateRecipeRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil {
		if *r.Name == "" {
			errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
		}
		errors = maxLen(errors, "name", *r.Name, MaxRecipeNameLength)
	}
	if r.Description != nil {
		errors = maxLen(errors, "description", *r.Description, MaxRecipeDescLength)
	}
	if r.Ingredients != nil {
		errors = validateSteps(errors, "ingredients", *r.Ingredients)
	}
	if r.Instructions != nil {
		errors = validateSteps(errors, "instructions", *r.Instructions)
	}
	if r.TagIDs != nil {
		errors = recordIDs(errors, "tag_ids", *r.TagIDs, "tag")
	}
	if r.VenueID != nil && *r.VenueID != "" && !IsRecordID(*r.VenueID, "venue") {
		errors = append(errors, FieldError{Field: "venue_id", Message: "venue_id must be a venue id"})
	}
	if r.PrepMinutes != nil && *r.PrepMinutes < 0 {
		errors = append(errors, FieldError{Field: "prep_minutes", Message: "prep_minutes cannot be negative"})
	}

	return errors
}

func validateSteps(errors []FieldError, field string, steps []string) []FieldError {
	if len(steps) == 0 {
		return append(errors, FieldError{Field: field, Message: field + " needs at least one entry"})
	}
	if len(steps) > MaxRecipeSteps {
		return append(errors, FieldError{Field: field, Message: field + " can have at most 50 entries"})
	}
	for _, s := range steps {
		if strings.TrimSpace(s) == "" {
			return append(errors, FieldError{Field: field, Message: field + " cannot contain empty entries"})
		}
		if runeLen(s) > MaxRecipeStepLength {
			return append(errors, FieldError{Field: field, Message: field + " entries must be 500 characters or less"})
		}
	}
	return errors
}
