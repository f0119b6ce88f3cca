package model

import "time"

// RedeemItem is a reward that can be bought with drink dollars
type RedeemItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Cost        int64     `json:"cost"`            // drink dollars, in cents
	Stock       *int      `json:"stock,omitempty"` // nil means unlimited
	VenueID     string    `json:"venue_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	ImageURL    string    `json:"image_url,omitempty"`
	ImagePath   string    `json:"image_path,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

const (
	MaxRedeemItemNameLength = 120
	MaxRedeemItemDescLength = 1000
)

// CreateRedeemItemRequest represents a request to create a redeem item
type CreateRedeemItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Cost        int64  `json:"cost"`
	Stock       *int   `json:"stock,omitempty"`
	VenueID     string `json:"venue_id,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateRedeemItemRequest) Validate() []FieldError {
	var errors []FieldError

	errors = required(errors, "name", r.Name)
	errors = maxLen(errors, "name", r.Name, MaxRedeemItemNameLength)
	errors = maxLen(errors, "description", r.Description, MaxRedeemItemDescLength)
	if r.Cost <= 0 {
		errors = append(errors, FieldError{Field: "cost", Message: "cost must be greater than 0"})
	}
	if r.Stock != nil && *r.Stock < 0 {
		errors = append(errors, FieldError{Field: "stock", Message: "stock cannot be negative"})
	}
	if r.VenueID != "" && !IsRecordID(r.VenueID, "venue") {
		errors = append(errors, FieldError{Field: "venue_id", Message: "venue_id must be a venue id"})
	}

	return errors
}

// UpdateRedeemItemRequest represents a request to update a redeem item.
// ClearStock switches the item back to unlimited stock.
type UpdateRedeemItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Cost        *int64  `json:"cost,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	ClearStock  bool    `json:"clear_stock,omitempty"`
	VenueID     *string `json:"venue_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateRedeemItemRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil {
		if *r.Name == "" {
			errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
		}
		errors = maxLen(errors, "name", *r.Name, MaxRedeemItemNameLength)
	}
	if r.Description != nil {
		errors = maxLen(errors, "description", *r.Description, MaxRedeemItemDescLength)
	}
	if r.Cost != nil && *r.Cost <= 0 {
		errors = append(errors, FieldError{Field: "cost", Message: "cost must be greater than 0"})
	}
	if r.Stock != nil && *r.Stock < 0 {
		errors = append(errors, FieldError{Field: "stock", Message: "stock cannot be negative"})
	}
	if r.Stock != nil && r.ClearStock {
		errors = append(errors, FieldError{Field: "clear_stock", Message: "clear_stock cannot be combined with stock"})
	}
	if r.VenueID != nil && *r.VenueID != "" && !IsRecordID(*r.VenueID, "venue") {
		errors = append(errors, FieldError{Field: "venue_id", Message: "venue_id must be a venue id"})
	}

	return errors
}
