package model

import "time"

// VenueStatus controls whether a venue is shown to customers
type VenueStatus string

const (
	VenueStatusActive   VenueStatus = "active"
	VenueStatusInactive VenueStatus = "inactive"
	VenueStatusDraft    VenueStatus = "draft"
)

// IsValid returns true if the status is known
func (s VenueStatus) IsValid() bool {
	switch s {
	case VenueStatusActive, VenueStatusInactive, VenueStatusDraft:
		return true
	default:
		return false
	}
}

// Venue is a bar or restaurant managed from the back office
type Venue struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Address     string      `json:"address"`
	City        string      `json:"city,omitempty"`
	Country     string      `json:"country,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email,omitempty"`
	Website     string      `json:"website,omitempty"`
	TagIDs      []string    `json:"tag_ids"`
	Status      VenueStatus `json:"status"`
	ImageURL    string      `json:"image_url,omitempty"`
	ImagePath   string      `json:"image_path,omitempty"`
	CreatedOn   time.Time   `json:"created_on"`
	UpdatedOn   time.Time   `json:"updated_on"`
}

// Venue field limits
const (
	MaxVenueNameLength    = 120
	MaxVenueDescLength    = 2000
	MaxVenueAddressLength = 300
	MaxVenueTags          = 20
)

// CreateVenueRequest represents a request to create a venue
type CreateVenueRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Address     string      `json:"address"`
	City        string      `json:"city,omitempty"`
	Country     string      `json:"country,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email,omitempty"`
	Website     string      `json:"website,omitempty"`
	TagIDs      []string    `json:"tag_ids,omitempty"`
	Status      VenueStatus `json:"status,omitempty"` // defaults to "draft"
}

// Validate checks if the create request is valid
func (r *CreateVenueRequest) Validate() []FieldError {
	var errors []FieldError

	errors = required(errors, "name", r.Name)
	errors = maxLen(errors, "name", r.Name, MaxVenueNameLength)
	errors = required(errors, "address", r.Address)
	errors = maxLen(errors, "address", r.Address, MaxVenueAddressLength)
	errors = maxLen(errors, "description", r.Description, MaxVenueDescLength)
	errors = validateCoordinates(errors, r.Latitude, r.Longitude)
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errors = append(errors, FieldError{Field: "longitude", Message: "latitude and longitude must be given together"})
	}
	errors = validateContact(errors, r.Email, r.Website)
	errors = validateVenueTags(errors, r.TagIDs)
	if r.Status != "" && !r.Status.IsValid() {
		errors = append(errors, FieldError{Field: "status", Message: "status must be 'active', 'inactive' or 'draft'"})
	}

	return errors
}

// UpdateVenueRequest represents a request to update a venue.
// ClearCoordinates removes both latitude and longitude.
type UpdateVenueRequest struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Address     *string      `json:"address,omitempty"`
	City        *string      `json:"city,omitempty"`
	Country     *string      `json:"country,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Website     *string      `json:"website,omitempty"`
	TagIDs      *[]string    `json:"tag_ids,omitempty"`
	Status      *VenueStatus `json:"status,omitempty"`

	ClearCoordinates bool `json:"clear_coordinates,omitempty"`
}

// Validate checks if the update request is valid. Whether coordinates end
// up paired is checked against the stored venue by the service.
func (r *UpdateVenueRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil {
		if *r.Name == "" {
			errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
		}
		errors = maxLen(errors, "name", *r.Name, MaxVenueNameLength)
	}
	if r.Address != nil {
		if *r.Address == "" {
			errors = append(errors, FieldError{Field: "address", Message: "address cannot be empty"})
		}
		errors = maxLen(errors, "address", *r.Address, MaxVenueAddressLength)
	}
	if r.Description != nil {
		errors = maxLen(errors, "description", *r.Description, MaxVenueDescLength)
	}
	errors = validateCoordinates(errors, r.Latitude, r.Longitude)
	if r.ClearCoordinates && (r.Latitude != nil || r.Longitude != nil) {
		errors = append(errors, FieldError{Field: "clear_coordinates", Message: "clear_coordinates cannot be combined with latitude or longitude"})
	}
	var email, website string
	if r.Email != nil {
		email = *r.Email
	}
	if r.Website != nil {
		website = *r.Website
	}
	errors = validateContact(errors, email, website)
	if r.TagIDs != nil {
		errors = validateVenueTags(errors, *r.TagIDs)
	}
	if r.Status != nil && !r.Status.IsValid() {
		errors = append(errors, FieldError{Field: "status", Message: "status must be 'active', 'inactive' or 'draft'"})
	}

	return errors
}

func validateCoordinates(errors []FieldError, lat, lng *float64) []FieldError {
	if lat != nil && (*lat < -90 || *lat > 90) {
		errors = append(errors, FieldError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		errors = append(errors, FieldError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	return errors
}

func validateContact(errors []FieldError, email, website string) []FieldError {
	if email != "" && !IsValidEmail(email) {
		errors = append(errors, FieldError{Field: "email", Message: "email is not a valid address"})
	}
	if website != "" && !IsValidWebURL(website) {
		errors = append(errors, FieldError{Field: "website", Message: "website must be an http or https URL"})
	}
	return errors
}

func validateVenueTags(errors []FieldError, ids []string) []FieldError {
	if len(ids) > MaxVenueTags {
		errors = append(errors, FieldError{Field: "tag_ids", Message: "a venue can have at most 20 tags"})
	}
	return recordIDs(errors, "tag_ids", ids, "tag")
}
