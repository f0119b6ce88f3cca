package model

import "time"

// ManagerProfile is the staff card of a manager account
type ManagerProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	VenueIDs    []string  `json:"venue_ids"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	AvatarPath  string    `json:"avatar_path,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

const (
	MaxDisplayNameLength = 100
	MaxBioLength         = 2000
	MaxPhoneLength       = 30
)

// CreateManagerProfileRequest represents a request to create a manager profile
type CreateManagerProfileRequest struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Phone       string   `json:"phone,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	VenueIDs    []string `json:"venue_ids,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateManagerProfileRequest) Validate() []FieldError {
	var errors []FieldError

	if r.UserID == "" {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id is required"})
	} else if !IsRecordID(r.UserID, "user") {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id must be a user id"})
	}
	errors = required(errors, "display_name", r.DisplayName)
	errors = maxLen(errors, "display_name", r.DisplayName, MaxDisplayNameLength)
	errors = maxLen(errors, "phone", r.Phone, MaxPhoneLength)
	errors = maxLen(errors, "bio", r.Bio, MaxBioLength)
	errors = recordIDs(errors, "venue_ids", r.VenueIDs, "venue")

	return errors
}

// UpdateManagerProfileRequest represents a request to update a manager profile
type UpdateManagerProfileRequest struct {
	DisplayName *string   `json:"display_name,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	VenueIDs    *[]string `json:"venue_ids,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateManagerProfileRequest) Validate() []FieldError {
	var errors []FieldError

	if r.DisplayName != nil {
		if *r.DisplayName == "" {
			errors = append(errors, FieldError{Field: "display_name", Message: "display_name cannot be empty"})
		}
		errors = maxLen(errors, "display_name", *r.DisplayName, MaxDisplayNameLength)
	}
	if r.Phone != nil {
		errors = maxLen(errors, "phone", *r.Phone, MaxPhoneLength)
	}
	if r.Bio != nil {
		errors = maxLen(errors, "bio", *r.Bio, MaxBioLength)
	}
	if r.VenueIDs != nil {
		errors = recordIDs(errors, "venue_ids", *r.VenueIDs, "venue")
	}

	return errors
}
