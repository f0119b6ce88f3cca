package model

import (
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUser    UserRole = "user"    // Customer account, no back-office access
	UserRoleManager UserRole = "manager" // Venue staff
	UserRoleAdmin   UserRole = "admin"   // Full back-office access
)

// IsValid returns true if the role is a known role
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleManager, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff returns true for roles allowed to sign in to the back office
func (r UserRole) IsStaff() bool {
	return r == UserRoleManager || r == UserRoleAdmin
}

// User represents a user account
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Username      *string    `json:"username,omitempty"`
	Hash          *string    `json:"-"` // Never expose password hash
	Firstname     *string    `json:"firstname,omitempty"`
	Lastname      *string    `json:"lastname,omitempty"`
	Role          UserRole   `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on"`
	LoginOn       *time.Time `json:"login_on,omitempty"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsStaff returns true if the user may use the back office
func (u *User) IsStaff() bool {
	return u.Role.IsStaff()
}

// DisplayName returns the best human-readable name for the user
func (u *User) DisplayName() string {
	var parts []string
	if u.Firstname != nil && *u.Firstname != "" {
		parts = append(parts, *u.Firstname)
	}
	if u.Lastname != nil && *u.Lastname != "" {
		parts = append(parts, *u.Lastname)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}

// UserDetail is the admin view of one account
type UserDetail struct {
	User           *User           `json:"user"`
	ManagerProfile *ManagerProfile `json:"manager_profile,omitempty"`
	Balance        int64           `json:"drink_dollar_balance"`
}

// Field limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxEmailLength    = 254
	MaxNameLength     = 100
	MaxUsernameLength = 50
)

// CreateUserRequest represents an admin request to create an account
type CreateUserRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Username  *string  `json:"username,omitempty"`
	Firstname *string  `json:"firstname,omitempty"`
	Lastname  *string  `json:"lastname,omitempty"`
	Role      UserRole `json:"role,omitempty"` // defaults to "user"
}

// Validate checks if the create request is valid
func (r *CreateUserRequest) Validate() []FieldError {
	var errors []FieldError

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !IsValidEmail(r.Email) {
		errors = append(errors, FieldError{Field: "email", Message: "email is not a valid address"})
	}
	errors = validatePassword(errors, r.Password)
	errors = validateNames(errors, r.Username, r.Firstname, r.Lastname)
	if r.Role != "" && !r.Role.IsValid() {
		errors = append(errors, FieldError{Field: "role", Message: "role must be 'user', 'manager' or 'admin'"})
	}

	return errors
}

// UpdateUserRequest represents an admin edit of account details
type UpdateUserRequest struct {
	Username      *string `json:"username,omitempty"`
	Firstname     *string `json:"firstname,omitempty"`
	Lastname      *string `json:"lastname,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateUserRequest) Validate() []FieldError {
	return validateNames(nil, r.Username, r.Firstname, r.Lastname)
}

// IsEmpty reports whether the request changes nothing
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Username == nil && r.Firstname == nil && r.Lastname == nil && r.EmailVerified == nil
}

// UpdateUserRoleRequest changes an account's role
type UpdateUserRoleRequest struct {
	Role UserRole `json:"role"`
}

// Validate checks if the role request is valid
func (r *UpdateUserRoleRequest) Validate() []FieldError {
	if !r.Role.IsValid() {
		return []FieldError{{Field: "role", Message: "role must be 'user', 'manager' or 'admin'"}}
	}
	return nil
}

func validatePassword(errors []FieldError, password string) []FieldError {
	switch {
	case password == "":
		return append(errors, FieldError{Field: "password", Message: "password is required"})
	case len(password) < MinPasswordLength:
		return append(errors, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	case len(password) > MaxPasswordLength:
		return append(errors, FieldError{Field: "password", Message: "password must be 128 characters or less"})
	}
	return errors
}

func validateNames(errors []FieldError, username, firstname, lastname *string) []FieldError {
	if username != nil {
		if *username == "" {
			errors = append(errors, FieldError{Field: "username", Message: "username cannot be empty"})
		} else {
			errors = maxLen(errors, "username", *username, MaxUsernameLength)
		}
	}
	if firstname != nil {
		errors = maxLen(errors, "firstname", *firstname, MaxNameLength)
	}
	if lastname != nil {
		errors = maxLen(errors, "lastname", *lastname, MaxNameLength)
	}
	return errors
}
