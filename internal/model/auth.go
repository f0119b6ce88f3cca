package model

import (
	"strings"
	"time"
)

// LoginRequest is a password sign-in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid
func (r *LoginRequest) Validate() []FieldError {
	var errors []FieldError

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		errors = append(errors, FieldError{Field: "password", Message: "password is required"})
	}

	return errors
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks if the refresh request is valid
func (r *RefreshRequest) Validate() []FieldError {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return []FieldError{{Field: "refresh_token", Message: "refresh_token is required"}}
	}
	return nil
}

// TokenPair is returned on sign-in and refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// AuthResponse is the body of a successful sign-in or refresh
type AuthResponse struct {
	User  *User     `json:"user"`
	Token TokenPair `json:"token"`
}

// Session is the identity a signed-in client caches
type Session struct {
	User *User    `json:"user"`
	Role UserRole `json:"role"`
}

// RefreshToken is a stored refresh token; only its hash is persisted
type RefreshToken struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresOn time.Time  `json:"expires_on"`
	CreatedOn time.Time  `json:"created_on"`
	RevokedOn *time.Time `json:"revoked_on,omitempty"`
}

// IsActive reports whether the token can still be exchanged
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedOn == nil && now.Before(t.ExpiresOn)
}

// AuthUser is the authenticated caller, taken from access token claims
type AuthUser struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}
