package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotStaff           = errors.New("account has no back-office access")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== User Management Errors =====
var (
	ErrSelfDemotion = errors.New("cannot remove your own admin role")
	ErrSelfDeletion = errors.New("cannot delete your own account")
)

// ===== Venue and Booking Errors =====
var (
	ErrVenueNotFound           = errors.New("venue not found")
	ErrVenueHasOpenBookings    = errors.New("venue has pending or confirmed bookings")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidStatusTransition = errors.New("booking status change not allowed")
)

// ===== Content Errors =====
var (
	ErrTagNotFound            = errors.New("tag not found")
	ErrTagSlugTaken           = errors.New("a tag with this slug already exists")
	ErrLanguageNotFound       = errors.New("language not found")
	ErrLanguageExists         = errors.New("language code already exists")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrBlogNotFound           = errors.New("blog not found")
	ErrBlogSlugTaken          = errors.New("a blog with this slug already exists")
	ErrRecipeNotFound         = errors.New("recipe not found")
	ErrManagerProfileNotFound = errors.New("manager profile not found")
	ErrManagerProfileExists   = errors.New("user already has a manager profile")
	ErrUserNotStaff           = errors.New("user must be a manager or admin")
)

// ===== Drink Dollar Errors =====
var (
	ErrRedeemItemNotFound  = errors.New("redeem item not found")
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")
	ErrInsufficientBalance = errors.New("entry would overdraw the balance")
)

// ===== Storage Errors =====
var (
	ErrImageNotFound = errors.New("no image is attached")
)
