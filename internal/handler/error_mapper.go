package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/service"
	"github.com/forgo/backoffice/internal/storage"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Services return validation failures already shaped for the client
	var problem *model.ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	var tooLarge *storage.TooLargeError
	if errors.As(err, &tooLarge) {
		return model.NewPayloadTooLargeError(tooLarge.Limit)
	}
	var unsupported *storage.UnsupportedTypeError
	if errors.As(err, &unsupported) {
		return model.NewUnsupportedMediaTypeError(unsupported.ContentType)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotStaff):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User")
	case errors.Is(err, service.ErrVenueNotFound):
		return model.NewNotFoundError("Venue")
	case errors.Is(err, service.ErrBookingNotFound):
		return model.NewNotFoundError("Booking")
	case errors.Is(err, service.ErrTagNotFound):
		return model.NewNotFoundError("Tag")
	case errors.Is(err, service.ErrLanguageNotFound):
		return model.NewNotFoundError("Language")
	case errors.Is(err, service.ErrManagerProfileNotFound):
		return model.NewNotFoundError("Manager profile")
	case errors.Is(err, service.ErrQuestionNotFound):
		return model.NewNotFoundError("Question")
	case errors.Is(err, service.ErrBlogNotFound):
		return model.NewNotFoundError("Blog")
	case errors.Is(err, service.ErrRedeemItemNotFound):
		return model.NewNotFoundError("Redeem item")
	case errors.Is(err, service.ErrLedgerEntryNotFound):
		return model.NewNotFoundError("Ledger entry")
	case errors.Is(err, service.ErrRecipeNotFound):
		return model.NewNotFoundError("Recipe")
	case errors.Is(err, service.ErrImageNotFound):
		return model.NewNotFoundError("Image")
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrUnknownBucket):
		return model.NewNotFoundError("Object")
	case errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError("Record")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrTagSlugTaken),
		errors.Is(err, service.ErrLanguageExists),
		errors.Is(err, service.ErrBlogSlugTaken),
		errors.Is(err, service.ErrManagerProfileExists):
		return model.NewConflictError(err.Error())
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError("a record with the same unique value already exists")

	// ===== State Errors → 422 =====
	case errors.Is(err, service.ErrSelfDemotion),
		errors.Is(err, service.ErrSelfDeletion),
		errors.Is(err, service.ErrVenueHasOpenBookings),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrUserNotStaff):
		return model.NewInvalidStateError(err.Error())

	// ===== Bad Input → 422 / 400 =====
	case errors.Is(err, filter.ErrInvalidFilter):
		return model.NewValidationError([]model.FieldError{{Field: "filter", Message: err.Error()}})
	case errors.Is(err, storage.ErrInvalidKey):
		return model.NewBadRequestError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == http.StatusInternalServerError {
		slog.Error("unhandled service error",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
