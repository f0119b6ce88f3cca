package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/service"
	"github.com/forgo/backoffice/internal/storage"
)

func TestMapServiceError_Statuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrRefreshTokenRevoked, http.StatusUnauthorized},
		{service.ErrNotStaff, http.StatusForbidden},
		{service.ErrVenueNotFound, http.StatusNotFound},
		{service.ErrLedgerEntryNotFound, http.StatusNotFound},
		{service.ErrImageNotFound, http.StatusNotFound},
		{storage.ErrNotFound, http.StatusNotFound},
		{service.ErrEmailAlreadyExists, http.StatusConflict},
		{service.ErrTagSlugTaken, http.StatusConflict},
		{service.ErrManagerProfileExists, http.StatusConflict},
		{fmt.Errorf("create tag: %w", database.ErrDuplicate), http.StatusConflict},
		{service.ErrSelfDemotion, http.StatusUnprocessableEntity},
		{service.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: pending to completed", service.ErrInvalidStatusTransition), http.StatusUnprocessableEntity},
		{&storage.TooLargeError{Limit: 5}, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("upload: %w", &storage.UnsupportedTypeError{ContentType: "application/pdf"}), http.StatusUnsupportedMediaType},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()
			problem := MapServiceError(tt.err)
			require.NotNil(t, problem)
			assert.Equal(t, tt.want, problem.Status)
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, MapServiceError(nil))
}

func TestMapServiceError_ProblemPassesThrough(t *testing.T) {
	t.Parallel()

	original := model.NewValidationError([]model.FieldError{{Field: "tag_ids", Message: "unknown tag tag:x"}})
	problem := MapServiceError(fmt.Errorf("create venue: %w", original))

	assert.Same(t, original, problem)
}

func TestMapServiceError_InvalidFilterNamesField(t *testing.T) {
	t.Parallel()

	problem := MapServiceError(fmt.Errorf("%w: unknown field \"secret\"", filter.ErrInvalidFilter))

	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "filter", problem.Errors[0].Field)
	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
}

func TestMapServiceErrorWithContext_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	problem := MapServiceErrorWithContext(errors.New("dial tcp 10.0.0.5:8000: refused"), "list venues")

	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, "list venues: an unexpected error occurred", problem.Detail)
}

func TestMapServiceErrorWithContext_KeepsClientErrors(t *testing.T) {
	t.Parallel()

	problem := MapServiceErrorWithContext(service.ErrBlogSlugTaken, "create blogs")

	assert.Equal(t, http.StatusConflict, problem.Status)
	assert.Contains(t, problem.Detail, "slug")
}
