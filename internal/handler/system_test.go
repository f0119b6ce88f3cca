package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/storage"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type dashboardFunc func(ctx context.Context) (*model.Dashboard, error)

func (f dashboardFunc) Summary(ctx context.Context) (*model.Dashboard, error) { return f(ctx) }

// ============================================================================
// Health Tests
// ============================================================================

func TestHealth_DatabaseUp(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Health(pingFunc(func(ctx context.Context) error { return nil }))(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestHealth_DatabaseDown(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Health(pingFunc(func(ctx context.Context) error { return errors.New("refused") }))(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"database":"unreachable"`)
}

// ============================================================================
// Dashboard Tests
// ============================================================================

func TestDashboard_WritesSummary(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Dashboard(dashboardFunc(func(ctx context.Context) (*model.Dashboard, error) {
		return &model.Dashboard{
			Counts:          map[string]int64{"venues": 4},
			PendingBookings: 2,
			RecentBookings:  []model.Booking{},
		}, nil
	}))(rr, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var d model.Dashboard
	parseData(t, rr.Body.Bytes(), &d)
	assert.Equal(t, int64(4), d.Counts["venues"])
	assert.Equal(t, int64(2), d.PendingBookings)
}

func TestDashboard_Failure(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Dashboard(dashboardFunc(func(ctx context.Context) (*model.Dashboard, error) {
		return nil, errors.New("boom")
	}))(rr, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// ============================================================================
// Storage Tests
// ============================================================================

func storageMux(t *testing.T) (*http.ServeMux, *storage.FileStore) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), "http://localhost:8080/storage")
	require.NoError(t, err)

	bucket, err := store.Bucket(storage.BucketVenues)
	require.NoError(t, err)
	_, err = bucket.Upload(context.Background(), "venue-1/photo.png", "image/png", strings.NewReader("\x89PNG fake"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /storage/{bucket}/{key...}", ServeStorage(store))
	return mux, store
}

func TestServeStorage_ServesObject(t *testing.T) {
	t.Parallel()
	mux, _ := storageMux(t)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/storage/venues/venue-1/photo.png", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG fake", rr.Body.String())
}

func TestServeStorage_Range(t *testing.T) {
	t.Parallel()
	mux, _ := storageMux(t)

	req := httptest.NewRequest(http.MethodGet, "/storage/venues/venue-1/photo.png", nil)
	req.Header.Set("Range", "bytes=0-3")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusPartialContent, rr.Code)
	assert.Equal(t, "\x89PNG", rr.Body.String())
}

func TestServeStorage_NotFound(t *testing.T) {
	t.Parallel()
	mux, _ := storageMux(t)

	for _, path := range []string{
		"/storage/venues/venue-1/missing.png",
		"/storage/secrets/venue-1/photo.png",
	} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}
