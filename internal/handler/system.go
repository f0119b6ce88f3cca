package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/storage"
)

// Pinger reports whether the table store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health returns a handler for GET /health. It answers 503 when the
// database does not respond within two seconds.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok", "database": "ok"}
		code := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			slog.Warn("health check failed", slog.String("error", err.Error()))
			status["status"] = "degraded"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}

		WriteJSON(w, code, status)
	}
}

// DashboardService builds the landing summary
type DashboardService interface {
	Summary(ctx context.Context) (*model.Dashboard, error)
}

// Dashboard returns a handler for GET /v1/dashboard
func Dashboard(dashboard DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := dashboard.Summary(r.Context())
		if err != nil {
			WriteServiceError(w, err, "dashboard")
			return
		}
		WriteData(w, http.StatusOK, summary, nil)
	}
}

// ObjectOpener opens stored objects for reading
type ObjectOpener interface {
	Open(bucket, key string) (*os.File, *storage.Object, error)
}

// ServeStorage returns a handler for GET /storage/{bucket}/{key...}.
// Objects are public; ranges and conditional requests are honoured.
func ServeStorage(store ObjectOpener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, obj, err := store.Open(r.PathValue("bucket"), r.PathValue("key"))
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound),
				errors.Is(err, storage.ErrUnknownBucket),
				errors.Is(err, storage.ErrInvalidKey):
				WriteError(w, model.NewNotFoundError("Object"))
			default:
				WriteServiceError(w, err, "serve object")
			}
			return
		}
		defer f.Close()

		if obj.ContentType != "" {
			w.Header().Set("Content-Type", obj.ContentType)
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeContent(w, r, obj.Key, obj.ModTime, f)
	}
}
