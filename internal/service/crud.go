package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
	"github.com/forgo/backoffice/internal/storage"
)

// Store is the table access every managed entity goes through
type Store[T any] interface {
	List(ctx context.Context, q model.ListQuery, extra ...filter.Condition) ([]T, int, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id string, patch repository.Patch) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
	Exists(ctx context.Context, ids ...string) (bool, error)
	Count(ctx context.Context, cond filter.Condition) (int, error)
}

// Existence checks that referenced rows exist
type Existence interface {
	Exists(ctx context.Context, ids ...string) (bool, error)
}

// ObjectStore resolves buckets and removes stored objects
type ObjectStore interface {
	Bucket(name string) (storage.Bucket, error)
	RemovePath(ctx context.Context, objectPath string) error
}

// ImageUploader validates and stores an uploaded file
type ImageUploader interface {
	Upload(ctx context.Context, bucket storage.Bucket, ownerID string, r io.Reader) (*storage.Object, error)
}

// Images bundles the storage a service needs for one bucket
type Images struct {
	Store    ObjectStore
	Uploader ImageUploader
	Bucket   string
}

func (i Images) put(ctx context.Context, ownerID string, r io.Reader) (*storage.Object, error) {
	bucket, err := i.Store.Bucket(i.Bucket)
	if err != nil {
		return nil, err
	}
	return i.Uploader.Upload(ctx, bucket, ownerID, r)
}

// discard removes an object and only logs failures; the row no longer
// points at it either way.
func (i Images) discard(ctx context.Context, objectPath string) {
	if objectPath == "" || i.Store == nil {
		return
	}
	if err := i.Store.RemovePath(ctx, objectPath); err != nil {
		slog.Warn("failed to remove stored object",
			slog.String("path", objectPath),
			slog.String("error", err.Error()),
		)
	}
}

// replaceImage stores a new object, points the row at it, then drops the
// object it replaced. The new object is removed again if the row update fails.
func replaceImage[T any](ctx context.Context, img Images, store Store[T], id, urlCol, pathCol, previous string, r io.Reader, notFound error) (*T, error) {
	obj, err := img.put(ctx, id, r)
	if err != nil {
		return nil, err
	}

	updated, err := store.Update(ctx, id, repository.NewPatch().Set(urlCol, obj.URL).Set(pathCol, obj.Path()))
	if err != nil {
		img.discard(ctx, obj.Path())
		return nil, err
	}
	if updated == nil {
		img.discard(ctx, obj.Path())
		return nil, notFound
	}

	img.discard(ctx, previous)
	return updated, nil
}

// clearImage unsets the image columns and drops the stored object
func clearImage[T any](ctx context.Context, img Images, store Store[T], id, urlCol, pathCol, previous string, notFound error) (*T, error) {
	if previous == "" {
		return nil, ErrImageNotFound
	}
	updated, err := store.Update(ctx, id, repository.NewPatch().Set(urlCol, nil).Set(pathCol, nil))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound
	}
	img.discard(ctx, previous)
	return updated, nil
}

// listPage runs a list query and wraps the rows in a page
func listPage[T any](ctx context.Context, store Store[T], q model.ListQuery, extra ...filter.Condition) (*model.Page[T], error) {
	q = q.Normalize()
	items, total, err := store.List(ctx, q, extra...)
	if err != nil {
		return nil, err
	}
	return model.NewPage(items, total, q), nil
}

// getOr fetches a row and maps a missing row onto notFound
func getOr[T any](ctx context.Context, store Store[T], id string, notFound error) (*T, error) {
	row, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, notFound
	}
	return row, nil
}

// checkRefs appends a field error when any referenced id is missing
func checkRefs(ctx context.Context, errs []model.FieldError, refs Existence, field, message string, ids ...string) ([]model.FieldError, error) {
	if len(ids) == 0 {
		return errs, nil
	}
	ok, err := refs.Exists(ctx, ids...)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs = append(errs, model.FieldError{Field: field, Message: message})
	}
	return errs, nil
}

func validationError(errs []model.FieldError) error {
	if len(errs) > 0 {
		return model.NewValidationError(errs)
	}
	return nil
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
