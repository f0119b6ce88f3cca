package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/forgo/backoffice/internal/model"
)

// ResourceService is the CRUD surface shared by most back-office entities
type ResourceService[T, C, U any] interface {
	List(ctx context.Context, q model.ListQuery) (*model.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req *C) (*T, error)
	Update(ctx context.Context, id string, req *U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ImageFunc stores or replaces the image attached to a record
type ImageFunc[T any] func(ctx context.Context, id string, r io.Reader) (*T, error)

// RemoveImageFunc detaches the image of a record
type RemoveImageFunc[T any] func(ctx context.Context, id string) (*T, error)

// ResourceHandler serves list, get, create, update and delete for one entity.
// T is the entity, C its create request and U its update request.
type ResourceHandler[T, C, U any] struct {
	name    string
	service ResourceService[T, C, U]
}

// NewResourceHandler creates a handler. name is the plural used in log
// and error context, e.g. "venues".
func NewResourceHandler[T, C, U any](name string, service ResourceService[T, C, U]) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{name: name, service: service}
}

// List handles GET /v1/{resource}
func (h *ResourceHandler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	q, problem := ParseListQuery(r)
	if problem != nil {
		WriteError(w, problem)
		return
	}

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		WriteServiceError(w, err, "list "+h.name)
		return
	}

	WriteData(w, http.StatusOK, page, nil)
}

// Get handles GET /v1/{resource}/{id}
func (h *ResourceHandler[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, "get "+h.name)
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// Create handles POST /v1/{resource}
func (h *ResourceHandler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err, "create "+h.name)
		return
	}

	WriteData(w, http.StatusCreated, item, nil)
}

// Update handles PATCH /v1/{resource}/{id}
func (h *ResourceHandler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req U
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		WriteServiceError(w, err, "update "+h.name)
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// Delete handles DELETE /v1/{resource}/{id}
func (h *ResourceHandler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err, "delete "+h.name)
		return
	}

	WriteNoContent(w)
}

// UploadImage returns a handler for POST /v1/{resource}/{id}/{image}.
// The multipart part named "file" is stored through set.
func UploadImage[T any](name string, maxSize int64, set ImageFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		file, ok := formFile(w, r, maxSize)
		if !ok {
			return
		}
		defer file.Close()

		item, err := set(r.Context(), id, file)
		if err != nil {
			WriteServiceError(w, err, "upload "+name+" image")
			return
		}

		WriteData(w, http.StatusOK, item, nil)
	}
}

// RemoveImage returns a handler for DELETE /v1/{resource}/{id}/{image}
func RemoveImage[T any](name string, remove RemoveImageFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		item, err := remove(r.Context(), id)
		if err != nil {
			WriteServiceError(w, err, "remove "+name+" image")
			return
		}

		WriteData(w, http.StatusOK, item, nil)
	}
}
