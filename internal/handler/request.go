package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/forgo/backoffice/internal/model"
)

// multipartOverhead is the allowance for boundaries and part headers
// on top of the upload size limit
const multipartOverhead = 64 << 10

// ParseListQuery reads the paging, search, sort and filter parameters of a
// list request. Non-numeric paging values are validation errors.
func ParseListQuery(r *http.Request) (model.ListQuery, *model.ProblemDetails) {
	q := r.URL.Query()
	var errs []model.FieldError

	lq := model.ListQuery{
		Search:  q.Get("search"),
		SortBy:  q.Get("sort_by"),
		SortDir: model.SortDir(q.Get("sort_dir")),
		Filter:  q.Get("filter"),
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, model.FieldError{Field: "page", Message: "must be an integer"})
		case n > model.MaxPage:
			errs = append(errs, model.FieldError{Field: "page", Message: "must be at most " + strconv.Itoa(model.MaxPage)})
		}
		lq.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "page_size", Message: "must be an integer"})
		}
		lq.PageSize = n
	}
	if len(errs) > 0 {
		return model.ListQuery{}, model.NewValidationError(errs)
	}
	return lq.Normalize(), nil
}

// decodeBody decodes a JSON body into v, writing a 400 when it cannot
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := DecodeJSON(r, v); err != nil {
		if errors.Is(err, io.EOF) {
			WriteError(w, model.NewBadRequestError("request body is required"))
			return false
		}
		WriteError(w, model.NewBadRequestError("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// pathID reads a required path segment
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		WriteError(w, model.NewBadRequestError(name+" is required"))
		return "", false
	}
	return id, true
}

// formFile opens the "file" part of a multipart upload. The body is capped
// so oversized uploads fail before they are buffered.
func formFile(w http.ResponseWriter, r *http.Request, maxSize int64) (io.ReadCloser, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 10); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			WriteError(w, model.NewPayloadTooLargeError(maxSize))
			return nil, false
		}
		WriteError(w, model.NewBadRequestError("expected a multipart/form-data body"))
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "file", Message: "is required"},
		}))
		return nil, false
	}
	return file, true
}
