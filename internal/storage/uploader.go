package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/forgo/backoffice/internal/model"
)

// sniffLen is how many bytes content detection looks at
const sniffLen = 512

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Uploader checks uploads and writes them under generated keys
type Uploader struct {
	maxSize      int64
	allowedTypes []string
}

// NewUploader creates an uploader with a size limit and content type allowlist
func NewUploader(maxSize int64, allowedTypes []string) *Uploader {
	return &Uploader{maxSize: maxSize, allowedTypes: allowedTypes}
}

// MaxSize returns the upload size limit in bytes
func (u *Uploader) MaxSize() int64 {
	return u.maxSize
}

// Upload detects the content type from the bytes themselves and stores the
// object at <owner-slug>/<uuid><ext>.
func (u *Uploader) Upload(ctx context.Context, bucket Bucket, ownerID string, r io.Reader) (*Object, error) {
	data, err := io.ReadAll(io.LimitReader(r, u.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > u.maxSize {
		return nil, &TooLargeError{Limit: u.maxSize}
	}

	contentType := http.DetectContentType(data[:min(len(data), sniffLen)])
	if !slices.Contains(u.allowedTypes, contentType) {
		return nil, &UnsupportedTypeError{ContentType: contentType}
	}

	return bucket.Upload(ctx, ObjectKey(ownerID, contentType), contentType, bytes.NewReader(data))
}

// ObjectKey builds a fresh key for an object owned by a record
func ObjectKey(ownerID, contentType string) string {
	owner := model.Slugify(ownerID)
	if owner == "" {
		owner = "misc"
	}
	return owner + "/" + uuid.NewString() + extensions[contentType]
}
