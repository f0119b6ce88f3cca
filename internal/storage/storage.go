package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Bucket names used by the back office
const (
	BucketVenues      = "venues"
	BucketAvatars     = "avatars"
	BucketBlogs       = "blogs"
	BucketRedeemItems = "redeem-items"
	BucketRecipes     = "recipes"
)

// Buckets lists every bucket the API writes to
var Buckets = []string{BucketVenues, BucketAvatars, BucketBlogs, BucketRedeemItems, BucketRecipes}

var (
	ErrNotFound      = errors.New("object not found")
	ErrInvalidKey    = errors.New("invalid object key")
	ErrUnknownBucket = errors.New("unknown bucket")
)

// TooLargeError is returned when an upload exceeds the size limit
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// UnsupportedTypeError is returned when the detected content type is not allowed
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("content type %q is not allowed", e.ContentType)
}

// Object describes a stored file
type Object struct {
	Bucket      string    `json:"bucket"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"-"`
}

// Path is the bucket-qualified key stored on entity rows
func (o *Object) Path() string {
	return o.Bucket + "/" + o.Key
}

// Bucket stores objects and exposes them at public URLs
type Bucket interface {
	Name() string
	Upload(ctx context.Context, key, contentType string, r io.Reader) (*Object, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}
