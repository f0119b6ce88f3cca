package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// FileStore keeps bucket objects on local disk under <root>/<bucket>/<key>.
// A CDN or reverse proxy can serve the same tree in production.
type FileStore struct {
	root    string
	baseURL string
	buckets []string
}

// NewFileStore creates the root and bucket directories
func NewFileStore(root, publicBaseURL string, buckets ...string) (*FileStore, error) {
	if len(buckets) == 0 {
		buckets = Buckets
	}
	for _, b := range buckets {
		if err := os.MkdirAll(filepath.Join(root, b), 0o755); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", b, err)
		}
	}
	return &FileStore{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		buckets: buckets,
	}, nil
}

// Bucket returns a handle for one bucket
func (s *FileStore) Bucket(name string) (Bucket, error) {
	if !slices.Contains(s.buckets, name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, name)
	}
	return &fileBucket{store: s, name: name}, nil
}

// Open returns a stored object for serving. The caller closes the file.
func (s *FileStore) Open(bucket, key string) (*os.File, *Object, error) {
	p, err := s.path(bucket, key)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open object: %w", err)
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}
	return f, &Object{
		Bucket:      bucket,
		Key:         key,
		URL:         s.publicURL(bucket, key),
		ContentType: mime.TypeByExtension(path.Ext(key)),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// RemovePath deletes an object by its bucket-qualified path
func (s *FileStore) RemovePath(ctx context.Context, objectPath string) error {
	bucket, key, ok := strings.Cut(objectPath, "/")
	if !ok {
		return ErrInvalidKey
	}
	b, err := s.Bucket(bucket)
	if err != nil {
		return err
	}
	return b.Remove(ctx, key)
}

func (s *FileStore) path(bucket, key string) (string, error) {
	if !slices.Contains(s.buckets, bucket) {
		return "", fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}
	if err := checkKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(key)), nil
}

func (s *FileStore) publicURL(bucket, key string) string {
	return s.baseURL + "/" + bucket + "/" + key
}

// checkKey rejects keys that could escape the bucket directory
func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	if path.Clean(key) != key {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." || strings.HasPrefix(part, ".") {
			return ErrInvalidKey
		}
	}
	return nil
}

type fileBucket struct {
	store *FileStore
	name  string
}

func (b *fileBucket) Name() string { return b.name }

func (b *fileBucket) PublicURL(key string) string {
	return b.store.publicURL(b.name, key)
}

// Upload writes to a temp file and renames it into place
func (b *fileBucket) Upload(ctx context.Context, key, contentType string, r io.Reader) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := b.store.path(b.name, key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write object: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	return &Object{
		Bucket:      b.name,
		Key:         key,
		URL:         b.PublicURL(key),
		ContentType: contentType,
		Size:        n,
	}, nil
}

func (b *fileBucket) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := b.store.path(b.name, key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
