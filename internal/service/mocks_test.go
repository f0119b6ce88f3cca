package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
	"github.com/forgo/backoffice/internal/storage"
	"github.com/forgo/backoffice/pkg/jwt"
)

// ============================================================================
// Mock Store
// ============================================================================

type mockStore[T any] struct {
	listFunc   func(ctx context.Context, q model.ListQuery, extra ...filter.Condition) ([]T, int, error)
	getFunc    func(ctx context.Context, id string) (*T, error)
	createFunc func(ctx context.Context, entity *T) (*T, error)
	updateFunc func(ctx context.Context, id string, patch repository.Patch) (*T, error)
	deleteFunc func(ctx context.Context, id string) (*T, error)
	existsFunc func(ctx context.Context, ids ...string) (bool, error)
	countFunc  func(ctx context.Context, cond filter.Condition) (int, error)
}

func (m *mockStore[T]) List(ctx context.Context, q model.ListQuery, extra ...filter.Condition) ([]T, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q, extra...)
	}
	return nil, 0, nil
}

func (m *mockStore[T]) Get(ctx context.Context, id string) (*T, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStore[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, entity)
	}
	return entity, nil
}

func (m *mockStore[T]) Update(ctx context.Context, id string, patch repository.Patch) (*T, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockStore[T]) Delete(ctx context.Context, id string) (*T, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStore[T]) Exists(ctx context.Context, ids ...string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, ids...)
	}
	return true, nil
}

func (m *mockStore[T]) Count(ctx context.Context, cond filter.Condition) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, cond)
	}
	return 0, nil
}

// mockExistence answers Exists from a fixed set of ids
type mockExistence struct {
	known map[string]bool
	err   error
}

func existing(ids ...string) *mockExistence {
	m := &mockExistence{known: make(map[string]bool)}
	for _, id := range ids {
		m.known[id] = true
	}
	return m
}

func (m *mockExistence) Exists(ctx context.Context, ids ...string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, id := range ids {
		if !m.known[id] {
			return false, nil
		}
	}
	return true, nil
}

// ============================================================================
// Mock Storage
// ============================================================================

type mockBucket struct {
	name string
}

func (b *mockBucket) Name() string { return b.name }

func (b *mockBucket) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.Object, error) {
	return &storage.Object{Bucket: b.name, Key: key, URL: b.PublicURL(key), ContentType: contentType}, nil
}

func (b *mockBucket) Remove(ctx context.Context, key string) error { return nil }

func (b *mockBucket) PublicURL(key string) string {
	return "http://files.test/" + b.name + "/" + key
}

type mockObjectStore struct {
	removed   []string
	removeErr error
}

func (m *mockObjectStore) Bucket(name string) (storage.Bucket, error) {
	return &mockBucket{name: name}, nil
}

func (m *mockObjectStore) RemovePath(ctx context.Context, objectPath string) error {
	m.removed = append(m.removed, objectPath)
	return m.removeErr
}

type mockUploader struct {
	uploadFunc func(ctx context.Context, bucket storage.Bucket, ownerID string, r io.Reader) (*storage.Object, error)
}

func (m *mockUploader) Upload(ctx context.Context, bucket storage.Bucket, ownerID string, r io.Reader) (*storage.Object, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, bucket, ownerID, r)
	}
	key := strings.ReplaceAll(ownerID, ":", "-") + "/new.png"
	return bucket.Upload(ctx, key, "image/png", r)
}

func testImages(bucket string) (Images, *mockObjectStore) {
	store := &mockObjectStore{}
	return Images{Store: store, Uploader: &mockUploader{}, Bucket: bucket}, store
}

// ============================================================================
// Mock Auth Repositories
// ============================================================================

type mockTokenRepo struct {
	createFunc           func(ctx context.Context, token *model.RefreshToken) error
	getByHashFunc        func(ctx context.Context, hash string) (*model.RefreshToken, error)
	revokeFunc           func(ctx context.Context, id string) (bool, error)
	revokeAllForUserFunc func(ctx context.Context, userID string) error
}

func (m *mockTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	if m.getByHashFunc != nil {
		return m.getByHashFunc(ctx, hash)
	}
	return nil, nil
}

func (m *mockTokenRepo) Revoke(ctx context.Context, id string) (bool, error) {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, id)
	}
	return true, nil
}

func (m *mockTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	if m.revokeAllForUserFunc != nil {
		return m.revokeAllForUserFunc(ctx, userID)
	}
	return nil
}

// memoryTokenRepo keeps refresh tokens in memory so rotation can be
// exercised end to end
type memoryTokenRepo struct {
	tokens map[string]*model.RefreshToken
	nextID int
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]*model.RefreshToken)}
}

func (m *memoryTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	m.nextID++
	token.ID = fmt.Sprintf("refresh_token:t%d", m.nextID)
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *memoryTokenRepo) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	return m.tokens[hash], nil
}

func (m *memoryTokenRepo) Revoke(ctx context.Context, id string) (bool, error) {
	for _, t := range m.tokens {
		if t.ID == id {
			if t.RevokedOn != nil {
				return false, nil
			}
			now := time.Now()
			t.RevokedOn = &now
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	now := time.Now()
	for _, t := range m.tokens {
		if t.UserID == userID && t.RevokedOn == nil {
			t.RevokedOn = &now
		}
	}
	return nil
}

type mockAuthUserRepo struct {
	users       map[string]*model.User
	loginErr    error
	loginCalled []string
}

func newMockAuthUserRepo(users ...*model.User) *mockAuthUserRepo {
	m := &mockAuthUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockAuthUserRepo) Get(ctx context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockAuthUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockAuthUserRepo) RecordLogin(ctx context.Context, userID string) error {
	m.loginCalled = append(m.loginCalled, userID)
	return m.loginErr
}

// ============================================================================
// Helper Functions
// ============================================================================

var errBoom = errors.New("boom")

func createTestJWTService(t *testing.T) *jwt.Service {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return jwt.NewTestService(privateKey, "test-issuer", time.Hour)
}

func ptr[T any](v T) *T {
	return &v
}

// fieldErrors returns the field errors of a validation failure, or fails the test
func fieldErrors(t *testing.T, err error) []model.FieldError {
	t.Helper()
	var problem *model.ProblemDetails
	if !errors.As(err, &problem) || problem.Code != model.ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	return problem.Errors
}

func hasFieldError(errs []model.FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
