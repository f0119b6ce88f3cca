package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/backoffice/internal/model"
)

type memoryUsers struct {
	byEmail  map[string]*model.User
	hashes   map[string]string
	promoted []string
}

func newMemoryUsers(users ...*model.User) *memoryUsers {
	m := &memoryUsers{byEmail: map[string]*model.User{}, hashes: map[string]string{}}
	for _, u := range users {
		m.byEmail[u.Email] = u
	}
	return m
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.byEmail[email], nil
}

func (m *memoryUsers) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = "user:new"
	m.byEmail[user.Email] = user
	m.hashes[user.ID] = *user.Hash
	return user, nil
}

func (m *memoryUsers) SetRole(ctx context.Context, userID string, role model.UserRole) (*model.User, error) {
	m.promoted = append(m.promoted, userID)
	for _, u := range m.byEmail {
		if u.ID == userID {
			u.Role = role
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) UpdatePassword(ctx context.Context, userID, hash string) error {
	m.hashes[userID] = hash
	return nil
}

func TestBootstrap_CreatesAdmin(t *testing.T) {
	users := newMemoryUsers()

	user, created, err := bootstrap(context.Background(), users, "  Owner@Example.com ", "correct-horse")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, model.UserRoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.hashes["user:new"]), []byte("correct-horse")))
}

func TestBootstrap_NewAccountNeedsPassword(t *testing.T) {
	_, _, err := bootstrap(context.Background(), newMemoryUsers(), "owner@example.com", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestBootstrap_PromotesExistingManager(t *testing.T) {
	users := newMemoryUsers(&model.User{ID: "user:7", Email: "lee@example.com", Role: model.UserRoleManager})

	user, created, err := bootstrap(context.Background(), users, "lee@example.com", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, model.UserRoleAdmin, user.Role)
	assert.Equal(t, []string{"user:7"}, users.promoted)
	assert.Empty(t, users.hashes, "password must be left alone when none is given")
}

func TestBootstrap_ExistingAdminResetsPassword(t *testing.T) {
	users := newMemoryUsers(&model.User{ID: "user:1", Email: "root@example.com", Role: model.UserRoleAdmin})

	_, created, err := bootstrap(context.Background(), users, "root@example.com", "new-password-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, users.promoted)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.hashes["user:1"]), []byte("new-password-1")))
}

func TestBootstrap_RejectsInvalidEmail(t *testing.T) {
	_, _, err := bootstrap(context.Background(), newMemoryUsers(), "not-an-email", "correct-horse")
	assert.Error(t, err)
}
