package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// UserRepository handles user data access. The password hash is only
// read by GetByEmail.
type UserRepository struct {
	*Table[model.User]
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{
		Table: NewTable[model.User](db, TableConfig{
			Name:   "user",
			Search: []string{"email", "username", "firstname", "lastname"},
			Sorts:  []string{"email", "username", "role", "created_on", "login_on"},
			Filters: filter.Fields{
				"role":           filter.FieldString,
				"email_verified": filter.FieldBool,
				"created_on":     filter.FieldTimestamp,
				"login_on":       filter.FieldTimestamp,
			},
			Omit: []string{"hash"},
		}),
		db: db,
	}
}

// Create creates a new user with its password hash
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	role := user.Role
	if role == "" {
		role = model.UserRoleUser
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			username: IF $username != NONE AND $username != NULL THEN $username ELSE NONE END,
			hash: IF $hash != NONE AND $hash != NULL THEN $hash ELSE NONE END,
			firstname: IF $firstname != NONE AND $firstname != NULL THEN $firstname ELSE NONE END,
			lastname: IF $lastname != NONE AND $lastname != NULL THEN $lastname ELSE NONE END,
			role: $role,
			email_verified: $email_verified,
			created_on: time::now(),
			updated_on: time::now()
		} RETURN id, email, username, firstname, lastname, role, email_verified, created_on, updated_on
	`

	vars := map[string]interface{}{
		"email":          user.Email,
		"username":       ptrToNone(user.Username),
		"hash":           ptrToNone(user.Hash),
		"firstname":      ptrToNone(user.Firstname),
		"lastname":       ptrToNone(user.Lastname),
		"role":           string(role),
		"email_verified": user.EmailVerified,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return nil, err
	}

	created, err := firstRecord[model.User](result)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errors.New("no result returned")
	}
	return created, nil
}

// GetByEmail retrieves a user by email, including the password hash
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := decodeRecord[model.User](result)
	if err != nil {
		return nil, err
	}

	// Hash is skipped by json:"-"
	if m, ok := result.(map[string]interface{}); ok {
		if h, ok := m["hash"].(string); ok {
			user.Hash = &h
		}
	}
	return user, nil
}

// SetRole updates a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) (*model.User, error) {
	return r.Update(ctx, userID, NewPatch().Set("role", string(role)))
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	query := `UPDATE type::record($id) SET hash = $hash, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"hash": hash,
	}

	return r.db.Execute(ctx, query, vars)
}

// RecordLogin stamps the last sign-in time
func (r *UserRepository) RecordLogin(ctx context.Context, userID string) error {
	query := `UPDATE type::record($id) SET login_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID})
}

// ptrToNone maps a nil pointer onto NONE
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
