package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// AdminUserRepository defines the user repo interface needed by AdminUsersService
type AdminUserRepository interface {
	Store[model.User]
	SetRole(ctx context.Context, userID string, role model.UserRole) (*model.User, error)
}

// AdminProfileRepository defines the profile repo interface needed by AdminUsersService
type AdminProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.ManagerProfile, error)
	Delete(ctx context.Context, id string) (*model.ManagerProfile, error)
}

// BalanceReader reads drink-dollar balances
type BalanceReader interface {
	Balance(ctx context.Context, userID string) (*model.Balance, error)
}

// TokenRevoker revokes refresh tokens
type TokenRevoker interface {
	RevokeAllForUser(ctx context.Context, userID string) error
}

// AdminUsersService handles admin user management operations
type AdminUsersService struct {
	userRepo    AdminUserRepository
	profileRepo AdminProfileRepository
	balances    BalanceReader
	tokens      TokenRevoker
	avatars     Images
}

// AdminUsersServiceConfig holds the dependencies of AdminUsersService
type AdminUsersServiceConfig struct {
	UserRepo    AdminUserRepository
	ProfileRepo AdminProfileRepository
	Balances    BalanceReader
	Tokens      TokenRevoker
	Avatars     Images
}

// NewAdminUsersService creates a new admin users service
func NewAdminUsersService(cfg AdminUsersServiceConfig) *AdminUsersService {
	return &AdminUsersService{
		userRepo:    cfg.UserRepo,
		profileRepo: cfg.ProfileRepo,
		balances:    cfg.Balances,
		tokens:      cfg.Tokens,
		avatars:     cfg.Avatars,
	}
}

// List returns a page of accounts
func (s *AdminUsersService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.User], error) {
	return listPage(ctx, s.userRepo, q)
}

// Get returns one account with its manager profile and ledger balance
func (s *AdminUsersService) Get(ctx context.Context, userID string) (*model.UserDetail, error) {
	user, err := getOr(ctx, s.userRepo, userID, ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	detail := &model.UserDetail{User: user}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		slog.Warn("failed to load manager profile", slog.String("user_id", userID), slog.String("error", err.Error()))
	} else {
		detail.ManagerProfile = profile
	}

	balance, err := s.balances.Balance(ctx, userID)
	if err != nil {
		slog.Warn("failed to load balance", slog.String("user_id", userID), slog.String("error", err.Error()))
	} else if balance != nil {
		detail.Balance = balance.Balance
	}

	return detail, nil
}

// Create creates an account with a password
func (s *AdminUsersService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.UserRoleUser
	}

	user, err := s.userRepo.Create(ctx, &model.User{
		Email:     req.Email,
		Username:  req.Username,
		Hash:      &hash,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      role,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", slog.String("user_id", user.ID), slog.String("role", string(role)))
	return user, nil
}

// Update edits account details
func (s *AdminUsersService) Update(ctx context.Context, userID string, req *model.UpdateUserRequest) (*model.User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	if req.IsEmpty() {
		return getOr(ctx, s.userRepo, userID, ErrUserNotFound)
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "username", req.Username)
	patch = repository.SetIf(patch, "firstname", req.Firstname)
	patch = repository.SetIf(patch, "lastname", req.Lastname)
	patch = repository.SetIf(patch, "email_verified", req.EmailVerified)

	user, err := s.userRepo.Update(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateRole updates a user's role with self-demotion protection
func (s *AdminUsersService) UpdateRole(ctx context.Context, adminUserID, targetUserID string, req *model.UpdateUserRoleRequest) (*model.User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	if adminUserID == targetUserID && req.Role != model.UserRoleAdmin {
		return nil, ErrSelfDemotion
	}

	if _, err := getOr(ctx, s.userRepo, targetUserID, ErrUserNotFound); err != nil {
		return nil, err
	}

	user, err := s.userRepo.SetRole(ctx, targetUserID, req.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	slog.Info("user role changed",
		slog.String("user_id", targetUserID),
		slog.String("role", string(req.Role)),
		slog.String("admin_id", adminUserID),
	)
	return user, nil
}

// Delete removes an account, its manager profile and its refresh tokens
func (s *AdminUsersService) Delete(ctx context.Context, adminUserID, targetUserID string) error {
	if adminUserID == targetUserID {
		return ErrSelfDeletion
	}

	if _, err := getOr(ctx, s.userRepo, targetUserID, ErrUserNotFound); err != nil {
		return err
	}

	if err := s.tokens.RevokeAllForUser(ctx, targetUserID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to load manager profile: %w", err)
	}
	if profile != nil {
		if _, err := s.profileRepo.Delete(ctx, profile.ID); err != nil {
			return fmt.Errorf("failed to delete manager profile: %w", err)
		}
		s.avatars.discard(ctx, profile.AvatarPath)
	}

	slog.Info("deleting user", slog.String("user_id", targetUserID), slog.String("admin_id", adminUserID))

	deleted, err := s.userRepo.Delete(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if deleted == nil {
		return ErrUserNotFound
	}
	return nil
}
