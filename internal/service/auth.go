package service

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/backoffice/internal/model"
)

// bcrypt cost factor (10-14 recommended for production)
const bcryptCost = 12

// AuthUserRepository defines the user storage sign-in needs
type AuthUserRepository interface {
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	RecordLogin(ctx context.Context, userID string) error
}

// AuthService handles password sign-in and sessions
type AuthService struct {
	userRepo     AuthUserRepository
	tokenService *TokenService
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     AuthUserRepository
	TokenService *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
	}
}

// Login checks email and password and issues tokens. Only staff accounts
// may sign in to the back office.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Hash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := checkPassword(req.Password, *user.Hash); err != nil {
		return nil, err
	}
	if !user.IsStaff() {
		return nil, ErrNotStaff
	}

	pair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to record login",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	user.Hash = nil
	return &model.AuthResponse{User: user, Token: *pair}, nil
}

// Refresh exchanges a refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	userID, err := s.tokenService.Consume(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}
	// Role may have changed since sign-in
	if !user.IsStaff() {
		return nil, ErrNotStaff
	}

	pair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: user, Token: *pair}, nil
}

// Logout revokes every refresh token of the user
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// Session returns the signed-in identity and role
func (s *AuthService) Session(ctx context.Context, userID string) (*model.Session, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &model.Session{User: user, Role: user.Role}, nil
}

// hashPassword creates a bcrypt hash of the password
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword compares a password with a hash
func checkPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword exposes the service hashing for account bootstrap tools
func HashPassword(password string) (string, error) {
	return hashPassword(password)
}
