package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/pkg/jwt"
)

// TokenRepository defines the interface for refresh token storage
type TokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID string) error
}

// TokenService handles JWT and refresh token operations
type TokenService struct {
	jwtService      *jwt.Service
	tokenRepo       TokenRepository
	refreshDuration time.Duration
	now             func() time.Time
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	JWTService      *jwt.Service
	TokenRepo       TokenRepository
	RefreshDuration time.Duration // Default: 30 days
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	if cfg.RefreshDuration == 0 {
		cfg.RefreshDuration = 30 * 24 * time.Hour
	}

	return &TokenService{
		jwtService:      cfg.JWTService,
		tokenRepo:       cfg.TokenRepo,
		refreshDuration: cfg.RefreshDuration,
		now:             time.Now,
	}
}

// GenerateTokenPair creates a new access token and refresh token for a user
func (s *TokenService) GenerateTokenPair(ctx context.Context, user *model.User) (*model.TokenPair, error) {
	claims := jwt.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.DisplayName(),
		Role:   string(user.Role),
	}
	claims.Subject = user.ID

	accessToken, err := s.jwtService.Sign(claims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	storedToken := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresOn: s.now().Add(s.refreshDuration),
	}
	if err := s.tokenRepo.Create(ctx, storedToken); err != nil {
		return nil, err
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.jwtService.GetExpiration().Seconds()),
	}, nil
}

// Consume validates a refresh token and revokes it, returning its user id.
// Refresh tokens are single use: presenting a revoked token again revokes
// every token of the user.
func (s *TokenService) Consume(ctx context.Context, refreshToken string) (string, error) {
	storedToken, err := s.tokenRepo.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		return "", err
	}
	if storedToken == nil {
		return "", ErrInvalidRefreshToken
	}

	if storedToken.RevokedOn != nil {
		s.revokeAfterReuse(ctx, storedToken.UserID)
		return "", ErrRefreshTokenRevoked
	}
	if !s.now().Before(storedToken.ExpiresOn) {
		return "", ErrRefreshTokenExpired
	}

	revoked, err := s.tokenRepo.Revoke(ctx, storedToken.ID)
	if err != nil {
		return "", err
	}
	if !revoked {
		// Lost a race with another refresh using the same token
		s.revokeAfterReuse(ctx, storedToken.UserID)
		return "", ErrRefreshTokenRevoked
	}

	return storedToken.UserID, nil
}

// ValidateAccessToken validates an access token and returns the claims
func (s *TokenService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.jwtService.Validate(token)
}

// RevokeAllUserTokens revokes all refresh tokens for a user
func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID string) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

func (s *TokenService) revokeAfterReuse(ctx context.Context, userID string) {
	slog.Warn("refresh token reuse detected", slog.String("user_id", userID))
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		slog.Error("failed to revoke tokens after reuse",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

// generateRefreshToken creates a cryptographically secure random token
func generateRefreshToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
