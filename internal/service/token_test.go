package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgo/backoffice/internal/model"
)

// ============================================================================
// hashToken Tests
// ============================================================================

func TestHashToken_Deterministic(t *testing.T) {
	t.Parallel()

	if hashToken("test-refresh-token") != hashToken("test-refresh-token") {
		t.Error("hash should be deterministic")
	}
}

func TestHashToken_DifferentInputsDifferentHashes(t *testing.T) {
	t.Parallel()

	if hashToken("token-a") == hashToken("token-b") {
		t.Error("different tokens should have different hashes")
	}
}

func TestHashToken_CorrectLength(t *testing.T) {
	t.Parallel()

	// SHA-256 produces 32 bytes = 64 hex characters
	if hash := hashToken("test"); len(hash) != 64 {
		t.Errorf("expected hash length 64, got %d", len(hash))
	}
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	t.Parallel()

	a, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := generateRefreshToken()
	if a == b {
		t.Error("refresh tokens should be unique")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
}

// ============================================================================
// GenerateTokenPair Tests
// ============================================================================

func TestGenerateTokenPair_StoresHashOnly(t *testing.T) {
	t.Parallel()

	var stored *model.RefreshToken
	repo := &mockTokenRepo{
		createFunc: func(ctx context.Context, token *model.RefreshToken) error {
			stored = token
			return nil
		},
	}
	svc := NewTokenService(TokenServiceConfig{
		JWTService:      createTestJWTService(t),
		TokenRepo:       repo,
		RefreshDuration: time.Hour,
	})

	user := &model.User{ID: "user:ada", Email: "ada@example.com", Role: model.UserRoleAdmin}
	pair, err := svc.GenerateTokenPair(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pair.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %q", pair.TokenType)
	}
	if pair.ExpiresIn != 3600 {
		t.Errorf("expected expires_in 3600, got %d", pair.ExpiresIn)
	}
	if stored == nil {
		t.Fatal("refresh token was not stored")
	}
	if stored.TokenHash == pair.RefreshToken {
		t.Error("raw refresh token must not be stored")
	}
	if stored.TokenHash != hashToken(pair.RefreshToken) {
		t.Error("stored hash does not match the issued token")
	}
	if stored.UserID != "user:ada" {
		t.Errorf("expected user id user:ada, got %s", stored.UserID)
	}

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token should validate: %v", err)
	}
	if claims.UserID != "user:ada" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "user:ada" {
		t.Errorf("expected subject user:ada, got %s", claims.Subject)
	}
}

func TestGenerateTokenPair_StoreError(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{
		createFunc: func(ctx context.Context, token *model.RefreshToken) error {
			return errBoom
		},
	}
	svc := NewTokenService(TokenServiceConfig{JWTService: createTestJWTService(t), TokenRepo: repo})

	_, err := svc.GenerateTokenPair(context.Background(), &model.User{ID: "user:ada"})
	if !errors.Is(err, errBoom) {
		t.Errorf("expected store error, got %v", err)
	}
}

// ============================================================================
// Consume Tests
// ============================================================================

func TestConsume_Rotates(t *testing.T) {
	t.Parallel()

	repo := newMemoryTokenRepo()
	svc := NewTokenService(TokenServiceConfig{JWTService: createTestJWTService(t), TokenRepo: repo})
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, &model.User{ID: "user:ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := svc.Consume(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("first use should succeed: %v", err)
	}
	if userID != "user:ada" {
		t.Errorf("expected user:ada, got %s", userID)
	}

	if _, err := svc.Consume(ctx, pair.RefreshToken); !errors.Is(err, ErrRefreshTokenRevoked) {
		t.Errorf("second use should be rejected as revoked, got %v", err)
	}
}

func TestConsume_ReuseRevokesEverySession(t *testing.T) {
	t.Parallel()

	repo := newMemoryTokenRepo()
	svc := NewTokenService(TokenServiceConfig{JWTService: createTestJWTService(t), TokenRepo: repo})
	ctx := context.Background()
	user := &model.User{ID: "user:ada"}

	first, _ := svc.GenerateTokenPair(ctx, user)
	other, _ := svc.GenerateTokenPair(ctx, user)

	if _, err := svc.Consume(ctx, first.RefreshToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Consume(ctx, first.RefreshToken); !errors.Is(err, ErrRefreshTokenRevoked) {
		t.Fatalf("expected revoked, got %v", err)
	}

	if _, err := svc.Consume(ctx, other.RefreshToken); !errors.Is(err, ErrRefreshTokenRevoked) {
		t.Errorf("reuse should revoke the user's other tokens, got %v", err)
	}
}

func TestConsume_Unknown(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(TokenServiceConfig{JWTService: createTestJWTService(t), TokenRepo: &mockTokenRepo{}})

	if _, err := svc.Consume(context.Background(), "nope"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestConsume_Expired(t *testing.T) {
	t.Parallel()

	revoked := false
	repo := &mockTokenRepo{
		getByHashFunc: func(ctx context.Context, hash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{ID: "refresh_token:1", UserID: "user:ada", ExpiresOn: time.Now().Add(-time.Minute)}, nil
		},
		revokeFunc: func(ctx context.Context, id string) (bool, error) {
			revoked = true
			return true, nil
		},
	}
	svc := NewTokenService(TokenServiceConfig{JWTService: createTestJWTService(t), TokenRepo: repo})

	if _, err := svc.Consume(context.Background(), "old"); !errors.Is(err, ErrRefreshTokenExpired) {
		t.Errorf("expected ErrRefreshTokenExpired, got %v", err)
	}
	if revoked {
		t.Error("expired token should not be revoked again")
	}
}

func TestConsume_LostRace(t *testing.T) {
	t.Parallel()

	revokedAll := ""
	repo := &mockTokenRepo{
		getByHashFunc: func(ctx context.Context, hash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{ID: "refresh_token:1", UserID: "user:ada", ExpiresOn: time.Now().Add(time.Hour)}, nil
		},
		revokeFunc: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
		revokeAllForUserFunc: func(ctx context.Context, userID string) error {
			revokedAll = userID
			return nil
		},
	}
	svc := NewTokenService(TokenServiceConfig{JWTService: createTestJWTService(t), TokenRepo: repo})

	if _, err := svc.Consume(context.Background(), "raced"); !errors.Is(err, ErrRefreshTokenRevoked) {
		t.Errorf("expected ErrRefreshTokenRevoked, got %v", err)
	}
	if revokedAll != "user:ada" {
		t.Errorf("expected all tokens of user:ada revoked, got %q", revokedAll)
	}
}
