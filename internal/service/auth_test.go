package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/backoffice/internal/model"
)

func newTestUser(t *testing.T, id, email, password string, role model.UserRole) *model.User {
	t.Helper()
	// Minimum cost keeps the tests fast
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	h := string(hash)
	return &model.User{ID: id, Email: email, Hash: &h, Role: role}
}

func newTestAuthService(t *testing.T, users ...*model.User) (*AuthService, *mockAuthUserRepo, *memoryTokenRepo) {
	t.Helper()
	userRepo := newMockAuthUserRepo(users...)
	tokenRepo := newMemoryTokenRepo()
	tokens := NewTokenService(TokenServiceConfig{JWTService: createTestJWTService(t), TokenRepo: tokenRepo})
	return NewAuthService(AuthServiceConfig{UserRepo: userRepo, TokenService: tokens}), userRepo, tokenRepo
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	admin := newTestUser(t, "user:admin", "admin@example.com", "correct-horse", model.UserRoleAdmin)
	svc, users, _ := newTestAuthService(t, admin)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: "  Admin@Example.com ", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != "user:admin" {
		t.Errorf("expected user:admin, got %s", resp.User.ID)
	}
	if resp.User.Hash != nil {
		t.Error("hash must not be returned")
	}
	if resp.Token.AccessToken == "" || resp.Token.RefreshToken == "" {
		t.Error("expected both tokens")
	}
	if len(users.loginCalled) != 1 {
		t.Error("expected login to be recorded")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	admin := newTestUser(t, "user:admin", "admin@example.com", "correct-horse", model.UserRoleAdmin)
	svc, _, _ := newTestAuthService(t, admin)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "admin@example.com", Password: "battery-staple"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_CustomerRejected(t *testing.T) {
	t.Parallel()

	customer := newTestUser(t, "user:cust", "cust@example.com", "correct-horse", model.UserRoleUser)
	svc, users, tokens := newTestAuthService(t, customer)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "cust@example.com", Password: "correct-horse"})
	if !errors.Is(err, ErrNotStaff) {
		t.Errorf("expected ErrNotStaff, got %v", err)
	}
	if len(tokens.tokens) != 0 {
		t.Error("no tokens should be issued to customers")
	}
	if len(users.loginCalled) != 0 {
		t.Error("login should not be recorded")
	}
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{})
	errs := fieldErrors(t, err)
	if !hasFieldError(errs, "email") || !hasFieldError(errs, "password") {
		t.Errorf("expected email and password errors, got %+v", errs)
	}
}

func TestLogin_RecordLoginFailureIgnored(t *testing.T) {
	t.Parallel()

	manager := newTestUser(t, "user:mgr", "mgr@example.com", "correct-horse", model.UserRoleManager)
	svc, users, _ := newTestAuthService(t, manager)
	users.loginErr = errBoom

	if _, err := svc.Login(context.Background(), &model.LoginRequest{Email: "mgr@example.com", Password: "correct-horse"}); err != nil {
		t.Errorf("login should succeed when recording fails, got %v", err)
	}
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	t.Parallel()

	manager := newTestUser(t, "user:mgr", "mgr@example.com", "correct-horse", model.UserRoleManager)
	svc, _, _ := newTestAuthService(t, manager)
	ctx := context.Background()

	login, err := svc.Login(ctx, &model.LoginRequest{Email: "mgr@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, &model.RefreshRequest{RefreshToken: login.Token.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.Token.RefreshToken == login.Token.RefreshToken {
		t.Error("refresh token should rotate")
	}

	if _, err := svc.Refresh(ctx, &model.RefreshRequest{RefreshToken: login.Token.RefreshToken}); !errors.Is(err, ErrRefreshTokenRevoked) {
		t.Errorf("old refresh token should be rejected, got %v", err)
	}
}

func TestRefresh_DemotedUserRejected(t *testing.T) {
	t.Parallel()

	manager := newTestUser(t, "user:mgr", "mgr@example.com", "correct-horse", model.UserRoleManager)
	svc, users, _ := newTestAuthService(t, manager)
	ctx := context.Background()

	login, err := svc.Login(ctx, &model.LoginRequest{Email: "mgr@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	users.users["user:mgr"].Role = model.UserRoleUser

	if _, err := svc.Refresh(ctx, &model.RefreshRequest{RefreshToken: login.Token.RefreshToken}); !errors.Is(err, ErrNotStaff) {
		t.Errorf("expected ErrNotStaff, got %v", err)
	}
}

func TestLogout_RevokesTokens(t *testing.T) {
	t.Parallel()

	admin := newTestUser(t, "user:admin", "admin@example.com", "correct-horse", model.UserRoleAdmin)
	svc, _, _ := newTestAuthService(t, admin)
	ctx := context.Background()

	login, _ := svc.Login(ctx, &model.LoginRequest{Email: "admin@example.com", Password: "correct-horse"})
	if err := svc.Logout(ctx, "user:admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Refresh(ctx, &model.RefreshRequest{RefreshToken: login.Token.RefreshToken}); !errors.Is(err, ErrRefreshTokenRevoked) {
		t.Errorf("expected ErrRefreshTokenRevoked after logout, got %v", err)
	}
}

func TestSession(t *testing.T) {
	t.Parallel()

	admin := newTestUser(t, "user:admin", "admin@example.com", "correct-horse", model.UserRoleAdmin)
	svc, _, _ := newTestAuthService(t, admin)

	session, err := svc.Session(context.Background(), "user:admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Role != model.UserRoleAdmin {
		t.Errorf("expected admin role, got %s", session.Role)
	}

	if _, err := svc.Session(context.Background(), "user:gone"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := hashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := checkPassword("s3cret-pass", hash); err != nil {
		t.Errorf("matching password rejected: %v", err)
	}
	if err := checkPassword("wrong-pass", hash); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := checkPassword("s3cret-pass", "not-a-hash"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("malformed hash should be rejected, got %v", err)
	}
}
