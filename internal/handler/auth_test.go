package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forgo/backoffice/internal/middleware"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/service"
)

// ============================================================================
// Mock AuthService
// ============================================================================

type mockAuthService struct {
	loginFunc   func(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	refreshFunc func(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error)
	logoutFunc  func(ctx context.Context, userID string) error
	sessionFunc func(ctx context.Context, userID string) (*model.Session, error)
}

func (m *mockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, userID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) Session(ctx context.Context, userID string) (*model.Session, error) {
	if m.sessionFunc != nil {
		return m.sessionFunc(ctx, userID)
	}
	return nil, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestUser() *model.User {
	now := time.Now()
	return &model.User{
		ID:        "user:123",
		Email:     "admin@example.com",
		Firstname: stringPtr("Test"),
		Lastname:  stringPtr("Admin"),
		Role:      model.UserRoleAdmin,
		CreatedOn: now,
		UpdatedOn: now,
	}
}

func newTestAuthResponse() *model.AuthResponse {
	return &model.AuthResponse{
		User: newTestUser(),
		Token: model.TokenPair{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			TokenType:    "Bearer",
			ExpiresIn:    3600,
		},
	}
}

func stringPtr(s string) *string {
	return &s
}

func makeJSONRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

// parseData decodes the {"data": ...} envelope into v
func parseData(t *testing.T, body []byte, v any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to parse response envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("failed to parse data: %v", err)
	}
}

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_ValidCredentials_ReturnsOK(t *testing.T) {
	t.Parallel()

	var got *model.LoginRequest
	h := NewAuthHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
			got = req
			return newTestAuthResponse(), nil
		},
	})

	rr := httptest.NewRecorder()
	h.Login(rr, makeJSONRequest(http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "correct-horse",
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if got == nil || got.Email != "admin@example.com" || got.Password != "correct-horse" {
		t.Errorf("request not passed through: %+v", got)
	}

	var resp model.AuthResponse
	parseData(t, rr.Body.Bytes(), &resp)
	if resp.Token.AccessToken != "test-access-token" {
		t.Errorf("expected access token, got %q", resp.Token.AccessToken)
	}
	if resp.User == nil || resp.User.Role != model.UserRoleAdmin {
		t.Errorf("expected admin user, got %+v", resp.User)
	}
}

func TestLogin_InvalidCredentials_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
			return nil, service.ErrInvalidCredentials
		},
	})

	rr := httptest.NewRecorder()
	h.Login(rr, makeJSONRequest(http.MethodPost, "/v1/auth/login", map[string]string{
		"email": "admin@example.com", "password": "wrong-password",
	}))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %q", ct)
	}
}

func TestLogin_CustomerAccount_ReturnsForbidden(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
			return nil, service.ErrNotStaff
		},
	})

	rr := httptest.NewRecorder()
	h.Login(rr, makeJSONRequest(http.MethodPost, "/v1/auth/login", map[string]string{
		"email": "guest@example.com", "password": "password123",
	}))

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}

func TestLogin_ValidationProblem_PassesThrough(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{
		loginFunc: func(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
			return nil, model.NewValidationError([]model.FieldError{{Field: "email", Message: "email is required"}})
		},
	})

	rr := httptest.NewRecorder()
	h.Login(rr, makeJSONRequest(http.MethodPost, "/v1/auth/login", map[string]string{}))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	problem := parseErrorResponse(t, rr.Body.Bytes())
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "email" {
		t.Errorf("expected email field error, got %+v", problem.Errors)
	}
}

func TestLogin_InvalidJSON_ReturnsBadRequest(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestLogin_UnknownField_ReturnsBadRequest(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{})
	rr := httptest.NewRecorder()
	h.Login(rr, makeJSONRequest(http.MethodPost, "/v1/auth/login", map[string]string{
		"email": "a@example.com", "password": "x", "remember_me": "yes",
	}))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestLogin_EmptyBody_ReturnsBadRequest(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{})
	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	problem := parseErrorResponse(t, rr.Body.Bytes())
	if problem.Detail != "request body is required" {
		t.Errorf("unexpected detail %q", problem.Detail)
	}
}

// ============================================================================
// Refresh Tests
// ============================================================================

func TestRefresh_ValidToken_ReturnsNewTokens(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{
		refreshFunc: func(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error) {
			if req.RefreshToken != "old-refresh" {
				t.Errorf("expected old-refresh, got %q", req.RefreshToken)
			}
			return newTestAuthResponse(), nil
		},
	})

	rr := httptest.NewRecorder()
	h.Refresh(rr, makeJSONRequest(http.MethodPost, "/v1/auth/refresh", map[string]string{
		"refresh_token": "old-refresh",
	}))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRefresh_TokenErrors_ReturnUnauthorized(t *testing.T) {
	t.Parallel()

	for _, tokenErr := range []error{
		service.ErrInvalidRefreshToken,
		service.ErrRefreshTokenExpired,
		service.ErrRefreshTokenRevoked,
	} {
		h := NewAuthHandler(&mockAuthService{
			refreshFunc: func(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error) {
				return nil, tokenErr
			},
		})

		rr := httptest.NewRecorder()
		h.Refresh(rr, makeJSONRequest(http.MethodPost, "/v1/auth/refresh", map[string]string{
			"refresh_token": "stale",
		}))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%v: expected status %d, got %d", tokenErr, http.StatusUnauthorized, rr.Code)
		}
	}
}

// ============================================================================
// Logout Tests
// ============================================================================

func TestLogout_Authenticated_ReturnsNoContent(t *testing.T) {
	t.Parallel()

	var loggedOut string
	h := NewAuthHandler(&mockAuthService{
		logoutFunc: func(ctx context.Context, userID string) error {
			loggedOut = userID
			return nil
		},
	})

	req := withUserContext(httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil), "user:123")
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if loggedOut != "user:123" {
		t.Errorf("expected logout for user:123, got %q", loggedOut)
	}
}

func TestLogout_Unauthenticated_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{})
	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

// ============================================================================
// Session Tests
// ============================================================================

func TestSession_Authenticated_ReturnsUserAndRole(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{
		sessionFunc: func(ctx context.Context, userID string) (*model.Session, error) {
			u := newTestUser()
			return &model.Session{User: u, Role: u.Role}, nil
		},
	})

	req := withUserContext(httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil), "user:123")
	rr := httptest.NewRecorder()
	h.Session(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var session model.Session
	parseData(t, rr.Body.Bytes(), &session)
	if session.Role != model.UserRoleAdmin {
		t.Errorf("expected admin role, got %q", session.Role)
	}
}

func TestSession_UserDeleted_ReturnsNotFound(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mockAuthService{
		sessionFunc: func(ctx context.Context, userID string) (*model.Session, error) {
			return nil, service.ErrUserNotFound
		},
	})

	req := withUserContext(httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil), "user:gone")
	rr := httptest.NewRecorder()
	h.Session(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}
