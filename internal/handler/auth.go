package handler

import (
	"context"
	"net/http"

	"github.com/forgo/backoffice/internal/middleware"
	"github.com/forgo/backoffice/internal/model"
)

// AuthService is the sign-in surface the auth handler needs
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error)
	Logout(ctx context.Context, userID string) error
	Session(ctx context.Context, userID string) (*model.Session, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err, "login")
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"session": "/v1/auth/session",
		"refresh": "/v1/auth/refresh",
	})
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Refresh(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err, "refresh")
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		WriteServiceError(w, err, "logout")
		return
	}

	WriteNoContent(w)
}

// Session handles GET /v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	session, err := h.authService.Session(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err, "session")
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}
