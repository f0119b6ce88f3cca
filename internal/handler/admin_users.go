package handler

import (
	"context"
	"net/http"

	"github.com/forgo/backoffice/internal/middleware"
	"github.com/forgo/backoffice/internal/model"
)

// AdminUsersService is the account management surface
type AdminUsersService interface {
	List(ctx context.Context, q model.ListQuery) (*model.Page[model.User], error)
	Get(ctx context.Context, userID string) (*model.UserDetail, error)
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, userID string, req *model.UpdateUserRequest) (*model.User, error)
	UpdateRole(ctx context.Context, adminUserID, targetUserID string, req *model.UpdateUserRoleRequest) (*model.User, error)
	Delete(ctx context.Context, adminUserID, targetUserID string) error
}

// AdminUsersHandler handles admin user management endpoints
type AdminUsersHandler struct {
	usersService AdminUsersService
}

// NewAdminUsersHandler creates a new admin users handler
func NewAdminUsersHandler(usersService AdminUsersService) *AdminUsersHandler {
	return &AdminUsersHandler{usersService: usersService}
}

// List handles GET /v1/users
func (h *AdminUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q, problem := ParseListQuery(r)
	if problem != nil {
		WriteError(w, problem)
		return
	}

	page, err := h.usersService.List(r.Context(), q)
	if err != nil {
		WriteServiceError(w, err, "list users")
		return
	}

	WriteData(w, http.StatusOK, page, nil)
}

// Get handles GET /v1/users/{id}
func (h *AdminUsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.usersService.Get(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err, "get user")
		return
	}

	WriteData(w, http.StatusOK, detail, map[string]string{
		"balance": "/v1/drink-dollars/balances/" + userID,
	})
}

// Create handles POST /v1/users
func (h *AdminUsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.usersService.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err, "create user")
		return
	}

	WriteData(w, http.StatusCreated, user, nil)
}

// Update handles PATCH /v1/users/{id}
func (h *AdminUsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.usersService.Update(r.Context(), userID, &req)
	if err != nil {
		WriteServiceError(w, err, "update user")
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}

// UpdateRole handles PATCH /v1/users/{id}/role
func (h *AdminUsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	adminUserID := middleware.GetUserID(r.Context())

	user, err := h.usersService.UpdateRole(r.Context(), adminUserID, userID, &req)
	if err != nil {
		WriteServiceError(w, err, "update user role")
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}

// Delete handles DELETE /v1/users/{id}
func (h *AdminUsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	adminUserID := middleware.GetUserID(r.Context())

	if err := h.usersService.Delete(r.Context(), adminUserID, userID); err != nil {
		WriteServiceError(w, err, "delete user")
		return
	}

	WriteNoContent(w)
}
