package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/services"
	"github.com/darshan4295/interview-app/internal/utils"
)

// AdminHandler serves user administration and the dashboard counters.
type AdminHandler struct {
	Users  *services.UserService
	Logger *zap.Logger
}

func NewAdminHandler(users *services.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Logger: logger}
}

func (h *AdminHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.UserFilter{
		Role:   models.Role(r.URL.Query().Get("role")),
		Search: r.URL.Query().Get("search"),
	}
	if filter.Role != "" && !filter.Role.IsValid() {
		utils.WriteError(w, h.Logger, models.ValidationError("Invalid role", models.FieldError("role", "Invalid role")))
		return
	}
	users, err := h.Users.ListUsers(r.Context(), principal(r), filter)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *AdminHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateUserRequest](r)
	user, err := h.Users.CreateUser(r.Context(), principal(r), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetUser(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *AdminHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateUserRequest](r)
	user, err := h.Users.UpdateUser(r.Context(), principal(r), chi.URLParam(r, "id"), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// DeleteUserHandler removes a user together with their records
// @Summary Delete user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.DeleteUser(r.Context(), principal(r), chi.URLParam(r, "id")); err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "User deleted successfully"})
}

func (h *AdminHandler) CountUsersHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Users.CountUsers(r.Context(), principal(r))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, counts)
}

func (h *AdminHandler) RecentUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.RecentUsers(r.Context(), principal(r))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *AdminHandler) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Users.Activity(r.Context(), principal(r))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, counts)
}
