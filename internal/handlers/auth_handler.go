package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/services"
	"github.com/darshan4295/interview-app/internal/utils"
)

// AuthHandler manages registration, login and the caller's own profile.
type AuthHandler struct {
	Users  *services.UserService
	Logger *zap.Logger
}

func NewAuthHandler(users *services.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

// RegisterHandler creates a candidate or interviewer account
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "New account"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)
	user, err := h.Users.Register(r.Context(), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, models.RegisterResponse{Message: "User registered successfully", User: user})
}

// LoginHandler exchanges credentials for a session token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)
	resp, err := h.Users.Login(r.Context(), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Me(r.Context(), principal(r))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateProfileRequest](r)
	user, err := h.Users.UpdateProfile(r.Context(), principal(r), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
