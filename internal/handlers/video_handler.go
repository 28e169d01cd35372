package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/services"
	"github.com/darshan4295/interview-app/internal/utils"
)

type VideoHandler struct {
	Rooms  *services.RoomService
	Logger *zap.Logger
}

func NewVideoHandler(rooms *services.RoomService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{Rooms: rooms, Logger: logger}
}

// TokenHandler issues a video token not bound to any room
// @Summary Video token
// @Tags video
// @Produce json
// @Success 200 {object} models.TokenResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /video/token [get]
func (h *VideoHandler) TokenHandler(w http.ResponseWriter, r *http.Request) {
	token, err := h.Rooms.VideoToken(r.Context(), principal(r))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.TokenResponse{Token: token})
}
