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

type InterviewHandler struct {
	Interviews *services.InterviewService
	Rooms      *services.RoomService
	Logger     *zap.Logger
}

func NewInterviewHandler(interviews *services.InterviewService, rooms *services.RoomService, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{Interviews: interviews, Rooms: rooms, Logger: logger}
}

// ListHandler returns the caller's interviews
// @Summary List interviews
// @Tags interviews
// @Produce json
// @Param status query string false "SCHEDULED, COMPLETED or CANCELLED"
// @Param type query string false "TECHNICAL or MANAGERIAL"
// @Success 200 {array} models.Interview
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /interviews [get]
func (h *InterviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.InterviewFilter{
		Status: models.InterviewStatus(r.URL.Query().Get("status")),
		Type:   models.InterviewType(r.URL.Query().Get("type")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		utils.WriteError(w, h.Logger, models.ValidationError("Invalid interview status", models.FieldError("status", "Invalid interview status")))
		return
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		utils.WriteError(w, h.Logger, models.ValidationError("Invalid interview type", models.FieldError("type", "Invalid interview type")))
		return
	}
	interviews, err := h.Interviews.List(r.Context(), principal(r), filter)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, interviews)
}

// CreateHandler schedules an interview
// @Summary Schedule interview
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body models.CreateInterviewRequest true "Interview"
// @Success 201 {object} models.Interview
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /interviews [post]
func (h *InterviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)
	interview, err := h.Interviews.Create(r.Context(), principal(r), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, interview)
}

func (h *InterviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	interview, err := h.Interviews.Get(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

func (h *InterviewHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateInterviewRequest](r)
	interview, err := h.Interviews.Reschedule(r.Context(), principal(r), chi.URLParam(r, "id"), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

// CancelHandler cancels a scheduled interview
// @Summary Cancel interview
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} models.Interview
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /interviews/{id}/cancel [post]
func (h *InterviewHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	interview, err := h.Interviews.Cancel(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

// CompleteHandler marks a scheduled interview completed
// @Summary Complete interview
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} models.Interview
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /interviews/{id}/complete [post]
func (h *InterviewHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	interview, err := h.Interviews.Complete(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

// AttachTranscriptHandler analyzes and stores a transcript
// @Summary Attach transcript
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "Interview ID"
// @Param request body models.TranscriptRequest true "Transcript"
// @Success 200 {object} models.TranscriptAnalysis
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /interviews/{id}/transcript [post]
func (h *InterviewHandler) AttachTranscriptHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.TranscriptRequest](r)
	result, err := h.Interviews.AttachTranscript(r.Context(), principal(r), chi.URLParam(r, "id"), req.Transcript)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *InterviewHandler) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Interviews.Transcript(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

func (h *InterviewHandler) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.FeedbackRequest](r)
	interview, err := h.Interviews.Feedback(r.Context(), principal(r), chi.URLParam(r, "id"), req.Feedback)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

// RoomHandler returns the interview's video room, creating it on first use
// @Summary Get or assign room
// @Tags interviews
// @Produce json
// @Param id path string true "Interview ID"
// @Success 200 {object} models.RoomAssignment
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /interviews/{id}/room [post]
func (h *InterviewHandler) RoomHandler(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.Rooms.Join(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, assignment)
}
