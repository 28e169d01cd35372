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

type AssessmentHandler struct {
	Assessments *services.AssessmentService
	Logger      *zap.Logger
}

func NewAssessmentHandler(assessments *services.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{Assessments: assessments, Logger: logger}
}

func (h *AssessmentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	status := models.AssessmentStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		utils.WriteError(w, h.Logger, models.ValidationError("Invalid assessment status", models.FieldError("status", "Invalid assessment status")))
		return
	}
	assessments, err := h.Assessments.List(r.Context(), principal(r), status)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, assessments)
}

// CreateHandler assigns a coding assessment to a candidate
// @Summary Create assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param request body models.CreateAssessmentRequest true "Assessment"
// @Success 201 {object} models.CodingAssessment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /assessments [post]
func (h *AssessmentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateAssessmentRequest](r)
	assessment, err := h.Assessments.Create(r.Context(), principal(r), req)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, assessment)
}

func (h *AssessmentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.Assessments.Get(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, assessment)
}

// SubmitHandler analyzes and stores the candidate's code
// @Summary Submit code
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param request body models.SubmitAssessmentRequest true "Code"
// @Success 200 {object} models.CodeAnalysis
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /assessments/{id}/submit [post]
func (h *AssessmentHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitAssessmentRequest](r)
	result, err := h.Assessments.Submit(r.Context(), principal(r), chi.URLParam(r, "id"), req.Code)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// ReviewHandler records a reviewer's score and feedback
// @Summary Review assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param request body models.ReviewAssessmentRequest true "Review"
// @Success 200 {object} models.CodingAssessment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /assessments/{id}/review [post]
func (h *AssessmentHandler) ReviewHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ReviewAssessmentRequest](r)
	assessment, err := h.Assessments.Review(r.Context(), principal(r), chi.URLParam(r, "id"), *req.Score, req.Feedback)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, assessment)
}
