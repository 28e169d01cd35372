package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/services"
	"github.com/darshan4295/interview-app/internal/utils"
)

type ReportHandler struct {
	Reports *services.ReportService
	Logger  *zap.Logger
}

func NewReportHandler(reports *services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{Reports: reports, Logger: logger}
}

// GenerateHandler composes the candidate's final report
// @Summary Generate final report
// @Description Analyses omitted from the body are taken from the candidate's latest records.
// @Tags reports
// @Accept json
// @Produce json
// @Param candidateId path string true "Candidate ID"
// @Param request body models.ReportInputs false "Analyses"
// @Success 200 {object} models.FinalReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reports/{candidateId}/generate [post]
func (h *ReportHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var in models.ReportInputs
	if err := decodeOptional(r, &in); err != nil {
		invalidJSON(w)
		return
	}
	report, err := h.Reports.Generate(r.Context(), principal(r), chi.URLParam(r, "candidateId"), in)
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// GetHandler returns the candidate's final report
// @Summary Get final report
// @Tags reports
// @Produce json
// @Param candidateId path string true "Candidate ID"
// @Success 200 {object} models.FinalReport
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /reports/{candidateId} [get]
func (h *ReportHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.Get(r.Context(), principal(r), chi.URLParam(r, "candidateId"))
	if err != nil {
		utils.WriteError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}
