package routers

import (
	"net/http"

	"github.com/darshan4295/interview-app/internal/handlers"
	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"

	"github.com/go-chi/chi/v5"
)

func AssessmentRoutes(r chi.Router, assessmentHandler *handlers.AssessmentHandler, authenticate func(http.Handler) http.Handler) {
	r.Route("/assessments", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", assessmentHandler.ListHandler)
		r.With(middleware.ValidateRequest[*models.CreateAssessmentRequest]()).Post("/", assessmentHandler.CreateHandler)
		r.Get("/{id}", assessmentHandler.GetHandler)
		r.With(middleware.ValidateRequest[*models.SubmitAssessmentRequest]()).Post("/{id}/submit", assessmentHandler.SubmitHandler)
		r.With(middleware.ValidateRequest[*models.ReviewAssessmentRequest]()).Post("/{id}/review", assessmentHandler.ReviewHandler)
	})
}

func ReportRoutes(r chi.Router, reportHandler *handlers.ReportHandler, authenticate func(http.Handler) http.Handler) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(authenticate)

		// body is optional, so no validation middleware here
		r.Post("/{candidateId}/generate", reportHandler.GenerateHandler)
		r.Get("/{candidateId}", reportHandler.GetHandler)
	})
}
