package routers

import (
	"net/http"

	"github.com/darshan4295/interview-app/internal/handlers"
	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(r chi.Router, interviewHandler *handlers.InterviewHandler, authenticate func(http.Handler) http.Handler) {
	r.Route("/interviews", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", interviewHandler.ListHandler)
		r.With(middleware.ValidateRequest[*models.CreateInterviewRequest]()).Post("/", interviewHandler.CreateHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", interviewHandler.GetHandler)
			r.With(middleware.ValidateRequest[*models.UpdateInterviewRequest]()).Patch("/", interviewHandler.UpdateHandler)
			r.Post("/cancel", interviewHandler.CancelHandler)
			r.Post("/complete", interviewHandler.CompleteHandler)
			r.Get("/transcript", interviewHandler.TranscriptHandler)
			r.With(middleware.ValidateRequest[*models.TranscriptRequest]()).Post("/transcript", interviewHandler.AttachTranscriptHandler)
			r.With(middleware.ValidateRequest[*models.FeedbackRequest]()).Post("/feedback", interviewHandler.FeedbackHandler)
			r.Post("/room", interviewHandler.RoomHandler) // get or assign the video room
		})
	})
}

func VideoRoutes(r chi.Router, videoHandler *handlers.VideoHandler, authenticate func(http.Handler) http.Handler) {
	r.With(authenticate).Get("/video/token", videoHandler.TokenHandler)
}
