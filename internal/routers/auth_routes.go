package routers

import (
	"net/http"

	"github.com/darshan4295/interview-app/internal/handlers"
	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(r chi.Router, authHandler *handlers.AuthHandler, authenticate func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", authHandler.RegisterHandler)
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", authHandler.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", authHandler.MeHandler)
			r.With(middleware.ValidateRequest[*models.UpdateProfileRequest]()).Patch("/me", authHandler.UpdateMeHandler)
		})
	})
}
