package routers

import (
	"net/http"

	"github.com/darshan4295/interview-app/internal/handlers"
	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts user administration. Interviewers pass the role gate so
// they can browse users; the services enforce admin-only writes.
func AdminRoutes(r chi.Router, adminHandler *handlers.AdminHandler, authenticate func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleInterviewer))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", adminHandler.ListUsersHandler)
			r.With(middleware.ValidateRequest[*models.CreateUserRequest]()).Post("/", adminHandler.CreateUserHandler)
			r.Get("/count", adminHandler.CountUsersHandler)
			r.Get("/recent", adminHandler.RecentUsersHandler)
			r.Get("/{id}", adminHandler.GetUserHandler)
			r.With(middleware.ValidateRequest[*models.UpdateUserRequest]()).Patch("/{id}", adminHandler.UpdateUserHandler)
			r.Delete("/{id}", adminHandler.DeleteUserHandler)
		})
		r.Get("/activity/count", adminHandler.ActivityHandler)
	})
}
