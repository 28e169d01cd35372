package routers

import (
	"time"

	_ "github.com/darshan4295/interview-app/docs"
	"github.com/darshan4295/interview-app/internal/handlers"
	"github.com/darshan4295/interview-app/internal/metrics"
	"github.com/darshan4295/interview-app/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Interviews *handlers.InterviewHandler
	Assessment *handlers.AssessmentHandler
	Reports    *handlers.ReportHandler
	Admin      *handlers.AdminHandler
	Video      *handlers.VideoHandler
	Health     *handlers.HealthHandler
}

func NewRouter(h Handlers, authenticator middleware.Authenticator, allowedOrigins []string, logger *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(90*time.Second))
	router.Use(metrics.Middleware)

	authenticate := middleware.Authenticate(authenticator, logger)

	HealthRoutes(router, h.Health)
	OpsRoutes(router)
	AuthRoutes(router, h.Auth, authenticate)
	InterviewRoutes(router, h.Interviews, authenticate)
	VideoRoutes(router, h.Video, authenticate)
	AssessmentRoutes(router, h.Assessment, authenticate)
	ReportRoutes(router, h.Reports, authenticate)
	AdminRoutes(router, h.Admin, authenticate)

	return router
}
