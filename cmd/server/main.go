package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/darshan4295/interview-app/internal/analysis"
	"github.com/darshan4295/interview-app/internal/auth"
	"github.com/darshan4295/interview-app/internal/config"
	"github.com/darshan4295/interview-app/internal/handlers"
	"github.com/darshan4295/interview-app/internal/llm"
	_ "github.com/darshan4295/interview-app/internal/llm/gemini"
	"github.com/darshan4295/interview-app/internal/prompts"
	"github.com/darshan4295/interview-app/internal/repositories"
	"github.com/darshan4295/interview-app/internal/rooms"
	"github.com/darshan4295/interview-app/internal/routers"
	"github.com/darshan4295/interview-app/internal/services"
	"github.com/darshan4295/interview-app/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

var version = "dev"

// @title Interview Platform API
// @version 1.0
// @description Scheduling, AI analysis and reporting for technical interviews.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadDotenv()
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger depends on the environment, so fall back to a production one
		zap.Must(zap.NewProduction()).Fatal("Failed to load configuration", zap.Error(err))
	}

	log := utils.NewLogger(cfg.IsDevelopment())
	defer log.Sync()

	gormLevel := logger.Warn
	if cfg.IsDevelopment() {
		gormLevel = logger.Info
	}
	db, err := repositories.OpenPostgres(cfg.Database.DSN(), gormLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to access database handle", zap.Error(err))
	}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		log.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		log.Fatal("Failed to initialize AI provider", zap.Error(err), zap.Strings("registered", llm.Registered()))
	}
	oracle := analysis.NewLLMOracle(aiProvider, promptManager, cfg.OracleTimeout, log)

	videoTokens := rooms.NewTokenIssuer(cfg.Video.APIKey, cfg.Video.Secret, cfg.Video.TokenTTL)
	videoClient := rooms.NewVideoSDKClient(cfg.Video.Endpoint, videoTokens, &http.Client{Timeout: cfg.Video.Timeout})
	provisioner := rooms.NewPolicyProvisioner(videoClient, cfg.Video.Timeout, cfg.Video.FallbackPolicy, log)

	var locker rooms.Locker = rooms.NoopLocker{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unreachable, room locking stays in-process", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			locker = rooms.NewRedisLocker(rdb)
			log.Info("Room locking backed by redis", zap.String("addr", cfg.RedisAddr))
		}
		cancel()
	}

	users := &repositories.UserRepository{DB: db}
	interviews := &repositories.InterviewRepository{DB: db}
	assessments := &repositories.AssessmentRepository{DB: db}
	reports := &repositories.ReportRepository{DB: db}

	userSvc := services.NewUserService(users, interviews, assessments, auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL), log)
	interviewSvc := services.NewInterviewService(interviews, users, oracle, log)
	assessmentSvc := services.NewAssessmentService(assessments, users, oracle, log)
	reportSvc := services.NewReportService(reports, users, interviews, assessments, oracle, log)
	roomSvc := services.NewRoomService(interviews, provisioner, locker, videoTokens, cfg.Video.Timeout+5*time.Second, log)

	router := routers.NewRouter(routers.Handlers{
		Auth:       handlers.NewAuthHandler(userSvc, log),
		Interviews: handlers.NewInterviewHandler(interviewSvc, roomSvc, log),
		Assessment: handlers.NewAssessmentHandler(assessmentSvc, log),
		Reports:    handlers.NewReportHandler(reportSvc, log),
		Admin:      handlers.NewAdminHandler(userSvc, log),
		Video:      handlers.NewVideoHandler(roomSvc, log),
		Health:     handlers.NewHealthHandler(sqlDB, aiProvider, promptManager, version),
	}, userSvc, cfg.AllowedOrigins, log)

	serverAddr := ":" + cfg.Port

	// oracle calls can take a while, keep write timeout above the request timeout
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 95 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Interview service starting",
			zap.String("addr", serverAddr),
			zap.String("env", cfg.Env),
			zap.String("provider", aiProvider.GetProviderName()),
			zap.String("version", version))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	log.Info("Interview service shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}

	log.Info("Interview service exited")
}
