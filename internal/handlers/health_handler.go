package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/darshan4295/interview-app/internal/llm"
	"github.com/darshan4295/interview-app/internal/prompts"
	"github.com/darshan4295/interview-app/internal/utils"
)

const serviceName = "interview-app"

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db            Pinger
	provider      llm.Provider
	promptManager prompts.PromptProvider
	version       string
}

func NewHealthHandler(db Pinger, provider llm.Provider, promptManager prompts.PromptProvider, version string) *HealthHandler {
	return &HealthHandler{db: db, provider: provider, promptManager: promptManager, version: version}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"version": handler.version,
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true
	fail := func(name, message string) {
		checks[name] = ReadinessCheck{Status: "failed", Message: message}
		allChecksPass = false
	}

	if handler.db == nil {
		fail("database", "Database not initialized")
	} else {
		ctx, cancel := context.WithTimeout(request.Context(), 2*time.Second)
		defer cancel()
		if err := handler.db.PingContext(ctx); err != nil {
			fail("database", "Database unreachable")
		} else {
			checks["database"] = ReadinessCheck{Status: "ok"}
		}
	}

	if handler.provider == nil {
		fail("provider", "AI provider not initialized")
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	if handler.promptManager == nil {
		fail("prompt_manager", "Prompt manager not initialized")
	} else if len(handler.promptManager.GetTemplates()) == 0 {
		fail("prompt_manager", "No prompt templates loaded")
	} else {
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{Service: serviceName, Checks: checks}
	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
