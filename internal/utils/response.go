package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/models"
)

// JSON writes a JSON response with status code
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// WriteError maps err onto its status code and writes the uniform error body.
// Causes are logged, never written.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := models.AsAppError(err)
	status := appErr.StatusCode()
	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("code", string(appErr.Kind)),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err))
	}
	JSON(w, status, appErr.Response())
}
