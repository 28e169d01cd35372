package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/models"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"conflict", models.ConflictError("Interview is already completed"), http.StatusBadRequest, "state_conflict"},
		{"forbidden", models.ForbiddenError(""), http.StatusForbidden, "forbidden"},
		{"duplicate", models.DuplicateError("Email is already registered"), http.StatusConflict, "duplicate"},
		{"upstream", models.UpstreamError("Analysis service timed out", errors.New("deadline")), http.StatusInternalServerError, "upstream_error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, rec.Body.String(), "deadline")
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestWriteErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, nil, models.ValidationError("Missing required assessment data",
		models.FieldError("managerialInterview", "analysis is not available")))

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Missing required assessment data", body.Message)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "managerialInterview", body.Details[0].Field)
}
