// Package handlers adapts HTTP requests onto the services. Handlers decode,
// call one service method and write its result; all rules live in services.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/middleware"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/utils"
)

func principal(r *http.Request) *access.Principal {
	return middleware.PrincipalFrom(r.Context())
}

// decodeOptional decodes a JSON body that may be empty.
func decodeOptional(r *http.Request, out any) error {
	err := json.NewDecoder(r.Body).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func invalidJSON(w http.ResponseWriter) {
	utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
		Code:    "invalid_json",
		Message: "Invalid JSON in request body",
	})
}
