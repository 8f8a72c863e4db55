package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/profilesvc/internal/errors"
	"github.com/vytor/profilesvc/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	appErr := errors.AsAppError(err)

	switch {
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Status >= 400:
		log.Debug("client error: %v", appErr)
	}

	writeError(w, appErr.Status, appErr.Message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Default().Error("failed to encode response: %v", err)
	}
}
