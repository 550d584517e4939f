package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ai-interview-simulator/internal/domain"
)

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, code int, msg, details string) {
	writeJSON(w, code, errorResponse{Error: msg, Details: details})
}

// writeDomainError maps the core taxonomy onto HTTP statuses so callers can
// tell fixable requests (400/404/409) from server-side failure (500).
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found", err.Error())
	case errors.Is(err, domain.ErrSessionNotActive),
		errors.Is(err, domain.ErrQuestionMismatch),
		errors.Is(err, domain.ErrNoQuestionsRemaining):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error", "")
	}
}
