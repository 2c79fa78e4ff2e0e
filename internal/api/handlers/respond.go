package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pleaderai/backend/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP status
// classes. Unknown errors log server-side and surface as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	var ue *apperr.UpstreamError

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, apperr.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "email already registered")
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, ve.Error())
	case errors.As(err, &ue):
		slog.Error("upstream call failed", "op", ue.Op, "error", ue.Err)
		writeError(w, http.StatusInternalServerError, ue.Op+" failed")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
