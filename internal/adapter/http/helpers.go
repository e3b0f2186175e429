package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/Workboard/internal/domain"
)

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request, bodyLimit int64) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return v, false
	}
	return v, true
}

// urlParam is a short alias for chi.URLParam.
func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

// envelope is the body shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// writeDomainError maps a service error onto a status code. Client errors
// carry the detail after the sentinel prefix; anything unrecognized is
// logged and answered with a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, detail(err, domain.ErrValidation, "invalid request"))
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, detail(err, domain.ErrUnauthenticated, "authentication required"))
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, http.StatusForbidden, detail(err, domain.ErrQuotaExceeded, "tenant limit reached"))
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, detail(err, domain.ErrForbidden, "insufficient permissions"))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, detail(err, domain.ErrNotFound, "resource not found"))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, detail(err, domain.ErrConflict, "resource already exists"))
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// detail returns the text following "<sentinel>: " in err, or fallback.
func detail(err, sentinel error, fallback string) string {
	prefix := sentinel.Error() + ": "
	if msg, ok := strings.CutPrefix(err.Error(), prefix); ok && msg != "" {
		return msg
	}
	return fallback
}
