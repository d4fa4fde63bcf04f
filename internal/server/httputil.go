package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

type envelope struct {
	Data  any       `json:"data,omitempty"`
	Error *errorObj `json:"error,omitempty"`
}

type errorObj struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writeJSON encode error", "err", err)
	}
}

// writeData wraps v in the data envelope.
func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, envelope{Data: v})
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Error: &errorObj{Code: code, Message: message}})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// storeErrorToHTTP maps store errors to HTTP responses.
func storeErrorToHTTP(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, crud.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, crud.ErrDuplicateID):
		writeError(w, http.StatusConflict, "DUPLICATE_ID", err.Error())
	default:
		logger.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
