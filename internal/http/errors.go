package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mlehotskylf-org/signkit/internal/security"
)

// ErrorResponse represents a JSON error response.
// Only contains an error field to avoid leaking internal details.
type ErrorResponse struct {
	Error string `json:"error"`
}

// noStore sets cache control headers to prevent caching of signatures and
// random material by browsers or intermediaries.
func noStore(w http.ResponseWriter) {
	w.Header().Set(HeaderCacheControl, "no-store, max-age=0")
	w.Header().Set("Pragma", "no-cache")
}

// writeJSON writes a JSON response with the proper content type and status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// writeJSONError writes a JSON error response with the given code.
func writeJSONError(w http.ResponseWriter, statusCode int, errorCode string) {
	writeJSON(w, statusCode, ErrorResponse{Error: errorCode})
}

// BadRequest writes a 400 Bad Request response with a generic error message.
// The detailed reason is logged server-side but not exposed to the client.
func BadRequest(w http.ResponseWriter, r *http.Request, reason string) {
	slog.WarnContext(r.Context(), "bad request", "path", r.URL.Path, "reason", reason)
	writeJSONError(w, http.StatusBadRequest, ErrCodeInvalidRequest)
}

// ServerError writes a 500 Internal Server Error response.
// Should be used for unexpected errors that are not the client's fault.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "server error", "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusInternalServerError, ErrCodeServerError)
}

// writeSecurityError maps errors from the security package to responses.
func writeSecurityError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, security.ErrSecretTooShort):
		slog.ErrorContext(r.Context(), "signer misconfigured", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, ErrCodeMisconfigured)
	case errors.Is(err, security.ErrRandomnessUnavailable):
		slog.ErrorContext(r.Context(), "random source failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, ErrCodeRandomnessUnavailable)
	case errors.Is(err, security.ErrDegenerateRange):
		slog.WarnContext(r.Context(), "degenerate range", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadRequest, ErrCodeDegenerateRange)
	case errors.Is(err, security.ErrInvalidLength):
		BadRequest(w, r, err.Error())
	default:
		ServerError(w, r, err)
	}
}
