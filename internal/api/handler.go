// Package api provides HTTP handlers for the AXIOM interview API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elga-energy/axiom/internal/interview"
	"github.com/elga-energy/axiom/internal/llm"
)

// maxRequestBodySize caps inbound request bodies (1MB).
const maxRequestBodySize = 1 << 20

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a size-limited JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps orchestrator failures to HTTP responses. Provider
// failures carry a human-readable cause; everything else keeps its
// taxonomy: validation 400, not-found 404, provider 502, persistence 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *interview.ValidationError
	switch {
	case errors.As(err, &validationErr):
		Error(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, interview.ErrSessionNotFound):
		Error(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, interview.ErrMatchingNotFound):
		Error(w, http.StatusNotFound, "Matching result not found")
	default:
		var userFacing llm.UserFacing
		if errors.As(err, &userFacing) {
			Error(w, http.StatusBadGateway, userFacing.UserMessage())
			return
		}
		Error(w, http.StatusInternalServerError, "Une erreur est survenue. Veuillez réessayer.")
	}
}
