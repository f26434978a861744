package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

// errorResponse is the envelope of every non-2xx JSON response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, errText, message string) {
	writeJSON(w, status, errorResponse{Error: errText, Message: message})
}

func writeValidation(w http.ResponseWriter, details map[string][]string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Validation failed",
		Message: "Request data is invalid",
		Details: details,
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
}

func writeInternal(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "Internal server error", "An error occurred while processing your request")
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func writeInvalidJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "Invalid JSON", "Request body must be a valid JSON object")
}

// validationDetails extracts per-field messages from err if it carries a
// domain.ValidationError.
func validationDetails(err error) (map[string][]string, bool) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields(), true
	}
	return nil, false
}
