// internal/common/utils/response.go
// Standardized API responses ensure consistency across all endpoints

package utils

import (
	"encoding/json"
	"net/http"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
)

// Response is the standard API response structure
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// RespondWithJSON sends a JSON response with the specified status code and payload
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Error marshaling JSON"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithData sends a success response with data wrapped in a standard format
func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response with the specified status code and message
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Response{
		Success: false,
		Error:   message,
	})
}

// RespondWithAppError maps an error's kind to its HTTP status and sends it.
// Unclassified errors are reported as internal without leaking details.
func RespondWithAppError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	message := err.Error()
	if kind == apperrors.Internal {
		message = "internal server error"
	}
	RespondWithJSON(w, apperrors.HTTPStatus(kind), Response{
		Success: false,
		Error:   message,
		Kind:    string(kind),
	})
}
