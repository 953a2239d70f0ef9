package transport

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Encode marshals a payload once so it can be both cached and served.
func Encode(payload interface{}) ([]byte, error) {
	return json.Marshal(payload)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// WriteServerError includes the underlying error in the body only when
// includeDetail is set (non-production environments).
func WriteServerError(w http.ResponseWriter, message string, err error, includeDetail bool) {
	var details map[string]string
	if includeDetail && err != nil {
		details = map[string]string{"error": err.Error()}
	}
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
