package utils

import (
	"net/http"

	"boighor-storefront/internal/domain"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, domain.Response{Success: false, Message: message})
}

// WriteValidationErrors reports per-field form errors with a 422.
func WriteValidationErrors(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusUnprocessableEntity, domain.Response{
		Success: false,
		Message: "validation failed",
		Errors:  fields,
	})
}
