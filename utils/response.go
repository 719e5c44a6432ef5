package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
)

type M map[string]any

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError maps a classified error to its status code and writes
// the public message. Storage-kind errors are logged with their cause.
func RespondWithError(w http.ResponseWriter, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	RespondWithJSON(w, status, M{"error": apperror.PublicMessage(err)})
}
