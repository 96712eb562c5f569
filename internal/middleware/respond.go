// Package middleware holds the HTTP middlewares shared by all routes
package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes a JSON error body the same shape handlers use
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
