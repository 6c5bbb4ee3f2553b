package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// Success envelope: {message, data, meta?, timestamp}.
type successEnvelope struct {
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Meta      any    `json:"meta,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Error envelope: {success:false, message, timestamp, path}.
type errorEnvelope struct {
	Success   bool   `json:"success"`
	Message   any    `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

func respondSuccess(w http.ResponseWriter, code int, message string, data any) {
	respondPaginated(w, code, message, data, nil)
}

func respondPaginated(w http.ResponseWriter, code int, message string, data, meta any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(successEnvelope{
		Message:   message,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(w http.ResponseWriter, r *http.Request, code int, message any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorEnvelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	})
}
