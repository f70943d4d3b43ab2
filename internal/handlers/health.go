package handlers

import "net/http"

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// Healthy reports that the process is serving requests.
func Healthy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "Healthy"})
}
