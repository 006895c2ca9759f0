package handler

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler answers the liveness probe the client gateway uses to decide
// between remote and local persistence.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func RootHandler() http.HandlerFunc {
	payload := map[string]any{
		"message": "Telegram Logistics API",
		"status":  "running",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":            "/health",
			"apiHealth":         "/api/health",
			"recipients":        "/api/recipients",
			"orders":            "/api/orders",
			"deliveryAddresses": "/api/delivery-addresses",
			"consolidations":    "/api/consolidations",
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, payload)
	}
}
