package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"notification-router/internal/handlers"
	"notification-router/internal/metrics"
	"notification-router/internal/middleware"
)

// SetupRoutes configures all HTTP routes for the application
func SetupRoutes(router *mux.Router, h *handlers.Handlers, authMiddleware func(http.Handler) http.Handler) {
	router.Use(middleware.LoggingMiddleware)

	// Health check and metrics (no auth required)
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	protected := router.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	// Notification intake; the kind segment is kept for older per-backend URLs
	protected.HandleFunc("/webhook", h.HandleWebhook).Methods("POST")
	protected.HandleFunc("/webhook/{kind}", h.HandleWebhook).Methods("POST")

	api := protected.PathPrefix("/api").Subrouter()
	api.HandleFunc("/match", h.Match).Methods("POST")
	api.HandleFunc("/fields", h.ListFields).Methods("GET")
	api.HandleFunc("/webhooks", h.ListWebhooks).Methods("GET")
}
