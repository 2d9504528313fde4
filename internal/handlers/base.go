package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"notification-router/internal/common/logging"
	"notification-router/internal/delivery"
	"notification-router/internal/filter"
)

// maxPayloadBytes caps the size of an incoming notification body
const maxPayloadBytes = 1 << 20

// Deliverer hands a payload to the named webhooks
type Deliverer interface {
	Deliver(ctx context.Context, names []string, payload map[string]interface{}, raw []byte) []delivery.Result
}

// HealthChecker reports whether a backing service is reachable
type HealthChecker func() error

type Handlers struct {
	store      *filter.WebhookFilterStore
	dispatcher Deliverer
	checks     map[string]HealthChecker
}

func New(store *filter.WebhookFilterStore, dispatcher Deliverer) *Handlers {
	return &Handlers{
		store:      store,
		dispatcher: dispatcher,
		checks:     make(map[string]HealthChecker),
	}
}

// AddHealthCheck registers a dependency reported by HealthCheck
func (h *Handlers) AddHealthCheck(name string, check HealthChecker) {
	h.checks[name] = check
}

type messageResponse struct {
	Message  string   `json:"message"`
	Webhooks []string `json:"webhooks,omitempty"`
	Failed   []string `json:"failed,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("Failed to encode response", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}
