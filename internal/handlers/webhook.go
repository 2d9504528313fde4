package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/gorilla/mux"

	"notification-router/internal/common/logging"
	"notification-router/internal/delivery"
	"notification-router/internal/metrics"
)

// HandleWebhook matches an incoming notification against every configured
// webhook and delivers it to the matches.
func (h *Handlers) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]

	raw, payload, ok := readPayload(w, r)
	if !ok {
		metrics.WebhookRequests.WithLabelValues("invalid").Inc()
		return
	}

	if severityUnchanged(payload) {
		metrics.WebhookRequests.WithLabelValues("suppressed").Inc()
		logging.Info("Suppressed update with unchanged severity",
			logging.Any("name", payload["name"]),
			logging.Any("severity", payload["severity"]))
		writeMessage(w, http.StatusOK, "Severity unchanged, notification suppressed")
		return
	}

	matches := h.match(payload)
	if len(matches) == 0 {
		metrics.WebhookRequests.WithLabelValues("unmatched").Inc()
		writeMessage(w, http.StatusOK, "No matching webhooks found")
		return
	}

	results := h.dispatcher.Deliver(r.Context(), matches, payload, raw)
	if failed := delivery.Failed(results); len(failed) > 0 {
		metrics.WebhookRequests.WithLabelValues("failed").Inc()
		writeJSON(w, http.StatusInternalServerError, messageResponse{
			Message:  "Failed to forward payload",
			Webhooks: matches,
			Failed:   failed,
		})
		return
	}

	metrics.WebhookRequests.WithLabelValues("delivered").Inc()
	logging.Info("Forwarded notification",
		logging.String("kind", kind),
		logging.Strings("webhooks", matches))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Payload forwarded", Webhooks: matches})
}

type matchResponse struct {
	Matches []string `json:"matches"`
}

// Match evaluates a payload without delivering it
func (h *Handlers) Match(w http.ResponseWriter, r *http.Request) {
	_, payload, ok := readPayload(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, matchResponse{Matches: h.match(payload)})
}

func (h *Handlers) match(payload map[string]interface{}) []string {
	start := time.Now()
	matches := h.store.FilterPayload(payload)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())

	for _, name := range matches {
		metrics.PayloadMatches.WithLabelValues(name).Inc()
	}
	return matches
}

// readPayload decodes the body as a JSON object, writing a 400 on failure
func readPayload(w http.ResponseWriter, r *http.Request) ([]byte, map[string]interface{}, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read request body")
		return nil, nil, false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		return nil, nil, false
	}
	return raw, payload, true
}

// severityUnchanged reports a ProblemUpdated whose severity did not move
func severityUnchanged(payload map[string]interface{}) bool {
	if payload["type"] != "ProblemUpdated" {
		return false
	}
	severity, ok := payload["severity"]
	if !ok {
		return false
	}
	old, ok := payload["old_severity"]
	return ok && reflect.DeepEqual(severity, old)
}
