package handlers

import (
	"net/http"
	"sort"
)

type fieldsResponse struct {
	Fields []string `json:"fields"`
}

// ListFields returns the registered field names in registration order
func (h *Handlers) ListFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fieldsResponse{Fields: h.store.Registry().ListFields()})
}

type webhooksResponse struct {
	Webhooks []webhookInfo `json:"webhooks"`
}

type webhookInfo struct {
	Name           string   `json:"name"`
	FiltersEnabled bool     `json:"filters_enabled"`
	Fields         []string `json:"fields"`
}

// ListWebhooks describes each configured webhook's filter index
func (h *Handlers) ListWebhooks(w http.ResponseWriter, r *http.Request) {
	names := h.store.Names()
	resp := webhooksResponse{Webhooks: make([]webhookInfo, 0, len(names))}
	for _, name := range names {
		info := webhookInfo{Name: name, Fields: []string{}}
		if idx, ok := h.store.Index(name); ok {
			info.FiltersEnabled = idx.Enabled()
			info.Fields = idx.Fields()
		}
		resp.Webhooks = append(resp.Webhooks, info)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":   "healthy",
		"webhooks": len(h.store.Names()),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](); err != nil {
			health[name] = "unhealthy"
			health["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
		} else {
			health[name] = "healthy"
		}
	}

	writeJSON(w, status, health)
}
