package filter

import (
	"fmt"

	"notification-router/internal/common/logging"
	"notification-router/internal/fields"
)

// FilterCondition is one configured {field, operator, value} triple
type FilterCondition struct {
	Field    string      `json:"field" yaml:"field"`
	Operator string      `json:"operator" yaml:"operator"`
	Value    interface{} `json:"value" yaml:"value"`
}

// WebhookFilterStore owns one FilterIndex per destination and decides which
// destinations receive a payload. It is built once at startup; FilterPayload
// is safe for concurrent use afterwards.
type WebhookFilterStore struct {
	registry *fields.Registry
	opts     Options
	indexes  map[string]*FilterIndex
	order    []string
}

// NewWebhookFilterStore creates an empty store sharing registry across all indexes
func NewWebhookFilterStore(registry *fields.Registry, opts Options) (*WebhookFilterStore, error) {
	if registry == nil {
		return nil, fmt.Errorf("field registry is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &WebhookFilterStore{
		registry: registry,
		opts:     opts,
		indexes:  make(map[string]*FilterIndex),
	}, nil
}

// AddWebhookFilters creates the index for name on first use and adds filters
// to it. Calling it again for the same name extends the existing index and
// keeps its original enabled flag. All filters are validated before any is
// added.
func (s *WebhookFilterStore) AddWebhookFilters(name string, filters []FilterCondition, enabled bool) error {
	if name == "" {
		return fmt.Errorf("webhook name is required")
	}

	index, exists := s.indexes[name]
	if !exists {
		index = NewFilterIndex(s.registry, enabled, s.opts)
	}

	prepared := make([]preparedFilter, 0, len(filters))
	for i, f := range filters {
		pf, err := index.prepare(f.Field, f.Operator, f.Value)
		if err != nil {
			return fmt.Errorf("webhook '%s' filter %d: %w", name, i, err)
		}
		prepared = append(prepared, pf)
	}

	for _, pf := range prepared {
		if err := index.apply(pf); err != nil {
			return fmt.Errorf("webhook '%s': %w", name, err)
		}
	}

	if !exists {
		s.indexes[name] = index
		s.order = append(s.order, name)
	}

	logging.Debug("Registered webhook filters",
		logging.String("webhook", name),
		logging.Bool("enabled", index.Enabled()),
		logging.Int("filters", len(filters)),
	)
	return nil
}

// FilterPayload returns the destinations that accept payload, in
// registration order. Disabled indexes accept everything.
func (s *WebhookFilterStore) FilterPayload(payload map[string]interface{}) []string {
	matches := make([]string, 0, len(s.order))
	for _, name := range s.order {
		index := s.indexes[name]
		if !index.Enabled() || index.CheckPayload(payload) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Names returns every registered destination in registration order
func (s *WebhookFilterStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Index returns the FilterIndex registered for name
func (s *WebhookFilterStore) Index(name string) (*FilterIndex, bool) {
	index, ok := s.indexes[name]
	return index, ok
}

// Registry returns the shared field registry
func (s *WebhookFilterStore) Registry() *fields.Registry {
	return s.registry
}
