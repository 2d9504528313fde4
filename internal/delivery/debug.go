package delivery

import (
	"context"

	"github.com/tidwall/gjson"

	"notification-router/internal/common/logging"
)

// DebugSender logs a summary of each payload instead of sending it anywhere.
// It never fails.
type DebugSender struct {
	name   string
	url    string
	token  string
	logger logging.Logger
}

// NewDebugSender creates a debug sender. A nil logger uses the global logger.
func NewDebugSender(name, url, token string, logger logging.Logger) *DebugSender {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &DebugSender{name: name, url: url, token: token, logger: logger}
}

func (d *DebugSender) Send(_ context.Context, _ map[string]interface{}, raw []byte) error {
	d.logger.Info("Debug webhook received notification", summarize(d.name, d.url, d.token, raw)...)
	return nil
}

func summarize(name, url, token string, raw []byte) []logging.Field {
	doc := gjson.ParseBytes(raw)
	get := func(path string) string {
		if v := doc.Get(path); v.Exists() {
			return v.String()
		}
		return "Unknown"
	}

	fields := []logging.Field{
		logging.String("webhook", name),
		logging.String("type", get("type")),
		logging.String("name", get("name")),
		logging.String("severity", get("severity")),
		logging.String("timestamp", get("timestamp")),
		logging.String("entity_name", get("entity.name")),
		logging.String("entity_type", get("entity.type")),
		logging.String("entity_id", get("entity.id")),
		logging.Int("slo_count", int(doc.Get("slos.#").Int())),
		logging.Int("label_count", len(doc.Get("labels").Map())),
		logging.Bool("token_present", token != ""),
	}

	if url != "" {
		fields = append(fields, logging.String("target_url", url))
	}
	if summary := doc.Get("description.summary"); summary.Exists() {
		fields = append(fields, logging.String("summary", summary.String()))
	}
	if link := doc.Get("link"); link.Exists() {
		fields = append(fields, logging.String("link", link.String()))
	}
	return fields
}
