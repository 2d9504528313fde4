package app

import (
	apperrors "notification-router/internal/common/errors"
	"notification-router/internal/common/logging"
	"notification-router/internal/fields"
	"notification-router/internal/filter"
)

func configError(msg string, err error) error {
	return apperrors.ConfigError(msg, err)
}

// initializeMatching builds the field registry and one filter index per webhook
func (app *App) initializeMatching() error {
	registry, err := fields.NewRegistry(fields.DefaultDefinitions(), fields.DefaultComputeFuncs())
	if err != nil {
		return configError("failed to build field registry", err)
	}

	store, err := filter.NewWebhookFilterStore(registry, app.Config.FilterOptions())
	if err != nil {
		return configError("failed to create filter store", err)
	}

	for _, hook := range app.Webhooks {
		if err := store.AddWebhookFilters(hook.Name, hook.Filters.Values, hook.Filters.Enabled); err != nil {
			return configError("invalid webhook filters", err)
		}
		app.Logger.Debug("Configured webhook",
			logging.String("webhook", hook.Name),
			logging.String("hook_type", hook.HookType),
			logging.Bool("filters_enabled", hook.Filters.Enabled),
			logging.Int("filters", len(hook.Filters.Values)))
	}

	app.Store = store
	return nil
}
