package app

import (
	httpclient "notification-router/internal/common/http"
	"notification-router/internal/common/logging"
	"notification-router/internal/config"
	"notification-router/internal/delivery"
	"notification-router/internal/filter"
	"notification-router/internal/redis"
)

// App holds all the application dependencies
type App struct {
	Config      *config.Config
	Webhooks    []config.Webhook
	Store       *filter.WebhookFilterStore
	Dispatcher  *delivery.Dispatcher
	RedisClient *redis.Client
	Logger      logging.Logger
}

// New loads the webhook file named by cfg and builds the application
func New(cfg *config.Config) (*App, error) {
	hooks, err := config.LoadWebhooks(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	return NewWithWebhooks(cfg, hooks)
}

// NewWithWebhooks builds the application from already loaded webhooks
func NewWithWebhooks(cfg *config.Config, hooks []config.Webhook) (*App, error) {
	app := &App{
		Config:   cfg,
		Webhooks: hooks,
		Logger:   logging.GetGlobalLogger().WithFields(logging.String("component", "app")),
	}

	if err := app.initializeRedis(); err != nil {
		// Redis is optional unless a redis hook needs it
		app.Logger.Warn("Redis initialization failed, continuing without Redis",
			logging.Err(err))
	}

	if err := app.initializeMatching(); err != nil {
		app.Cleanup()
		return nil, err
	}

	if err := app.initializeDelivery(); err != nil {
		app.Cleanup()
		return nil, err
	}

	app.Logger.Info("Application initialized",
		logging.Int("webhooks", len(hooks)),
		logging.Strings("destinations", app.Store.Names()))
	return app, nil
}

func (app *App) initializeDelivery() error {
	deps := delivery.Dependencies{
		HTTPClient: httpclient.NewHTTPClient(httpclient.WithTimeout(app.Config.DeliveryTimeout)),
		Breaker:    app.Config.BreakerConfig(),
		Logger:     app.Logger,
	}
	if app.RedisClient != nil {
		deps.Redis = app.RedisClient
	}

	registry := delivery.NewRegistry(deps)
	app.Dispatcher = delivery.NewDispatcher(app.Config.DeliveryTimeout)

	for _, hook := range app.Webhooks {
		sender, err := registry.Build(hook)
		if err != nil {
			return configError("failed to build sender", err)
		}
		app.Dispatcher.Add(hook.Name, hook.HookType, sender)
	}

	app.Logger.Info("Delivery initialized",
		logging.Int("destinations", app.Dispatcher.Len()),
		logging.Strings("hook_types", registry.GetAvailableTypes()),
		logging.Bool("breakers", deps.Breaker != nil))
	return nil
}

// Cleanup releases all resources
func (app *App) Cleanup() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
		app.RedisClient = nil
	}
}
