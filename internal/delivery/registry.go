package delivery

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"notification-router/internal/circuitbreaker"
	"notification-router/internal/common/logging"
	"notification-router/internal/config"
)

// Dependencies are the shared resources senders are built from
type Dependencies struct {
	HTTPClient *http.Client
	Redis      Publisher
	Logger     logging.Logger

	// Breaker guards every non-debug sender when set
	Breaker *circuitbreaker.Config
}

// Factory builds the sender for one webhook
type Factory func(hook config.Webhook, deps Dependencies) (Sender, error)

// Registry maps hook types to sender factories
type Registry struct {
	factories map[string]Factory
	deps      Dependencies
	mu        sync.RWMutex
}

// NewRegistry creates a registry with the debug, http and redis hook types registered
func NewRegistry(deps Dependencies) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		deps:      deps,
	}
	r.Register(config.HookTypeDebug, newDebug)
	r.Register(config.HookTypeHTTP, newHTTP)
	r.Register(config.HookTypeRedis, newRedis)
	return r
}

func (r *Registry) Register(hookType string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[hookType] = factory
}

// Build creates the sender for hook
func (r *Registry) Build(hook config.Webhook) (Sender, error) {
	r.mu.RLock()
	factory, exists := r.factories[hook.HookType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s for webhook '%s' (available: %s)",
			ErrUnknownHookType, hook.HookType, hook.Name, strings.Join(r.GetAvailableTypes(), ", "))
	}

	sender, err := factory(hook, r.deps)
	if err != nil {
		return nil, fmt.Errorf("webhook '%s': %w", hook.Name, err)
	}

	if r.deps.Breaker != nil && hook.HookType != config.HookTypeDebug {
		sender = WithBreaker(sender, circuitbreaker.New(hook.Name, *r.deps.Breaker, r.deps.Logger))
	}
	return sender, nil
}

// GetAvailableTypes returns the registered hook types, sorted
func (r *Registry) GetAvailableTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for hookType := range r.factories {
		types = append(types, hookType)
	}
	sort.Strings(types)
	return types
}

func newDebug(hook config.Webhook, deps Dependencies) (Sender, error) {
	return NewDebugSender(hook.Name, hook.URL, hook.Token, deps.Logger), nil
}

func newHTTP(hook config.Webhook, deps Dependencies) (Sender, error) {
	return NewHTTPSender(hook.URL, hook.Token, deps.HTTPClient)
}

// newRedis publishes on the configured url, falling back to the webhook name
func newRedis(hook config.Webhook, deps Dependencies) (Sender, error) {
	channel := hook.URL
	if channel == "" {
		channel = hook.Name
	}
	return NewRedisSender(channel, deps.Redis)
}
