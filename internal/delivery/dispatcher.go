package delivery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "notification-router/internal/common/errors"
	"notification-router/internal/common/logging"
	"notification-router/internal/metrics"
)

// Result is the outcome of delivering to one webhook
type Result struct {
	Webhook string
	Err     error
}

type destination struct {
	hookType string
	sender   Sender
}

// Dispatcher delivers payloads to named destinations
type Dispatcher struct {
	destinations map[string]destination
	timeout      time.Duration
	mu           sync.RWMutex
}

// NewDispatcher creates a dispatcher. A positive timeout bounds each delivery.
func NewDispatcher(timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		destinations: make(map[string]destination),
		timeout:      timeout,
	}
}

// Add registers the sender for a webhook, replacing any previous one
func (d *Dispatcher) Add(name, hookType string, sender Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destinations[name] = destination{hookType: hookType, sender: sender}
}

// Len returns the number of registered destinations
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.destinations)
}

// Deliver sends the payload to every named webhook concurrently. Results are
// returned in the order of names; a failure never stops the other deliveries.
func (d *Dispatcher) Deliver(ctx context.Context, names []string, payload map[string]interface{}, raw []byte) []Result {
	results := make([]Result, len(names))

	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			results[i] = Result{Webhook: name, Err: d.deliverOne(ctx, name, payload, raw)}
			return nil
		})
	}
	g.Wait()

	return results
}

func (d *Dispatcher) deliverOne(ctx context.Context, name string, payload map[string]interface{}, raw []byte) error {
	d.mu.RLock()
	dest, ok := d.destinations[name]
	d.mu.RUnlock()

	if !ok {
		return apperrors.DeliveryError(name, fmt.Errorf("%w: %s", ErrUnknownDestination, name))
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := dest.sender.Send(ctx, payload, raw)
	metrics.DeliveryDuration.WithLabelValues(dest.hookType).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Deliveries.WithLabelValues(name, dest.hookType, "error").Inc()
		logging.Error("Delivery failed", err,
			logging.String("webhook", name),
			logging.String("hook_type", dest.hookType))
		return apperrors.DeliveryError(name, err)
	}

	metrics.Deliveries.WithLabelValues(name, dest.hookType, "success").Inc()
	logging.Debug("Delivered notification",
		logging.String("webhook", name),
		logging.String("hook_type", dest.hookType),
		logging.Duration("duration", time.Since(start)))
	return nil
}

// Failed returns the webhooks whose delivery failed
func Failed(results []Result) []string {
	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Webhook)
		}
	}
	return failed
}
