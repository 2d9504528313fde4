// Package delivery hands matched payloads to their destinations. Each
// configured webhook gets one Sender, built from its hook type through a
// Registry; a Dispatcher fans a payload out to the senders of every matched
// webhook.
package delivery

import (
	"context"
	"errors"
)

// Sender delivers one payload to one destination. payload is the decoded form
// used for matching; raw is the body exactly as received.
type Sender interface {
	Send(ctx context.Context, payload map[string]interface{}, raw []byte) error
}

// SenderFunc adapts a function to the Sender interface
type SenderFunc func(ctx context.Context, payload map[string]interface{}, raw []byte) error

func (f SenderFunc) Send(ctx context.Context, payload map[string]interface{}, raw []byte) error {
	return f(ctx, payload, raw)
}

var (
	// ErrUnknownHookType is returned when no factory is registered for a hook type
	ErrUnknownHookType = errors.New("unknown hook type")

	// ErrUnknownDestination is returned when delivering to a webhook with no sender
	ErrUnknownDestination = errors.New("unknown destination")

	// ErrMissingURL is returned when a sender needs a URL and none was configured
	ErrMissingURL = errors.New("missing url")

	// ErrRedisUnavailable is returned when a redis hook is configured without a redis client
	ErrRedisUnavailable = errors.New("redis is not configured")

	// ErrUnexpectedStatus is returned when an HTTP destination answers with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected status")
)
