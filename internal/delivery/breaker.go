package delivery

import (
	"context"

	"notification-router/internal/circuitbreaker"
)

type breakerSender struct {
	sender  Sender
	breaker *circuitbreaker.Breaker
}

// WithBreaker stops calling sender while its destination keeps failing
func WithBreaker(sender Sender, breaker *circuitbreaker.Breaker) Sender {
	return &breakerSender{sender: sender, breaker: breaker}
}

func (b *breakerSender) Send(ctx context.Context, payload map[string]interface{}, raw []byte) error {
	return b.breaker.Execute(func() error {
		return b.sender.Send(ctx, payload, raw)
	})
}
