package delivery

import (
	"context"

	"notification-router/internal/common/logging"
)

// Publisher is the part of the redis client used by RedisSender
type Publisher interface {
	Publish(ctx context.Context, channel string, message []byte) (int64, error)
}

// RedisSender publishes the raw payload on a redis channel
type RedisSender struct {
	channel   string
	publisher Publisher
}

// NewRedisSender creates a sender publishing on channel
func NewRedisSender(channel string, publisher Publisher) (*RedisSender, error) {
	if publisher == nil {
		return nil, ErrRedisUnavailable
	}
	if channel == "" {
		return nil, ErrMissingURL
	}
	return &RedisSender{channel: channel, publisher: publisher}, nil
}

func (r *RedisSender) Send(ctx context.Context, _ map[string]interface{}, raw []byte) error {
	receivers, err := r.publisher.Publish(ctx, r.channel, raw)
	if err != nil {
		return err
	}
	if receivers == 0 {
		logging.Debug("Published notification with no subscribers", logging.String("channel", r.channel))
	}
	return nil
}
