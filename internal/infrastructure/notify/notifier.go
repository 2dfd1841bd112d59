// Package notify delivers status-change notifications. The Redis notifier
// publishes to a channel downstream consumers (email, SMS, webhooks)
// subscribe to; the log notifier is the fallback when no broker is
// configured.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// Channel is the Redis pub/sub channel status notifications go out on.
const Channel = "notifications:status"

// RedisNotifier publishes notifications to the Redis channel.
type RedisNotifier struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisNotifier(client *redis.Client, logger zerolog.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

func (n *RedisNotifier) Notify(ctx context.Context, notification ports.StatusNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	n.logger.Debug().
		Str("tracking_number", notification.TrackingNumber).
		Str("status", string(notification.Status)).
		Msg("notification published")
	return nil
}

// LogNotifier writes notifications to the log only.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, notification ports.StatusNotification) error {
	n.logger.Info().
		Str("customer_id", notification.CustomerID).
		Str("tracking_number", notification.TrackingNumber).
		Str("status", string(notification.Status)).
		Str("message", notification.Message).
		Msg("status notification")
	return nil
}
