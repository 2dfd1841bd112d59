package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const brokerPingTimeout = 5 * time.Second

// BrokerConfig points the notifier at its Redis broker.
type BrokerConfig struct {
	Addr string
	DB   int
}

// ConnectBroker opens the Redis connection notifications publish over and
// verifies it with a ping before anything depends on it.
func ConnectBroker(ctx context.Context, cfg BrokerConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, brokerPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("notification broker ping: %w", err)
	}
	return client, nil
}
