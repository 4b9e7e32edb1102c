package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses a redis:// URL and checks the server is reachable.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// RedisNotifier publishes alerts as JSON on a Redis pub/sub channel so any
// number of external sirens can subscribe.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	limiter *RateLimiter
	limit   int
	logger  *slog.Logger
}

// NewRedisNotifier creates a publisher. A nil limiter or a limit of zero disables throttling.
func NewRedisNotifier(client *redis.Client, channel string, limiter *RateLimiter, limit int, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		limiter: limiter,
		limit:   limit,
		logger:  logger,
	}
}

func (n *RedisNotifier) Notify(ctx context.Context, alert Alert) error {
	key := alert.LocationID
	if key == "" {
		key = alert.Kind
	}
	if n.limiter != nil && !n.limiter.Allow(ctx, key, n.limit) {
		return nil
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshaling alert: %w", err)
	}

	receivers, err := n.client.Publish(ctx, n.channel, data).Result()
	if err != nil {
		return fmt.Errorf("publishing alert to %s: %w", n.channel, err)
	}

	n.logger.Debug("alert published",
		"channel", n.channel,
		"kind", alert.Kind,
		"receivers", receivers,
	)
	return nil
}
