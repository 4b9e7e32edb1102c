package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"k8s.io/utils/clock"
)

// RateLimiter caps how many alerts per key (usually a location) go out in a
// sliding window. Alerts are kept in a Redis sorted set scored by the time
// they were raised, so dashboard processes sharing a Redis share the budget.
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	clock  clock.PassiveClock
	logger *slog.Logger
	seq    atomic.Uint64
}

// admitAlert trims alerts older than the window and admits the new one if
// the budget allows. It returns {1, 0} when admitted and {0, wait_ms} when
// denied, wait_ms being how long until the oldest alert leaves the window.
var admitAlert = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local budget = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

if redis.call('ZCARD', key) >= budget then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    return {0, tonumber(oldest[2]) + window - now}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, 0}
`)

// NewRateLimiter creates a limiter. A non-positive window means one second
// and a nil clock uses the wall clock.
func NewRateLimiter(client *redis.Client, window time.Duration, clk clock.PassiveClock, logger *slog.Logger) *RateLimiter {
	if window <= 0 {
		window = time.Second
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &RateLimiter{
		client: client,
		window: window,
		clock:  clk,
		logger: logger,
	}
}

func alertBudgetKey(key string) string {
	return "alert_rl:" + key
}

// Allow reports whether another alert for key fits in the current window.
// A limit of zero or less disables throttling. Redis failures let the alert through.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int) bool {
	if limit <= 0 {
		return true
	}

	now := rl.clock.Now()
	member := fmt.Sprintf("%d-%d", now.UnixNano(), rl.seq.Add(1))

	res, err := admitAlert.Run(ctx, rl.client, []string{alertBudgetKey(key)},
		now.UnixMilli(), rl.window.Milliseconds(), limit, member,
	).Int64Slice()
	if err != nil || len(res) != 2 {
		rl.logger.Error("alert rate limiter script failed", "error", err, "key", key)
		return true
	}

	if res[0] == 0 {
		rl.logger.Debug("alert rate limited",
			"key", key,
			"limit", limit,
			"retry_after", (time.Duration(res[1]) * time.Millisecond).String(),
		)
		return false
	}
	return true
}
