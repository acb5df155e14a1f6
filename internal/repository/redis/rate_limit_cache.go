package redis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"scheme-matcher/internal/client"
	"scheme-matcher/internal/util"
)

const ipRateLimitPrefix = "ip_rate_limit:"

// RateLimitCache tracks per-IP request counters for the auth endpoints
// using a fixed window. Counters expire with the window so no cleanup
// job is needed.
type RateLimitCache struct {
	client *client.RedisClient
}

func NewRateLimitCache(client *client.RedisClient) *RateLimitCache {
	return &RateLimitCache{client: client}
}

// IncrementIPCounter bumps the counter for an IP and returns the new
// count within the current window.
func (c *RateLimitCache) IncrementIPCounter(ctx context.Context, ipAddress string, window time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := ipRateLimitPrefix + ipAddress

	count, err := c.client.IncrWithExpire(ctx, key, window)
	if err != nil {
		util.Error("Failed to increment rate limit counter",
			zap.String("ip", ipAddress),
			zap.Duration("window", window),
			zap.Error(err))
		return 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	util.Debug("Rate limit counter incremented",
		zap.String("ip", ipAddress),
		zap.Int64("count", count))

	return int(count), nil
}
