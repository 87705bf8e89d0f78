package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is an optional redis layer: a fast path for token blacklist checks
// and short-lived bilan caching. The database stays the source of truth; a
// nil Client disables caching entirely.
type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// BlacklistToken mirrors a revoked token with a TTL matching its natural
// expiry.
func (c *Client) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if c == nil || ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, "blacklist:"+token, "1", ttl).Err()
}

// IsTokenBlacklisted reports a cache hit. A miss or an unavailable cache is
// not authoritative; the caller must fall back to the store.
func (c *Client) IsTokenBlacklisted(ctx context.Context, token string) bool {
	if c == nil {
		return false
	}
	v, err := c.rdb.Get(ctx, "blacklist:"+token).Result()
	return err == nil && v == "1"
}

// SetBilan caches a serialized bilan response under the given period key.
func (c *Client) SetBilan(ctx context.Context, periode string, bilan interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(bilan)
	if err != nil {
		return fmt.Errorf("failed to marshal bilan: %w", err)
	}
	return c.rdb.Set(ctx, "bilan:"+periode, data, ttl).Err()
}

// GetBilan loads a cached bilan into dest, reporting whether it was found.
func (c *Client) GetBilan(ctx context.Context, periode string, dest interface{}) bool {
	if c == nil {
		return false
	}
	v, err := c.rdb.Get(ctx, "bilan:"+periode).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(v), dest) == nil
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
