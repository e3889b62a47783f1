package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	// TTLSnapshot keeps the last-known-good feed across daemon restarts.
	// It only serves as a warm start before the first refresh completes,
	// so staleness is acceptable.
	TTLSnapshot = 24 * time.Hour
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixFeed = "feed:"
)

const keySnapshot = PrefixFeed + "snapshot"

// Service Redis cache service interface
type Service interface {
	// Generic operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Feed snapshot
	GetSnapshot(ctx context.Context, dest interface{}) error
	SetSnapshot(ctx context.Context, posts interface{}) error
	InvalidateSnapshot(ctx context.Context) error

	// Utilities
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed cache implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service. A nil client is tolerated: writes
// become no-ops and reads report unavailability, so the daemon runs without
// Redis at reduced comfort.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether Redis is wired in
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads and unmarshals a cached value
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set marshals and stores a value
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes cached values
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// GetSnapshot loads the last persisted feed snapshot
func (c *redisCache) GetSnapshot(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, keySnapshot, dest)
}

// SetSnapshot persists the normalized feed after a successful refresh
func (c *redisCache) SetSnapshot(ctx context.Context, posts interface{}) error {
	return c.Set(ctx, keySnapshot, posts, TTLSnapshot)
}

// InvalidateSnapshot drops the persisted snapshot
func (c *redisCache) InvalidateSnapshot(ctx context.Context) error {
	return c.Delete(ctx, keySnapshot)
}
