package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis under a fixed key prefix so several
// machines can share query and render results.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures NewRedisCache.
type RedisOptions struct {
	Addr     string // host:port
	Password string
	DB       int
	Prefix   string // prepended to every key, e.g. "viewstack:"
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying transient network failures.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis cache: address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	c := &RedisCache{client: client, prefix: opts.Prefix}

	err := RetryWithBackoff(ctx, func() error {
		return classify(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis cache %s: %w", opts.Addr, err)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get implements Cache. redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(err)
	}
	return data, true, nil
}

// Set implements Cache. Redis expires the key itself.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, c.prefix+key).Err())
}

// Clear deletes every key under the prefix. It refuses to run without a
// prefix so it never flushes a shared database.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	if c.prefix == "" {
		return 0, fmt.Errorf("redis cache: refusing to clear without a key prefix")
	}
	n := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, classify(err)
		}
		n++
	}
	return n, classify(iter.Err())
}

// Close closes the client.
func (c *RedisCache) Close() error { return c.client.Close() }

// classify marks network-level failures as retryable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
