package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter persists blobs in Redis.  Keys are namespaced with a
// configurable prefix so several deployments can share one instance.
// Values are stored without expiry: reservation history must survive
// arbitrary idle periods.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

// NewRedisAdapter wraps an existing Redis client.  The prefix may be
// empty, in which case keys are used verbatim.
func NewRedisAdapter(client *redis.Client, prefix string) *RedisAdapter {
	return &RedisAdapter{client: client, prefix: prefix}
}

func (r *RedisAdapter) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q from redis: %w", key, err)
	}
	return val, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q in redis: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) Remove(ctx context.Context, key string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %q from redis: %w", key, err)
	}
	return nil
}

// Ping verifies the connection to Redis.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
