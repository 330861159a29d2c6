package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key this cache touches so it can safely
// share a Redis instance/database with other consumers.
const keyPrefix = "lessonsched:"

// RedisCache implements Cache on top of a go-redis/v9 client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing redis.Client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) namespaced(key string) string {
	return keyPrefix + key
}

// Get returns the cached Solution for key, or a miss if absent.
func (c *RedisCache) Get(ctx context.Context, key string) (*domain.Solution, bool, error) {
	raw, err := c.client.Get(ctx, c.namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var solution domain.Solution
	if err := json.Unmarshal(raw, &solution); err != nil {
		return nil, false, err
	}
	return &solution, true, nil
}

// Set stores a Solution under key. A zero ttl stores without
// expiration.
func (c *RedisCache) Set(ctx context.Context, key string, solution *domain.Solution, ttl time.Duration) error {
	raw, err := json.Marshal(solution)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.namespaced(key), raw, ttl).Err()
}
