// README: Redis-backed distance cache.
package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "distance:%s:%s"

type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{redis: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, origin, destination string) (Estimate, bool, error) {
	val, err := c.redis.Get(ctx, cacheKey(origin, destination)).Bytes()
	if err == redis.Nil {
		return Estimate{}, false, nil
	}
	if err != nil {
		return Estimate{}, false, err
	}
	var e Estimate
	if err := json.Unmarshal(val, &e); err != nil {
		return Estimate{}, false, err
	}
	return e, true, nil
}

func (c *RedisCache) Set(ctx context.Context, origin, destination string, e Estimate) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, cacheKey(origin, destination), b, c.ttl).Err()
}

func cacheKey(origin, destination string) string {
	return fmt.Sprintf(cacheKeyPrefix, normalize(origin), normalize(destination))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
