// README: Redis client initialization for the distance cache.
package infra

import "github.com/redis/go-redis/v9"

// NewRedis returns nil when addr is empty; callers treat that as "no cache".
func NewRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
