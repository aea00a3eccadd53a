package llm

import (
	"context"
	"errors"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores llm responses in redis with a ttl
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisCache makes a cache on top of redis client, ttl defaults to 7 days
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisCache{client: client, prefix: "aidigest:llm:", ttl: ttl}
}

// Get returns cached response, cache errors count as a miss
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			lgr.Printf("[WARN] llm cache get failed: %v", err)
		}
		return "", false
	}
	return v, true
}

// Set stores response, failures are logged and ignored
func (r *RedisCache) Set(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		lgr.Printf("[WARN] llm cache set failed: %v", err)
	}
}
