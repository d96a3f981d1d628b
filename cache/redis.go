package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const signedURLKeyPrefix = "signed_url:"

// RedisSignedURLCache stores presigned URLs in redis so repeated views of the
// same document across instances reuse one URL for its validity window.
// Expiry is delegated to redis; a miss or any transport error reads as a
// cache miss, since presigned URLs are cheap to reissue.
type RedisSignedURLCache struct {
	client *redis.Client
}

func NewRedisSignedURLCache(client *redis.Client) *RedisSignedURLCache {
	return &RedisSignedURLCache{client: client}
}

func (c *RedisSignedURLCache) Get(ctx context.Context, key string) (string, bool) {
	url, err := c.client.Get(ctx, signedURLKeyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return url, true
}

func (c *RedisSignedURLCache) Set(ctx context.Context, key string, url string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.client.Set(ctx, signedURLKeyPrefix+key, url, ttl)
}
