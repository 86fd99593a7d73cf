package sheets

import (
	"context"
	"errors"
	"time"

	rediswrap "github.com/chocovilla/chocovilla-backend/pkg/redis"
)

// RedisCache adapts the shared redis client into the revalidation cache.
// Payloads expire on a short window so content stays near-fresh without a
// fetch per page view.
type RedisCache struct {
	client *rediswrap.Client
	ttl    time.Duration
}

func NewRedisCache(client *rediswrap.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, sheetRange string) (string, bool, error) {
	if c == nil || c.client == nil {
		return "", false, nil
	}
	payload, err := c.client.Get(ctx, rediswrap.SheetKey(sheetRange))
	if err != nil {
		if errors.Is(err, rediswrap.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

func (c *RedisCache) Set(ctx context.Context, sheetRange, payload string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, rediswrap.SheetKey(sheetRange), payload, c.ttl)
}
