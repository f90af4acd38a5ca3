package storage

import (
	"context"
	"encoding/json"
	"time"

	"cafe-pos/internal/domain"

	"github.com/redis/go-redis/v9"
)

// MenuCache keeps JSON-encoded menu listings in Redis. Entries expire after
// TTL and every menu write drops the whole menu: namespace.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) MenuKey() string {
	return "menu:all"
}

func (c *MenuCache) CategoryKey(category string) string {
	return "menu:category:" + category
}

func (c *MenuCache) Get(ctx context.Context, key string) ([]domain.MenuItem, error) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *MenuCache) Set(ctx context.Context, key string, items []domain.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

func (c *MenuCache) Invalidate(ctx context.Context) error {
	keys, err := c.Client.Keys(ctx, "menu:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
