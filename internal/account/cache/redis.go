package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

// RedisCache stores JSON encoded user snapshots in Redis with a native TTL.
type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

var _ Cache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, email string) (*entity.User, bool, error) {
	b, err := c.client.Get(ctx, emailKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var u entity.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, false, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, true, nil
}

func (c *RedisCache) Set(ctx context.Context, email string, u *entity.User, ttl time.Duration) error {
	if u == nil {
		return nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := c.client.Set(ctx, emailKey(email), b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, emailKey(email)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
