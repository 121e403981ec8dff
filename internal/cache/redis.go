package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) (*RedisCache, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func (r *RedisCache) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := r.client.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}

	return n > 0, nil
}

func (r *RedisCache) MarkProcessed(ctx context.Context, eventID string) error {
	processedAt := time.Now().UTC().Format(time.RFC3339)

	if err := r.client.SetNX(ctx, eventKey(eventID), processedAt, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis setnx failed: %w", err)
	}

	return nil
}
