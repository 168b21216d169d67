package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRegistry stores one key per token. Single-key EXISTS and DEL are
// atomic, so concurrent refreshes from many processes stay consistent.
type RedisRegistry struct {
	client    redis.UniversalClient
	keyPrefix string
}

func NewRedisRegistry(client redis.UniversalClient, keyPrefix string) *RedisRegistry {
	if keyPrefix == "" {
		keyPrefix = "refresh-token:"
	}
	return &RedisRegistry{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisRegistry) key(token string) string {
	return fmt.Sprintf("%s%s", r.keyPrefix, tokenKey(token))
}

// Add stores the token; a ttl <= 0 keeps it until removed.
func (r *RedisRegistry) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.key(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Contains(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n == 1, nil
}

func (r *RedisRegistry) Remove(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
