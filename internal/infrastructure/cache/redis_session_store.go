package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, key, "valid", ttl).Err()
}

func (s *RedisSessionStore) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// RedisAttemptLimiter keeps one counter per key that expires window after the first failure.
type RedisAttemptLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisAttemptLimiter(client *redis.Client, limit int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		client: client,
		prefix: "login_attempts:",
		limit:  limit,
		window: window,
	}
}

func (l *RedisAttemptLimiter) TooManyAttempts(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return false, nil
	}
	count, err := l.client.Get(ctx, l.prefix+key).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= l.limit, nil
}

// RecordFailure creates the counter with its TTL and increments it in one
// MULTI/EXEC, so a counter never exists without an expiry. INCR keeps the TTL
// set by the first failure.
func (l *RedisAttemptLimiter) RecordFailure(ctx context.Context, key string) error {
	redisKey := l.prefix + key
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, l.window)
		pipe.Incr(ctx, redisKey)
		return nil
	})
	return err
}

func (l *RedisAttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}
