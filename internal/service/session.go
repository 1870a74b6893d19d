package service

import (
	"context"
	"fmt"
	"time"
)

// SessionStore tracks issued token ids so they can be revoked before expiry.
type SessionStore interface {
	Save(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// AttemptLimiter counts failures per key inside a sliding window.
type AttemptLimiter interface {
	TooManyAttempts(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

func AccessTokenKey(userID uint, tokenID string) string {
	return fmt.Sprintf("access_token:%d:%s", userID, tokenID)
}

func RefreshTokenKey(userID uint, tokenID string) string {
	return fmt.Sprintf("refresh_token:%d:%s", userID, tokenID)
}
