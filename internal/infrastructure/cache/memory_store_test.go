package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemorySessionStoreExpiresEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }

	if err := store.Save(ctx, "access_token:1:abc", time.Minute); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if ok, _ := store.Exists(ctx, "access_token:1:abc"); !ok {
		t.Fatal("expected key to exist before expiry")
	}

	now = now.Add(time.Minute)
	if ok, _ := store.Exists(ctx, "access_token:1:abc"); ok {
		t.Fatal("expected key to expire at ttl")
	}
}

func TestMemorySessionStoreSavePrunesExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }

	_ = store.Save(ctx, "access_token:1:old", time.Minute)
	_ = store.Save(ctx, "access_token:1:long", time.Hour)

	now = now.Add(2 * time.Minute)
	if err := store.Save(ctx, "access_token:1:new", time.Minute); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	if len(store.entries) != 2 {
		t.Fatalf("expected expired entry pruned, have %v", store.entries)
	}
	if _, ok := store.entries["access_token:1:old"]; ok {
		t.Fatal("expected access_token:1:old to be removed")
	}
}

func TestMemorySessionStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	_ = store.Save(ctx, "a", time.Hour)
	_ = store.Save(ctx, "b", time.Hour)
	if err := store.Delete(ctx, "a", "missing"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	if ok, _ := store.Exists(ctx, "a"); ok {
		t.Fatal("expected a to be deleted")
	}
	if ok, _ := store.Exists(ctx, "b"); !ok {
		t.Fatal("expected b to survive")
	}
}

func TestMemoryAttemptLimiterWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryAttemptLimiter(3, 10*time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if blocked, _ := limiter.TooManyAttempts(ctx, "maria"); blocked {
			t.Fatalf("blocked after %d failures", i)
		}
		_ = limiter.RecordFailure(ctx, "maria")
	}
	if blocked, _ := limiter.TooManyAttempts(ctx, "maria"); !blocked {
		t.Fatal("expected block after reaching the limit")
	}
	if blocked, _ := limiter.TooManyAttempts(ctx, "joao"); blocked {
		t.Fatal("limits must be per key")
	}

	now = now.Add(10 * time.Minute)
	if blocked, _ := limiter.TooManyAttempts(ctx, "maria"); blocked {
		t.Fatal("expected failures outside the window to be pruned")
	}
}

func TestMemoryAttemptLimiterReset(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryAttemptLimiter(1, time.Hour)

	_ = limiter.RecordFailure(ctx, "maria")
	if blocked, _ := limiter.TooManyAttempts(ctx, "maria"); !blocked {
		t.Fatal("expected block after one failure with limit 1")
	}
	_ = limiter.Reset(ctx, "maria")
	if blocked, _ := limiter.TooManyAttempts(ctx, "maria"); blocked {
		t.Fatal("expected reset to clear failures")
	}
}

func TestMemoryAttemptLimiterDisabled(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryAttemptLimiter(0, time.Hour)
	_ = limiter.RecordFailure(ctx, "maria")
	if blocked, _ := limiter.TooManyAttempts(ctx, "maria"); blocked {
		t.Fatal("limit 0 disables the limiter")
	}
}
