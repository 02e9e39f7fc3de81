package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)}
	store := newInMemoryIdempotencyStore(time.Hour, clock.Now)
	defer store.Close()
	ctx := context.Background()
	key := shared.IdempotencyKey("doc-callback", "7c1f", "completed")

	first, err := store.MarkProcessed(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.MarkProcessed(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, again, "duplicate within ttl")

	processed, err := store.IsProcessed(ctx, key)
	require.NoError(t, err)
	assert.True(t, processed)

	clock.Advance(time.Minute)

	processed, err = store.IsProcessed(ctx, key)
	require.NoError(t, err)
	assert.False(t, processed, "expired at exactly ttl")

	reopened, err := store.MarkProcessed(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, reopened)
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)}
	store := newInMemoryIdempotencyStore(time.Hour, clock.Now)
	defer store.Close()
	ctx := context.Background()

	_, _ = store.MarkProcessed(ctx, "short", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Len())

	clock.Advance(time.Minute)
	store.sweep()
	assert.Equal(t, 1, store.Len())

	processed, err := store.IsProcessed(ctx, "long")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentMark(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.MarkProcessed(ctx, "accrual:sub-1", time.Hour)
			if err == nil && ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestIdempotencyStoreFactory_CreateStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory when redis is not configured", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.RedisConfig{})
		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	unreachable := config.RedisConfig{Host: "redis.invalid", Port: 6379}
	failingDial := func(context.Context, config.RedisConfig) (shared.IdempotencyStore, error) {
		return nil, errors.New("dial tcp: no such host")
	}

	t.Run("falls back when redis is unreachable", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(unreachable)
		f.dial = failingDial
		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("fails when fallback is disabled", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(unreachable, WithInMemoryFallback(false))
		f.dial = failingDial
		_, err := f.CreateStore(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required")
	})

	t.Run("uses the dialed store", func(t *testing.T) {
		want := NewInMemoryIdempotencyStore()
		defer want.Close()
		f := NewIdempotencyStoreFactory(config.RedisConfig{Host: "redis", Port: 6379})
		f.dial = func(_ context.Context, cfg config.RedisConfig) (shared.IdempotencyStore, error) {
			assert.Equal(t, "redis:6379", cfg.Addr())
			return want, nil
		}
		got, err := f.CreateStore(ctx)
		require.NoError(t, err)
		assert.Same(t, want, got)
	})
}

func ExampleIdempotencyStoreFactory() {
	f := NewIdempotencyStoreFactory(config.RedisConfig{})
	store, _ := f.CreateStore(context.Background())
	defer store.Close()

	first, _ := store.MarkProcessed(context.Background(), "doc-callback:7c1f:completed", time.Hour)
	second, _ := store.MarkProcessed(context.Background(), "doc-callback:7c1f:completed", time.Hour)
	fmt.Println(first, second)
	// Output: true false
}
