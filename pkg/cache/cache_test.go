package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestMemoryStoreExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryStore(clock.Now)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "dashboard:1", []byte("payload"), 5*time.Minute))

	clock.now = clock.now.Add(4*time.Minute + 59*time.Second)
	value, err := store.Get(ctx, "dashboard:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)

	clock.now = clock.now.Add(time.Second)
	_, err = store.Get(ctx, "dashboard:1")
	assert.ErrorIs(t, err, errorvalues.ErrCacheMiss)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreDeleteAndPurge(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := cache.NewMemoryStore(clock.Now)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, store.Set(ctx, "forever", []byte("3"), 0))
	require.NoError(t, store.Delete(ctx, "b"))
	_, err := store.Get(ctx, "b")
	assert.ErrorIs(t, err, errorvalues.ErrCacheMiss)

	clock.now = clock.now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Purge())
	value, err := store.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), value)
}

func TestRedisStoreUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := cache.NewRedisStoreWithClient(client, "lumin:")
	ctx := context.Background()

	assert.Error(t, store.Ping(ctx))
	_, err := store.Get(ctx, "missing")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errorvalues.ErrCacheMiss)
}
