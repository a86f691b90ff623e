package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/BielosX/wombat/poke-proxy/src/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := cache.NewRedisStore(ctx, &cache.RedisConfig{
		Addr:      addr,
		Retention: time.Minute,
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	key := "poke-proxy-test-" + time.Now().Format(time.RFC3339Nano)

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrNotFound)

	entry := &cache.Entry{Body: []byte(`{"id":1}`), ETag: "e", FetchedAt: time.Now().UTC()}
	require.NoError(t, store.Put(ctx, key, entry))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(got.Body))
	assert.Equal(t, "e", got.ETag)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := cache.NewRedisStore(ctx, &cache.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop().Sugar())

	assert.Error(t, err)
}
