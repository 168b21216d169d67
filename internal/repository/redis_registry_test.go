package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRegistry(t *testing.T) (*RedisRegistry, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRegistry(rdb, "rt:"), mr
}

func TestRedisRegistry_AddContainsRemove(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRegistry(t)

	require.NoError(t, r.Add(ctx, "rt-123", time.Hour))

	ok, err := r.Contains(ctx, "rt-123")
	require.NoError(t, err)
	assert.True(t, ok)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "rt:"))
	assert.NotContains(t, keys[0], "rt-123", "raw token must not be stored")

	require.NoError(t, r.Remove(ctx, "rt-123"))
	require.NoError(t, r.Remove(ctx, "rt-123"))

	ok, err = r.Contains(ctx, "rt-123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRegistry_TTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRegistry(t)

	require.NoError(t, r.Add(ctx, "short", time.Minute))
	require.NoError(t, r.Add(ctx, "forever", 0))

	mr.FastForward(2 * time.Minute)

	ok, err := r.Contains(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Contains(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRegistry_Unavailable(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRegistry(t)
	mr.Close()

	_, err := r.Contains(ctx, "rt-123")
	assert.Error(t, err)
	assert.Error(t, r.Remove(ctx, "rt-123"))
	assert.Error(t, r.Ping(ctx))
}

func TestNewRedisRegistry_DefaultPrefix(t *testing.T) {
	r := NewRedisRegistry(nil, "")
	assert.Equal(t, "refresh-token:"+tokenKey("x"), r.key("x"))
}
