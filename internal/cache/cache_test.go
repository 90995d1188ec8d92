package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/socialhub/internal/config"
)

type payload struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedis(client, "test:")
}

func TestRedis_SetGet(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "trends:US:24", payload{Items: []string{"a", "b"}, Count: 2}, TrendsTTL))
	assert.True(t, mr.Exists("test:trends:US:24"))

	var got payload
	found, err := c.Get(ctx, "trends:US:24", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got.Items)
	assert.Equal(t, 2, got.Count)
}

func TestRedis_Miss(t *testing.T) {
	_, c := newTestRedis(t)

	var got payload
	found, err := c.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_Expiry(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "news:top", payload{Count: 1}, NewsTTL))
	mr.FastForward(NewsTTL + time.Second)

	var got payload
	found, err := c.Get(ctx, "news:top", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_CorruptValue(t *testing.T) {
	mr, c := newTestRedis(t)
	require.NoError(t, mr.Set("test:bad", "not-json"))

	var got payload
	found, err := c.Get(context.Background(), "bad", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	require.NoError(t, c.Set(context.Background(), "k", 1, time.Minute))

	var v int
	found, err := c.Get(context.Background(), "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
