package redisstore_test

import (
	"context"
	"testing"
	"time"

	redisstore "cryptoswap-service/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestTryReserve(t *testing.T) {
	mr, client := newClient(t)
	store := redisstore.New(client, time.Hour)

	ctx := context.Background()
	ok, err := store.TryReserve(ctx, "swap:k1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.TryReserve(ctx, "swap:k1")
	require.NoError(t, err)
	require.False(t, ok)

	require.True(t, mr.Exists("cryptoswap:idem:swap:k1"))
	require.Equal(t, time.Hour, mr.TTL("cryptoswap:idem:swap:k1"))

	mr.FastForward(time.Hour + time.Second)
	ok, err = store.TryReserve(ctx, "swap:k1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConnect(t *testing.T) {
	mr, _ := newClient(t)
	ctx := context.Background()

	client, err := redisstore.Connect(ctx, &redis.Options{Addr: mr.Addr()}, time.Second)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = redisstore.Connect(ctx, &redis.Options{Addr: "127.0.0.1:1"}, 300*time.Millisecond)
	require.Error(t, err)
}
