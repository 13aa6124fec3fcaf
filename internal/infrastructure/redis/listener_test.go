package redisstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cryptoswap-service/internal/domain"
	redisstore "cryptoswap-service/internal/infrastructure/redis"

	"github.com/stretchr/testify/require"
)

func TestListen(t *testing.T) {
	mr, client := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan error, 1)
	go func() {
		done <- redisstore.Listen(ctx, client, func(channel, _ string) {
			mu.Lock()
			got = append(got, channel)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		return len(mr.PubSubChannels("")) == 2
	}, time.Second, 5*time.Millisecond)

	cache := redisstore.NewRateCache(client, time.Minute)
	require.NoError(t, cache.PublishRate(ctx, domain.NewPair("XRP", "BTC"), domain.ExchangeRate{Rate: 1}))
	require.NoError(t, redisstore.NewNotifier(client).SwapCompleted(ctx, domain.Swap{ID: "swap-1"}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	require.Equal(t, []string{redisstore.RateUpdatedChan, redisstore.SwapCompletedChan}, got)
}
