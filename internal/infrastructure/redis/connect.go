package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Connect opens a client and retries PING with exponential backoff until it
// answers or maxElapsed passes.
func Connect(ctx context.Context, opts *redis.Options, maxElapsed time.Duration) (*redis.Client, error) {
	client := redis.NewClient(opts)

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = maxElapsed

	op := func() error {
		return client.Ping(ctx).Err()
	}
	if err := backoff.Retry(op, backoff.WithContext(exp, ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
