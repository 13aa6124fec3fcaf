package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Listen subscribes to the rate and swap channels and hands every message to
// fn until ctx is done.
func Listen(ctx context.Context, client *redis.Client, fn func(channel, payload string)) error {
	const op = "redisstore.Listen"
	sub := client.Subscribe(ctx, RateUpdatedChan, SwapCompletedChan)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("%s: subscription closed", op)
			}
			fn(msg.Channel, msg.Payload)
		}
	}
}
