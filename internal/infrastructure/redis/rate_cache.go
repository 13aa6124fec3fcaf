package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cryptoswap-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	ratePrefix      = "cryptoswap:rate:"
	RateUpdatedChan = "rate_updated"
)

// RateMessage is the payload published on RateUpdatedChan.
type RateMessage struct {
	Pair        string    `json:"pair"`
	Rate        float64   `json:"rate"`
	Change24h   float64   `json:"change_24h"`
	LastUpdated time.Time `json:"last_updated"`
}

// RateCache keeps the latest rate per pair in a hash and announces every
// update on RateUpdatedChan.
type RateCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{Client: client, TTL: ttl}
}

func RateKey(pair domain.Pair) string { return ratePrefix + string(pair) }

func (c *RateCache) PublishRate(ctx context.Context, pair domain.Pair, r domain.ExchangeRate) error {
	const op = "redisstore.PublishRate"
	payload, err := json.Marshal(RateMessage{
		Pair:        string(pair),
		Rate:        r.Rate,
		Change24h:   r.Change24h,
		LastUpdated: r.LastUpdated.UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	key := RateKey(pair)
	pipe := c.Client.TxPipeline()
	pipe.HSet(ctx, key,
		"rate", strconv.FormatFloat(r.Rate, 'g', -1, 64),
		"change_24h", strconv.FormatFloat(r.Change24h, 'g', -1, 64),
		"last_updated", r.LastUpdated.UTC().Format(time.RFC3339Nano),
	)
	if c.TTL > 0 {
		pipe.Expire(ctx, key, c.TTL)
	}
	pipe.Publish(ctx, RateUpdatedChan, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Latest reads the cached rate for pair. domain.ErrNotFound when absent.
func (c *RateCache) Latest(ctx context.Context, pair domain.Pair) (domain.ExchangeRate, error) {
	const op = "redisstore.Latest"
	vals, err := c.Client.HGetAll(ctx, RateKey(pair)).Result()
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(vals) == 0 {
		return domain.ExchangeRate{}, domain.ErrNotFound
	}
	var out domain.ExchangeRate
	if out.Rate, err = strconv.ParseFloat(vals["rate"], 64); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%s: rate: %w", op, err)
	}
	if out.Change24h, err = strconv.ParseFloat(vals["change_24h"], 64); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%s: change: %w", op, err)
	}
	if out.LastUpdated, err = time.Parse(time.RFC3339Nano, vals["last_updated"]); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%s: last_updated: %w", op, err)
	}
	return out, nil
}
