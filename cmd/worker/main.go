package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"cryptoswap-service/internal/config"
	"cryptoswap-service/internal/domain"
	"cryptoswap-service/internal/infrastructure/logx"
	redisstore "cryptoswap-service/internal/infrastructure/redis"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

// The worker follows the rate and swap events an api process publishes.
func main() {
	log := logx.L()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	_ = logx.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisstore.Connect(ctx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.RedisConnectTimeout)
	if err != nil {
		log.Fatal("connect redis", zap.Error(err))
	}
	defer rdb.Close()

	pair := domain.NewPair(cfg.PairBase, cfg.PairQuote)
	cache := redisstore.NewRateCache(rdb, cfg.RateCacheTTL)
	switch r, err := cache.Latest(ctx, pair); {
	case errors.Is(err, domain.ErrNotFound):
		log.Info("no_cached_rate", zap.String("pair", string(pair)))
	case err != nil:
		log.Warn("read_cached_rate", zap.Error(err))
	default:
		log.Info("cached_rate",
			zap.String("pair", string(pair)),
			zap.Float64("rate", r.Rate),
			zap.Float64("change_24h", r.Change24h),
			zap.Time("last_updated", r.LastUpdated),
		)
	}

	log.Info("listener_started", zap.String("addr", cfg.RedisAddr))
	err = redisstore.Listen(ctx, rdb, func(channel, payload string) {
		log.Info("event", zap.String("channel", channel), zap.String("payload", payload))
	})
	if err != nil {
		log.Fatal("listen", zap.Error(err))
	}
	log.Info("listener_stopped")
}
