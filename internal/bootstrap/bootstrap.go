package bootstrap

import (
	"context"
	"math/rand/v2"
	"time"

	"cryptoswap-service/internal/application"
	"cryptoswap-service/internal/config"
	"cryptoswap-service/internal/domain"
	"cryptoswap-service/internal/infrastructure/logx"
	redisstore "cryptoswap-service/internal/infrastructure/redis"
	"cryptoswap-service/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services are the Redis backed adapters. With IDEMPOTENCY_BACKEND=none they
// fall back to in-process no-ops and Ping is nil.
type Services struct {
	Idem     application.IdempotencyStore
	Rates    application.RateSink
	Notifier application.Notifier
	Ping     func(context.Context) error
}

// BuildRedis connects to Redis when enabled, retrying the first ping.
func BuildRedis(ctx context.Context, cfg config.Config) (Services, func(), error) {
	log := logx.L()
	logNotifier := application.LogNotifier{Log: log}
	if cfg.IdempotencyBackend != config.IdempotencyRedis {
		log.Info("redis disabled", zap.String("backend", cfg.IdempotencyBackend))
		return Services{
			Idem:     application.NoopIdempotency{},
			Rates:    application.NoopSink,
			Notifier: logNotifier,
		}, func() {}, nil
	}
	rdb, err := redisstore.Connect(ctx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.RedisConnectTimeout)
	if err != nil {
		return Services{}, func() {}, err
	}
	cleanup := func() {
		log.Info("closing redis")
		_ = rdb.Close()
	}
	return Services{
		Idem:     redisstore.New(rdb, cfg.RedisTTL),
		Rates:    redisstore.NewRateCache(rdb, cfg.RateCacheTTL),
		Notifier: application.Notifiers{logNotifier, redisstore.NewNotifier(rdb)},
		Ping:     func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}, cleanup, nil
}

// BuildSession assembles the trading session from config and adapters.
func BuildSession(cfg config.Config, svcs Services, m application.Metrics) *application.Session {
	seed := cfg.RandSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log := logx.L()
	log.Info("session configured",
		zap.String("pair", string(domain.NewPair(cfg.PairBase, cfg.PairQuote))),
		zap.Float64("seed_rate", cfg.SeedRate),
		zap.Uint64("rand_seed", seed),
	)
	return application.NewSession(application.SessionConfig{
		Pair:       domain.NewPair(cfg.PairBase, cfg.PairQuote),
		Seed:       domain.ExchangeRate{Rate: cfg.SeedRate, Change24h: cfg.SeedChange24h},
		RateStep:   cfg.RateStep,
		ChangeStep: cfg.ChangeStep,
		SwapDelay:  cfg.SwapDelay,
	},
		application.WithRand(rand.New(rand.NewPCG(seed, seed^0x5eed))),
		application.WithIdempotency(svcs.Idem),
		application.WithNotifier(svcs.Notifier),
		application.WithMetrics(m),
		application.WithLogger(log),
	)
}

// BuildRateWorker returns the ticker that drives the session's rate.
func BuildRateWorker(cfg config.Config, s *application.Session, svcs Services, m application.Metrics) application.Worker {
	return &worker.RateWorker{
		Rates:   s,
		Sink:    svcs.Rates,
		Metrics: m,
		Every:   cfg.TickInterval,
		Log:     logx.L(),
	}
}
