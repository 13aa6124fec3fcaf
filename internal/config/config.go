package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cryptoswap-service/internal/domain"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	IdempotencyRedis = "redis"
	IdempotencyNone  = "none"
)

type Config struct {
	// Common
	Env      string `env:"ENV" env-default:"local"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	// API
	Port            string        `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	// Session
	PairBase      string        `env:"PAIR_BASE" env-default:"XRP"`
	PairQuote     string        `env:"PAIR_QUOTE" env-default:"BTC"`
	SeedRate      float64       `env:"SEED_RATE" env-default:"0.000016"`
	SeedChange24h float64       `env:"SEED_CHANGE_24H" env-default:"2.34"`
	TickInterval  time.Duration `env:"TICK_INTERVAL" env-default:"5s"`
	RateStep      float64       `env:"RATE_STEP" env-default:"0.02"`
	ChangeStep    float64       `env:"CHANGE_STEP" env-default:"0.5"`
	SwapDelay     time.Duration `env:"SWAP_DELAY" env-default:"2s"`
	// RandSeed pins the simulator; 0 seeds from the clock.
	RandSeed uint64 `env:"RAND_SEED" env-default:"0"`
	// Redis (idempotency, rate cache, notifications)
	IdempotencyBackend  string        `env:"IDEMPOTENCY_BACKEND" env-default:"redis"`
	RedisAddr           string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" env-default:"0"`
	RedisTTL            time.Duration `env:"IDEMPOTENCY_TTL" env-default:"24h"`
	RateCacheTTL        time.Duration `env:"RATE_CACHE_TTL" env-default:"1m"`
	RedisConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" env-default:"10s"`
}

// Load reads environment variables and applies defaults. A .env file, if
// any, is loaded by the caller before this runs.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	cfg.PairBase = strings.ToUpper(cfg.PairBase)
	cfg.PairQuote = strings.ToUpper(cfg.PairQuote)
	cfg.IdempotencyBackend = strings.ToLower(cfg.IdempotencyBackend)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if !(c.SeedRate > 0) {
		errs = append(errs, fmt.Errorf("SEED_RATE must be positive, got %v", c.SeedRate))
	}
	if !(c.RateStep > 0 && c.RateStep < 2) {
		errs = append(errs, fmt.Errorf("RATE_STEP must be in (0, 2), got %v", c.RateStep))
	}
	if !(c.ChangeStep > 0) {
		errs = append(errs, fmt.Errorf("CHANGE_STEP must be positive, got %v", c.ChangeStep))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, errors.New("TICK_INTERVAL must be positive"))
	}
	if c.SwapDelay <= 0 {
		errs = append(errs, errors.New("SWAP_DELAY must be positive"))
	}
	if pair := domain.NewPair(c.PairBase, c.PairQuote); !domain.ValidatePair(string(pair)) {
		errs = append(errs, fmt.Errorf("PAIR_BASE/PAIR_QUOTE %s: %w", pair, domain.ErrUnsupportedPair))
	}
	switch c.IdempotencyBackend {
	case IdempotencyRedis, IdempotencyNone:
	default:
		errs = append(errs, fmt.Errorf("IDEMPOTENCY_BACKEND must be redis or none, got %q", c.IdempotencyBackend))
	}
	return errors.Join(errs...)
}
