package application

import (
	"context"
	"time"

	"cryptoswap-service/internal/domain"
)

// RateSink receives every accepted rate so other processes can follow it.
type RateSink interface {
	PublishRate(ctx context.Context, pair domain.Pair, r domain.ExchangeRate) error
}

// Notifier delivers the swap confirmation. Implementations must not block
// the caller for longer than the context allows.
type Notifier interface {
	SwapCompleted(ctx context.Context, s domain.Swap) error
}

type Metrics interface {
	RateTicked(r domain.ExchangeRate)
	TickRejected()
	SwapStarted()
	SwapCompleted(elapsed time.Duration)
	SwapRejected(reason string)
}

// RandSource yields uniform draws in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type noopSink struct{}

func (noopSink) PublishRate(context.Context, domain.Pair, domain.ExchangeRate) error { return nil }

type noopMetrics struct{}

func (noopMetrics) RateTicked(domain.ExchangeRate) {}
func (noopMetrics) TickRejected()                  {}
func (noopMetrics) SwapStarted()                   {}
func (noopMetrics) SwapCompleted(time.Duration)    {}
func (noopMetrics) SwapRejected(string)            {}

// NoopMetrics discards every observation.
var NoopMetrics Metrics = noopMetrics{}

// NoopSink drops published rates.
var NoopSink RateSink = noopSink{}
