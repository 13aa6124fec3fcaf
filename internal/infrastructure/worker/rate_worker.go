package worker

import (
	"context"
	"fmt"
	"time"

	"cryptoswap-service/internal/application"
	"cryptoswap-service/internal/domain"

	"go.uber.org/zap"
)

var _ application.Worker = (*RateWorker)(nil)

const (
	DefaultTickEvery = 5 * time.Second
	publishTimeout   = 2 * time.Second
)

// RateAdvancer is the part of the session the ticker drives.
type RateAdvancer interface {
	Pair() domain.Pair
	Rate() domain.ExchangeRate
	Advance(ctx context.Context) (domain.ExchangeRate, error)
}

// RateWorker ticks the session's rate on a fixed schedule and forwards every
// accepted rate to the sink.
type RateWorker struct {
	Rates   RateAdvancer
	Sink    application.RateSink
	Metrics application.Metrics

	Every time.Duration
	Log   *zap.Logger
}

func (w *RateWorker) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.Every <= 0 {
		w.Every = DefaultTickEvery
	}
	if w.Sink == nil {
		w.Sink = application.NoopSink
	}
	if w.Metrics == nil {
		w.Metrics = application.NoopMetrics
	}
	log = log.With(zap.String("pair", string(w.Rates.Pair())))

	t := time.NewTicker(w.Every)
	defer t.Stop()

	log.Info("rate_worker_started", zap.Duration("every", w.Every))
	w.publish(ctx, log, w.Rates.Rate())
	for {
		select {
		case <-ctx.Done():
			log.Info("rate_worker_stopped")
			return
		case <-t.C:
			w.tick(ctx, log)
		}
	}
}

func (w *RateWorker) tick(ctx context.Context, log *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("rate_worker.panic", zap.String("r", fmt.Sprint(r)))
		}
	}()
	r, err := w.Rates.Advance(ctx)
	if err != nil {
		w.Metrics.TickRejected()
		log.Warn("tick_rejected", zap.Float64("kept_rate", r.Rate), zap.Error(err))
		return
	}
	w.Metrics.RateTicked(r)
	log.Debug("rate_ticked", zap.Float64("rate", r.Rate), zap.Float64("change_24h", r.Change24h))
	w.publish(ctx, log, r)
}

func (w *RateWorker) publish(ctx context.Context, log *zap.Logger, r domain.ExchangeRate) {
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := w.Sink.PublishRate(c, w.Rates.Pair(), r); err != nil {
		log.Warn("publish_failed", zap.Error(err))
	}
}
