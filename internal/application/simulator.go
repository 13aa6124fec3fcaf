package application

import (
	"fmt"

	"cryptoswap-service/internal/domain"
)

const (
	DefaultRateStep   = 0.02
	DefaultChangeStep = 0.5
)

// Simulator drifts an exchange rate by a bounded random walk.
// It is not safe for concurrent use; the owning session serializes ticks.
type Simulator struct {
	rnd        RandSource
	clock      Clock
	rateStep   float64
	changeStep float64
}

func NewSimulator(rnd RandSource, clock Clock, rateStep, changeStep float64) *Simulator {
	if rateStep <= 0 {
		rateStep = DefaultRateStep
	}
	if changeStep <= 0 {
		changeStep = DefaultChangeStep
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Simulator{rnd: rnd, clock: clock, rateStep: rateStep, changeStep: changeStep}
}

// Tick derives the next rate from prev:
//
//	rate'      = rate * (1 + U1*rateStep)
//	change24h' = change24h + U2*changeStep
//
// with U1, U2 independent draws in [-0.5, 0.5). A result that is not finite
// and positive is rejected with domain.ErrInvalidRate and prev is returned.
func (s *Simulator) Tick(prev domain.ExchangeRate) (domain.ExchangeRate, error) {
	next := domain.ExchangeRate{
		Rate:        prev.Rate * (1 + s.draw()*s.rateStep),
		Change24h:   prev.Change24h + s.draw()*s.changeStep,
		LastUpdated: s.clock.Now(),
	}
	if !next.Valid() {
		return prev, fmt.Errorf("tick from %g: %w", prev.Rate, domain.ErrInvalidRate)
	}
	return next, nil
}

func (s *Simulator) draw() float64 { return s.rnd.Float64() - 0.5 }
