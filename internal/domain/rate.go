package domain

import (
	"math"
	"time"
)

// ExchangeRate is the simulated price of one base unit in quote units.
type ExchangeRate struct {
	Rate        float64
	Change24h   float64
	LastUpdated time.Time
}

// Valid reports whether the rate is finite and strictly positive.
func (r ExchangeRate) Valid() bool {
	return ValidRate(r.Rate)
}

func ValidRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate > 0
}
