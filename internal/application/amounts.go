package application

import (
	"cryptoswap-service/internal/domain"

	"github.com/shopspring/decimal"
)

// AmountPair keeps the canonical value of whichever field was edited last.
// The text of both fields is a projection recomputed against the current
// rate, so the derived field never drifts from the driver.
type AmountPair struct {
	driver domain.Side
	text   string
	value  decimal.Decimal
	valid  bool
}

// Set records input as the driving field.
func (p *AmountPair) Set(side domain.Side, input string) {
	v, err := parseAmount(input)
	p.driver = side
	p.text = input
	p.value = v
	p.valid = err == nil
}

// Reset clears both fields.
func (p *AmountPair) Reset() { *p = AmountPair{} }

// Project renders both fields at rate. On a rate error the driver text is
// still returned and the derived field is empty.
func (p AmountPair) Project(rate float64) (domain.Amounts, error) {
	out := domain.Amounts{Driver: p.driver}
	var (
		derived string
		err     error
	)
	if p.valid {
		derived, err = p.derive(rate)
	}
	switch p.driver {
	case domain.SidePrimary:
		out.Primary, out.Secondary = p.text, derived
	case domain.SideSecondary:
		out.Primary, out.Secondary = derived, p.text
	}
	return out, err
}

func (p AmountPair) derive(rate float64) (string, error) {
	switch p.driver {
	case domain.SidePrimary:
		v, err := primaryToSecondary(p.value, rate)
		if err != nil {
			return "", err
		}
		return v.StringFixed(SecondaryDecimals), nil
	case domain.SideSecondary:
		v, err := secondaryToPrimary(p.value, rate)
		if err != nil {
			return "", err
		}
		return v.StringFixed(PrimaryDecimals), nil
	}
	return "", nil
}
