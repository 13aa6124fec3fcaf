package application

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cryptoswap-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Display precision of each side. Rounding is half away from zero.
const (
	PrimaryDecimals   = 2
	SecondaryDecimals = 8
)

// Decimal magnitude bounds of a finite float64, as digits left of the point.
const (
	maxMagnitude = 309
	minMagnitude = -330
)

// FromPrimary converts a primary amount typed by the user into the secondary
// amount at rate. Empty or non-numeric input clears the paired field.
func FromPrimary(input string, rate float64) (string, error) {
	v, err := parseAmount(input)
	if err != nil {
		return "", nil
	}
	out, err := primaryToSecondary(v, rate)
	if err != nil {
		return "", err
	}
	return out.StringFixed(SecondaryDecimals), nil
}

// FromSecondary is the inverse of FromPrimary. A zero or non-finite rate
// yields domain.ErrDivision.
func FromSecondary(input string, rate float64) (string, error) {
	v, err := parseAmount(input)
	if err != nil {
		return "", nil
	}
	out, err := secondaryToPrimary(v, rate)
	if err != nil {
		return "", err
	}
	return out.StringFixed(PrimaryDecimals), nil
}

// Convert dispatches to FromPrimary or FromSecondary by the side the input
// belongs to.
func Convert(side domain.Side, input string, rate float64) (string, error) {
	switch side {
	case domain.SidePrimary:
		return FromPrimary(input, rate)
	case domain.SideSecondary:
		return FromSecondary(input, rate)
	default:
		return "", fmt.Errorf("%w: unknown side %q", ErrBadRequest, side)
	}
}

func parseAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, domain.ErrParse
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrParse, input)
	}
	if v.IsZero() {
		return decimal.Zero, nil
	}
	// Magnitude is checked on digits and exponent before any float
	// conversion, which would have to expand the exponent.
	mag := int64(v.NumDigits()) + int64(v.Exponent())
	switch {
	case mag > maxMagnitude:
		return decimal.Zero, fmt.Errorf("%w: %q overflows", domain.ErrParse, input)
	case mag < minMagnitude:
		// underflows to zero as a float64
		return decimal.Zero, nil
	}
	if f := v.InexactFloat64(); math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %q overflows", domain.ErrParse, input)
	}
	return v, nil
}

func primaryToSecondary(v decimal.Decimal, rate float64) (decimal.Decimal, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return decimal.Zero, fmt.Errorf("%w: %g", domain.ErrInvalidRate, rate)
	}
	return v.Mul(decimal.NewFromFloat(rate)), nil
}

func secondaryToPrimary(v decimal.Decimal, rate float64) (decimal.Decimal, error) {
	if rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return decimal.Zero, fmt.Errorf("%w: %g", domain.ErrDivision, rate)
	}
	return v.Div(decimal.NewFromFloat(rate)), nil
}

// IsRateError reports whether err stems from an unusable rate rather than
// from the amount input.
func IsRateError(err error) bool {
	return errors.Is(err, domain.ErrDivision) || errors.Is(err, domain.ErrInvalidRate)
}
