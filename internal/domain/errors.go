package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnsupportedPair = errors.New("unsupported pair")

	// ErrParse marks amount input that is empty or not a finite number.
	// Conversions recover from it locally by clearing the paired field.
	ErrParse = errors.New("amount is not a finite number")
	// ErrDivision is returned when converting against a zero or non-finite rate.
	ErrDivision = errors.New("division by zero or non-finite rate")
	// ErrInvalidRate is returned when a rate is non-finite or not positive.
	ErrInvalidRate = errors.New("rate must be finite and positive")

	ErrSwapDisabled = errors.New("swap requires both amounts")
	ErrSwapInFlight = errors.New("swap already pending")
)
