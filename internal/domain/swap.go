package domain

import "time"

// SwapConfirmation is the message emitted when a simulated swap settles.
const SwapConfirmation = "Trade executed successfully!"

type Swap struct {
	ID          string
	Pair        Pair
	Status      SwapStatus
	AmountA     string
	AmountB     string
	Rate        float64
	RequestedAt time.Time
	CompletedAt *time.Time
}
