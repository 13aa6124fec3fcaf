package domain

type SwapStatus string

const (
	SwapStatusIdle      SwapStatus = "idle"
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusCompleted SwapStatus = "completed"
)
