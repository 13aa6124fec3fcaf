package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID       string
	Type     string
	From     string
	To       string
	Amount   string
	ValueUSD decimal.Decimal
	At       time.Time
	Status   SwapStatus
}
