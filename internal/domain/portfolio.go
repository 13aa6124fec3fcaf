package domain

import "github.com/shopspring/decimal"

type Holding struct {
	Asset     string
	Amount    decimal.Decimal
	Change24h float64
}

type HoldingValue struct {
	Holding
	ValueUSD decimal.Decimal
}

type Portfolio struct {
	Holdings     []HoldingValue
	TotalUSD     decimal.Decimal
	DayChangeUSD decimal.Decimal
	DayChangePct decimal.Decimal
}

type MarketOverview struct {
	PricesUSD map[string]decimal.Decimal
	Volume24h decimal.Decimal
}
