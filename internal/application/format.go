package application

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatRate renders a rate with the secondary asset's precision.
func FormatRate(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return ""
	}
	return decimal.NewFromFloat(rate).StringFixed(SecondaryDecimals)
}

// FormatChange renders a percentage with an explicit sign, e.g. "+2.34%".
func FormatChange(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return ""
	}
	d := decimal.NewFromFloat(pct).Round(2)
	sign := ""
	if !d.IsNegative() {
		sign = "+"
	}
	return sign + d.StringFixed(2) + "%"
}

// FormatUSD renders a dollar amount with two decimals, e.g. "$260.00".
func FormatUSD(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-$" + v.Neg().StringFixed(2)
	}
	return "$" + v.StringFixed(2)
}
