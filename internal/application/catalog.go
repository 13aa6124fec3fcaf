package application

import (
	"sort"
	"time"

	"cryptoswap-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Catalog serves the static market overview, portfolio and transaction
// history shown next to the trading widget.
type Catalog struct {
	market   domain.MarketOverview
	holdings []domain.Holding
	seed     []domain.Transaction
}

func NewCatalog(clock Clock) *Catalog {
	if clock == nil {
		clock = realClock{}
	}
	now := clock.Now()
	return &Catalog{
		market: domain.MarketOverview{
			PricesUSD: map[string]decimal.Decimal{
				"XRP": decimal.RequireFromString("0.52"),
				"BTC": decimal.RequireFromString("43250"),
			},
			Volume24h: decimal.RequireFromString("2100000000"),
		},
		holdings: []domain.Holding{
			{Asset: "XRP", Amount: decimal.RequireFromString("1250.00"), Change24h: 2.34},
			{Asset: "BTC", Amount: decimal.RequireFromString("0.05432"), Change24h: 1.87},
		},
		seed: []domain.Transaction{
			{ID: "seed-1", Type: "Swap", From: "XRP", To: "BTC", Amount: "500.00", At: now.Add(-2 * time.Hour), Status: domain.SwapStatusCompleted},
			{ID: "seed-2", Type: "Swap", From: "BTC", To: "XRP", Amount: "0.01", At: now.Add(-24 * time.Hour), Status: domain.SwapStatusCompleted},
			{ID: "seed-3", Type: "Swap", From: "XRP", To: "BTC", Amount: "750.00", At: now.Add(-72 * time.Hour), Status: domain.SwapStatusCompleted},
		},
	}
}

func (c *Catalog) Market() domain.MarketOverview { return c.market }

// Price returns the USD price of asset, zero when unknown.
func (c *Catalog) Price(asset string) decimal.Decimal {
	return c.market.PricesUSD[asset]
}

// Portfolio values every holding at the overview prices. The day change is
// derived from each holding's 24h change: value - value/(1+pct/100).
func (c *Catalog) Portfolio() domain.Portfolio {
	hundred := decimal.NewFromInt(100)
	out := domain.Portfolio{TotalUSD: decimal.Zero, DayChangeUSD: decimal.Zero, DayChangePct: decimal.Zero}
	for _, h := range c.holdings {
		value := h.Amount.Mul(c.Price(h.Asset))
		pct := decimal.NewFromFloat(h.Change24h)
		prior := value.Div(decimal.NewFromInt(1).Add(pct.Div(hundred)))
		out.Holdings = append(out.Holdings, domain.HoldingValue{Holding: h, ValueUSD: value})
		out.TotalUSD = out.TotalUSD.Add(value)
		out.DayChangeUSD = out.DayChangeUSD.Add(value.Sub(prior))
	}
	if base := out.TotalUSD.Sub(out.DayChangeUSD); base.IsPositive() {
		out.DayChangePct = out.DayChangeUSD.Div(base).Mul(hundred)
	}
	return out
}

// History merges the seeded transactions with swaps completed in the
// session, newest first.
func (c *Catalog) History(completed []domain.Swap) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(c.seed)+len(completed))
	for _, sw := range completed {
		at := sw.RequestedAt
		if sw.CompletedAt != nil {
			at = *sw.CompletedAt
		}
		out = append(out, domain.Transaction{
			ID:     sw.ID,
			Type:   "Swap",
			From:   sw.Pair.Base(),
			To:     sw.Pair.Quote(),
			Amount: sw.AmountA,
			At:     at,
			Status: sw.Status,
		})
	}
	out = append(out, c.seed...)
	for i := range out {
		out[i].ValueUSD = c.value(out[i].From, out[i].Amount)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	return out
}

func (c *Catalog) value(asset, amount string) decimal.Decimal {
	v, err := parseAmount(amount)
	if err != nil {
		return decimal.Zero
	}
	return v.Mul(c.Price(asset)).Round(2)
}
