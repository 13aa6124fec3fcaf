package httpserver

import (
	"time"

	"cryptoswap-service/internal/application"
	"cryptoswap-service/internal/domain"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rateResponse struct {
	Pair          string    `json:"pair"`
	Base          string    `json:"base"`
	Quote         string    `json:"quote"`
	Rate          float64   `json:"rate"`
	RateDisplay   string    `json:"rate_display"`
	Change24h     float64   `json:"change_24h"`
	ChangeDisplay string    `json:"change_display"`
	LastUpdated   time.Time `json:"last_updated"`
}

type amountRequest struct {
	Value *string `json:"value"`
}

type amountsResponse struct {
	Primary     string  `json:"primary"`
	Secondary   string  `json:"secondary"`
	Driver      string  `json:"driver,omitempty"`
	Rate        float64 `json:"rate"`
	SwapEnabled bool    `json:"swap_enabled"`
}

type conversionRequest struct {
	Side   string `json:"side"`
	Amount string `json:"amount"`
}

type conversionResponse struct {
	Side   string  `json:"side"`
	Amount string  `json:"amount"`
	Result string  `json:"result"`
	Rate   float64 `json:"rate"`
}

type swapResponse struct {
	ID          string     `json:"id"`
	Pair        string     `json:"pair"`
	Status      string     `json:"status"`
	Primary     string     `json:"primary"`
	Secondary   string     `json:"secondary"`
	Rate        float64    `json:"rate"`
	RequestedAt time.Time  `json:"requested_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Message     string     `json:"message,omitempty"`
}

type currentSwapResponse struct {
	Status string        `json:"status"`
	Swap   *swapResponse `json:"swap,omitempty"`
}

type holdingResponse struct {
	Asset         string  `json:"asset"`
	Amount        string  `json:"amount"`
	ValueUSD      string  `json:"value_usd"`
	Change24h     float64 `json:"change_24h"`
	ChangeDisplay string  `json:"change_display"`
}

type portfolioResponse struct {
	Holdings     []holdingResponse `json:"holdings"`
	TotalUSD     string            `json:"total_usd"`
	DayChangeUSD string            `json:"day_change_usd"`
	DayChangePct string            `json:"day_change_pct"`
}

type marketResponse struct {
	PricesUSD map[string]string `json:"prices_usd"`
	Volume24h string            `json:"volume_24h"`
}

type transactionResponse struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Amount   string    `json:"amount"`
	ValueUSD string    `json:"value_usd"`
	At       time.Time `json:"at"`
	Status   string    `json:"status"`
}

func toRate(p domain.Pair, r domain.ExchangeRate) rateResponse {
	return rateResponse{
		Pair:          string(p),
		Base:          p.Base(),
		Quote:         p.Quote(),
		Rate:          r.Rate,
		RateDisplay:   application.FormatRate(r.Rate),
		Change24h:     r.Change24h,
		ChangeDisplay: application.FormatChange(r.Change24h),
		LastUpdated:   r.LastUpdated,
	}
}

func toSwap(s domain.Swap) swapResponse {
	out := swapResponse{
		ID:          s.ID,
		Pair:        string(s.Pair),
		Status:      string(s.Status),
		Primary:     s.AmountA,
		Secondary:   s.AmountB,
		Rate:        s.Rate,
		RequestedAt: s.RequestedAt,
		CompletedAt: s.CompletedAt,
	}
	if s.Status == domain.SwapStatusCompleted {
		out.Message = domain.SwapConfirmation
	}
	return out
}

func toPortfolio(p domain.Portfolio) portfolioResponse {
	out := portfolioResponse{
		Holdings:     make([]holdingResponse, 0, len(p.Holdings)),
		TotalUSD:     application.FormatUSD(p.TotalUSD),
		DayChangeUSD: application.FormatUSD(p.DayChangeUSD),
		DayChangePct: p.DayChangePct.StringFixed(2) + "%",
	}
	for _, h := range p.Holdings {
		out.Holdings = append(out.Holdings, holdingResponse{
			Asset:         h.Asset,
			Amount:        h.Amount.String(),
			ValueUSD:      application.FormatUSD(h.ValueUSD),
			Change24h:     h.Change24h,
			ChangeDisplay: application.FormatChange(h.Change24h),
		})
	}
	return out
}

func toMarket(m domain.MarketOverview) marketResponse {
	out := marketResponse{PricesUSD: map[string]string{}, Volume24h: application.FormatUSD(m.Volume24h)}
	for asset, p := range m.PricesUSD {
		out.PricesUSD[asset] = application.FormatUSD(p)
	}
	return out
}

func toTransaction(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:       t.ID,
		Type:     t.Type,
		From:     t.From,
		To:       t.To,
		Amount:   t.Amount,
		ValueUSD: application.FormatUSD(t.ValueUSD),
		At:       t.At,
		Status:   string(t.Status),
	}
}
