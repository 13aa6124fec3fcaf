package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cryptoswap-service/internal/application"
	"cryptoswap-service/internal/domain"
	"cryptoswap-service/internal/infrastructure/logx"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

type Server struct {
	session *application.Session
	catalog *application.Catalog
	ping    func(context.Context) error
	metrics http.Handler
}

func NewServer(session *application.Session, catalog *application.Catalog) *Server {
	return &Server{session: session, catalog: catalog}
}

// SetReadyCheck sets the dependency probe used by /readyz.
func (s *Server) SetReadyCheck(ping func(context.Context) error) { s.ping = ping }

// SetMetricsHandler mounts h on /metrics.
func (s *Server) SetMetricsHandler(h http.Handler) { s.metrics = h }

func (s *Server) GetRate(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toRate(s.session.Pair(), s.session.Rate()))
}

func (s *Server) GetAmounts(w http.ResponseWriter, r *http.Request) {
	a, err := s.session.Amounts()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.amounts(a))
}

func (s *Server) PutAmount(w http.ResponseWriter, r *http.Request) {
	side := domain.Side(chi.URLParam(r, "side"))
	if !side.Valid() {
		writeError(w, http.StatusNotFound, "unknown side")
		return
	}
	var body amountRequest
	if !decode(w, r, &body) {
		return
	}
	if body.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}
	a, err := s.session.SetAmount(side, *body.Value)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.amounts(a))
}

func (s *Server) amounts(a domain.Amounts) amountsResponse {
	return amountsResponse{
		Primary:     a.Primary,
		Secondary:   a.Secondary,
		Driver:      string(a.Driver),
		Rate:        s.session.Rate().Rate,
		SwapEnabled: s.session.SwapEnabled(),
	}
}

func (s *Server) PostConversion(w http.ResponseWriter, r *http.Request) {
	var body conversionRequest
	if !decode(w, r, &body) {
		return
	}
	side := domain.Side(body.Side)
	if !side.Valid() {
		writeError(w, http.StatusBadRequest, "side must be primary or secondary")
		return
	}
	out, rate, err := s.session.Convert(side, body.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conversionResponse{Side: body.Side, Amount: body.Amount, Result: out, Rate: rate})
}

func (s *Server) PostSwap(w http.ResponseWriter, r *http.Request) {
	var key *string
	if k := r.Header.Get("X-Idempotency-Key"); k != "" {
		key = &k
	}
	sw, err := s.session.ExecuteSwap(r.Context(), key)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/swaps/"+sw.ID)
	writeJSON(w, http.StatusAccepted, toSwap(sw))
}

func (s *Server) GetCurrentSwap(w http.ResponseWriter, _ *http.Request) {
	st, sw := s.session.CurrentSwap()
	resp := currentSwapResponse{Status: string(st)}
	if sw != nil {
		v := toSwap(*sw)
		resp.Swap = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetSwap(w http.ResponseWriter, r *http.Request) {
	sw, err := s.session.Swap(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwap(sw))
}

func (s *Server) GetPortfolio(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toPortfolio(s.catalog.Portfolio()))
}

func (s *Server) GetMarket(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toMarket(s.catalog.Market()))
}

func (s *Server) GetHistory(w http.ResponseWriter, _ *http.Request) {
	txs := s.catalog.History(s.session.CompletedSwaps())
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransaction(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logx.WithFields(r.Context()).Error("request_failed", zap.Error(err))
		msg = http.StatusText(status)
	}
	writeError(w, status, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSwapInFlight), errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSwapDisabled), application.IsRateError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrSessionStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
