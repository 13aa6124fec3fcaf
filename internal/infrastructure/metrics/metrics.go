package metrics

import (
	"net/http"
	"time"

	"cryptoswap-service/internal/application"
	"cryptoswap-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ application.Metrics = (*SessionMetrics)(nil)

// SessionMetrics exports the simulated rate and the swap lifecycle.
type SessionMetrics struct {
	reg *prometheus.Registry

	Rate          prometheus.Gauge
	Change24h     prometheus.Gauge
	TicksTotal    *prometheus.CounterVec
	SwapsStarted  prometheus.Counter
	SwapsDone     prometheus.Counter
	SwapsRejected *prometheus.CounterVec
	SwapDuration  prometheus.Histogram
}

// New registers every collector on a fresh registry, together with the
// process and Go runtime collectors.
func New() *SessionMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &SessionMetrics{
		reg: reg,
		Rate: f.NewGauge(prometheus.GaugeOpts{
			Name: "cryptoswap_rate",
			Help: "Current simulated rate, quote units per base unit",
		}),
		Change24h: f.NewGauge(prometheus.GaugeOpts{
			Name: "cryptoswap_rate_change_24h_percent",
			Help: "Simulated 24h change of the rate",
		}),
		TicksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptoswap_rate_ticks_total",
			Help: "Simulator ticks by outcome",
		}, []string{"outcome"}),
		SwapsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "cryptoswap_swaps_started_total",
			Help: "Swaps moved to pending",
		}),
		SwapsDone: f.NewCounter(prometheus.CounterOpts{
			Name: "cryptoswap_swaps_completed_total",
			Help: "Swaps moved to completed",
		}),
		SwapsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptoswap_swaps_rejected_total",
			Help: "Swap requests refused, by reason",
		}, []string{"reason"}),
		SwapDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cryptoswap_swap_duration_seconds",
			Help:    "Time from pending to completed",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 6), // 0.5s .. 16s
		}),
	}
}

func (m *SessionMetrics) RateTicked(r domain.ExchangeRate) {
	m.Rate.Set(r.Rate)
	m.Change24h.Set(r.Change24h)
	m.TicksTotal.WithLabelValues("accepted").Inc()
}

func (m *SessionMetrics) TickRejected() {
	m.TicksTotal.WithLabelValues("rejected").Inc()
}

func (m *SessionMetrics) SwapStarted() { m.SwapsStarted.Inc() }

func (m *SessionMetrics) SwapCompleted(elapsed time.Duration) {
	m.SwapsDone.Inc()
	m.SwapDuration.Observe(elapsed.Seconds())
}

func (m *SessionMetrics) SwapRejected(reason string) {
	m.SwapsRejected.WithLabelValues(reason).Inc()
}

func (m *SessionMetrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *SessionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
