package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cryptoswap-service/internal/domain"

	"github.com/shopspring/decimal"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

// seqRand replays draws in order and then repeats the last one.
type seqRand struct {
	draws []float64
	i     int
}

func (r *seqRand) Float64() float64 {
	if r.i < len(r.draws) {
		v := r.draws[r.i]
		r.i++
		return v
	}
	return r.draws[len(r.draws)-1]
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

// manualScheduler records deferred callbacks and runs them on Fire.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *manualScheduler) last() *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.timers) == 0 {
		return nil
	}
	return m.timers[len(m.timers)-1]
}

func (m *manualScheduler) Fire() {
	t := m.last()
	if t == nil || t.stopped || t.fired {
		return
	}
	t.fired = true
	t.fn()
}

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("swap-%d", g.n)
}

type fakeIdem struct{ seen map[string]bool }

func (f *fakeIdem) TryReserve(_ context.Context, k string) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	swaps []domain.Swap
	err   error
}

func (n *recordingNotifier) SwapCompleted(_ context.Context, s domain.Swap) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.swaps = append(n.swaps, s)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.swaps)
}

type recordingMetrics struct {
	mu        sync.Mutex
	started   int
	completed []time.Duration
	rejected  []string
}

func (m *recordingMetrics) RateTicked(domain.ExchangeRate) {}
func (m *recordingMetrics) TickRejected()                  {}
func (m *recordingMetrics) SwapStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}
func (m *recordingMetrics) SwapCompleted(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, d)
}
func (m *recordingMetrics) SwapRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

var seedTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func seedRate() domain.ExchangeRate {
	return domain.ExchangeRate{Rate: 0.000016, Change24h: 2.34, LastUpdated: seedTime}
}

func decimal2(s string) decimal.Decimal { return decimal.RequireFromString(s) }
