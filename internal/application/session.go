package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"cryptoswap-service/internal/domain"

	"go.uber.org/zap"
)

const (
	DefaultSwapDelay = 2 * time.Second
	notifyTimeout    = 3 * time.Second
	idemKeyPrefix    = "swap:"
)

type SessionConfig struct {
	Pair       domain.Pair
	Seed       domain.ExchangeRate
	RateStep   float64
	ChangeStep float64
	SwapDelay  time.Duration
}

// Session owns every piece of mutable state of one trading session: the
// simulated rate, the linked amount fields, the swap state machine and the
// timers that drive them. Start and Stop bound the lifetime of its workers.
type Session struct {
	mu        sync.Mutex
	pair      domain.Pair
	rate      domain.ExchangeRate
	amounts   AmountPair
	swaps     map[string]domain.Swap
	completed []string
	pending   *pendingSwap
	closed    bool

	sim       *Simulator
	rnd       RandSource
	clock     Clock
	sched     Scheduler
	idgen     IDGen
	idem      IdempotencyStore
	notifier  Notifier
	metrics   Metrics
	log       *zap.Logger
	swapDelay time.Duration

	runMu   sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

type pendingSwap struct {
	id    string
	timer Timer
}

type Option func(*Session)

func WithClock(c Clock) Option                  { return func(s *Session) { s.clock = c } }
func WithIDGen(g IDGen) Option                  { return func(s *Session) { s.idgen = g } }
func WithScheduler(sc Scheduler) Option         { return func(s *Session) { s.sched = sc } }
func WithRand(r RandSource) Option              { return func(s *Session) { s.rnd = r } }
func WithIdempotency(i IdempotencyStore) Option { return func(s *Session) { s.idem = i } }
func WithNotifier(n Notifier) Option            { return func(s *Session) { s.notifier = n } }
func WithMetrics(m Metrics) Option              { return func(s *Session) { s.metrics = m } }
func WithLogger(l *zap.Logger) Option           { return func(s *Session) { s.log = l } }

func NewSession(cfg SessionConfig, opts ...Option) *Session {
	s := &Session{
		pair:      cfg.Pair,
		rate:      cfg.Seed,
		swaps:     map[string]domain.Swap{},
		swapDelay: cfg.SwapDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.sched == nil {
		s.sched = realScheduler{}
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	if s.idem == nil {
		s.idem = NoopIdempotency{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Log: s.log}
	}
	if s.metrics == nil {
		s.metrics = NoopMetrics
	}
	if s.swapDelay <= 0 {
		s.swapDelay = DefaultSwapDelay
	}
	if s.rate.LastUpdated.IsZero() {
		s.rate.LastUpdated = s.clock.Now()
	}
	s.sim = NewSimulator(s.rnd, s.clock, cfg.RateStep, cfg.ChangeStep)
	return s
}

func (s *Session) Pair() domain.Pair { return s.pair }

func (s *Session) Rate() domain.ExchangeRate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

// Advance applies one simulator tick. A rejected tick leaves the current
// rate in place and returns it together with the error.
func (s *Session) Advance(context.Context) (domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.sim.Tick(s.rate)
	if err != nil {
		return s.rate, err
	}
	s.rate = next
	return next, nil
}

// SetAmount drives one of the linked fields with raw user input and returns
// both fields as they now read.
func (s *Session) SetAmount(side domain.Side, input string) (domain.Amounts, error) {
	if !side.Valid() {
		return domain.Amounts{}, fmt.Errorf("%w: unknown side %q", ErrBadRequest, side)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amounts.Set(side, input)
	return s.amounts.Project(s.rate.Rate)
}

func (s *Session) Amounts() (domain.Amounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amounts.Project(s.rate.Rate)
}

// Convert runs a stateless conversion at the current rate.
func (s *Session) Convert(side domain.Side, input string) (string, float64, error) {
	rate := s.Rate().Rate
	out, err := Convert(side, input, rate)
	return out, rate, err
}

// SwapEnabled mirrors the swap action's enabled state: both amounts present
// and no swap pending.
func (s *Session) SwapEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapBlocker() == nil
}

// swapBlocker must be called with s.mu held.
func (s *Session) swapBlocker() error {
	if s.closed {
		return ErrSessionStopped
	}
	if s.pending != nil {
		return domain.ErrSwapInFlight
	}
	amounts, err := s.amounts.Project(s.rate.Rate)
	if err != nil {
		return err
	}
	if !amounts.Ready() {
		return domain.ErrSwapDisabled
	}
	return nil
}

// ExecuteSwap moves the session from idle to pending and schedules the
// transition to completed after the configured delay.
func (s *Session) ExecuteSwap(ctx context.Context, idemKey *string) (domain.Swap, error) {
	s.mu.Lock()
	err := s.swapBlocker()
	s.mu.Unlock()
	if err != nil {
		s.rejectSwap(err)
		return domain.Swap{}, err
	}

	if idemKey != nil && *idemKey != "" {
		ok, err := s.idem.TryReserve(ctx, idemKeyPrefix+*idemKey)
		if err != nil {
			return domain.Swap{}, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if !ok {
			s.metrics.SwapRejected("duplicate")
			return domain.Swap{}, ErrConflict
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.swapBlocker(); err != nil {
		s.rejectSwap(err)
		return domain.Swap{}, err
	}
	amounts, _ := s.amounts.Project(s.rate.Rate)
	sw := domain.Swap{
		ID:          s.idgen.NewID(),
		Pair:        s.pair,
		Status:      domain.SwapStatusPending,
		AmountA:     amounts.Primary,
		AmountB:     amounts.Secondary,
		Rate:        s.rate.Rate,
		RequestedAt: s.clock.Now(),
	}
	s.swaps[sw.ID] = sw
	id := sw.ID
	s.pending = &pendingSwap{id: id}
	s.pending.timer = s.sched.AfterFunc(s.swapDelay, func() { s.completeSwap(id) })
	s.metrics.SwapStarted()
	s.log.Info("session.swap_pending",
		zap.String("swap_id", id),
		zap.String("primary", sw.AmountA),
		zap.String("secondary", sw.AmountB),
		zap.Duration("delay", s.swapDelay),
	)
	return sw, nil
}

func (s *Session) rejectSwap(err error) {
	switch {
	case errors.Is(err, domain.ErrSwapInFlight):
		s.metrics.SwapRejected("in_flight")
	case errors.Is(err, domain.ErrSwapDisabled):
		s.metrics.SwapRejected("disabled")
	case errors.Is(err, ErrSessionStopped):
		s.metrics.SwapRejected("stopped")
	default:
		s.metrics.SwapRejected("invalid_rate")
	}
}

func (s *Session) completeSwap(id string) {
	s.mu.Lock()
	if s.pending == nil || s.pending.id != id {
		s.mu.Unlock()
		return
	}
	sw := s.swaps[id]
	now := s.clock.Now()
	sw.Status = domain.SwapStatusCompleted
	sw.CompletedAt = &now
	s.swaps[id] = sw
	s.completed = append(s.completed, id)
	s.pending = nil
	s.mu.Unlock()

	s.metrics.SwapCompleted(now.Sub(sw.RequestedAt))
	s.log.Info("session.swap_completed", zap.String("swap_id", id))

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.SwapCompleted(ctx, sw); err != nil {
		s.log.Warn("session.notify_failed", zap.String("swap_id", id), zap.Error(err))
	}
}

// CurrentSwap reports the state of the swap action: the pending swap, else
// the last completed one, else idle.
func (s *Session) CurrentSwap() (domain.SwapStatus, *domain.Swap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		sw := s.swaps[s.pending.id]
		return domain.SwapStatusPending, &sw
	}
	if n := len(s.completed); n > 0 {
		sw := s.swaps[s.completed[n-1]]
		return domain.SwapStatusCompleted, &sw
	}
	return domain.SwapStatusIdle, nil
}

func (s *Session) Swap(id string) (domain.Swap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw, ok := s.swaps[id]
	if !ok {
		return domain.Swap{}, ErrNotFound
	}
	return sw, nil
}

// CompletedSwaps returns the swaps settled in this session, newest first.
func (s *Session) CompletedSwaps() []domain.Swap {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Swap, 0, len(s.completed))
	for i := len(s.completed) - 1; i >= 0; i-- {
		out = append(out, s.swaps[s.completed[i]])
	}
	return out
}

// Start runs workers until Stop is called or ctx is canceled. It is a no-op
// on a running or stopped session.
func (s *Session) Start(ctx context.Context, workers ...Worker) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil || s.stopped {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for _, w := range workers {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			w.Start(ctx)
		}()
	}
	s.log.Info("session.started", zap.String("pair", string(s.pair)), zap.Int("workers", len(workers)))
}

// Stop cancels the workers, waits for them to return and disarms a pending
// swap timer. Later swaps are refused. Safe to call more than once.
func (s *Session) Stop() {
	s.runMu.Lock()
	if s.stopped {
		s.runMu.Unlock()
		return
	}
	s.stopped = true
	cancel := s.cancel
	s.runMu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	s.mu.Lock()
	s.closed = true
	if s.pending != nil {
		s.pending.timer.Stop()
		s.log.Warn("session.swap_abandoned", zap.String("swap_id", s.pending.id))
		s.pending = nil
	}
	s.mu.Unlock()
	s.log.Info("session.stopped")
}
