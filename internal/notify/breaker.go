package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Circuit breaker states
const (
	StateClosed   = "closed"
	StateOpen     = "open"
	StateHalfOpen = "half-open"
)

// ErrCircuitOpen is returned while the breaker rejects alerts.
var ErrCircuitOpen = errors.New("circuit open")

// Breaker stops calling a failing notifier for a cooldown period.
// State transitions: closed → open → half-open → closed
//
// - Closed: alerts pass through. Consecutive failures are counted.
// - Open: alerts are rejected until the cooldown elapses.
// - Half-Open: one trial alert is let through. Success closes, failure reopens.
type Breaker struct {
	name      string
	next      Notifier
	threshold int
	cooldown  time.Duration
	clock     clock.PassiveClock
	logger    *slog.Logger

	mu           sync.Mutex
	state        string
	failures     int
	lastFailedAt time.Time
	trial        bool
}

// BreakerState is a point-in-time view of a breaker.
type BreakerState struct {
	State        string    `json:"state"`
	Failures     int       `json:"failures"`
	LastFailedAt time.Time `json:"last_failed_at,omitzero"`
}

func NewBreaker(name string, next Notifier, threshold int, cooldown time.Duration, clk clock.PassiveClock, logger *slog.Logger) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Breaker{
		name:      name,
		next:      next,
		threshold: threshold,
		cooldown:  cooldown,
		clock:     clk,
		logger:    logger,
		state:     StateClosed,
	}
}

// Notify forwards the alert unless the circuit is open.
func (b *Breaker) Notify(ctx context.Context, alert Alert) error {
	if !b.allow() {
		return ErrCircuitOpen
	}

	if err := b.next.Notify(ctx, alert); err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.clock.Since(b.lastFailedAt) < b.cooldown {
			return false
		}
		b.state = StateHalfOpen
		b.trial = true
		b.logger.Info("circuit breaker half-open", "notifier", b.name)
		return true

	case StateHalfOpen:
		// only one trial in flight
		if b.trial {
			return false
		}
		b.trial = true
		return true

	default:
		return true
	}
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.logger.Info("circuit breaker closed (recovered)", "notifier", b.name)
	}
	b.state = StateClosed
	b.failures = 0
	b.trial = false
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailedAt = b.clock.Now()
	b.trial = false

	if b.state == StateHalfOpen {
		b.state = StateOpen
		b.logger.Warn("circuit breaker re-opened (half-open test failed)", "notifier", b.name)
	} else if b.state == StateClosed && b.failures >= b.threshold {
		b.state = StateOpen
		b.logger.Warn("circuit breaker opened",
			"notifier", b.name,
			"failures", b.failures,
			"threshold", b.threshold,
		)
	}
}

// State reports the current state, showing an open circuit whose cooldown
// has elapsed as half-open.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.state
	if state == StateOpen && b.clock.Since(b.lastFailedAt) >= b.cooldown {
		state = StateHalfOpen
	}
	return BreakerState{State: state, Failures: b.failures, LastFailedAt: b.lastFailedAt}
}
