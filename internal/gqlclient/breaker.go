package gqlclient

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker in front of the single remote collaborator. When the
// backend stops answering, requests fast-fail instead of stacking up
// behind the HTTP timeout.
//
// States: closed (requests flow) → open (fast-fail) → half-open (one
// probe allowed through to test recovery).

// BreakerState is the current breaker state.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBackendUnavailable is returned while the breaker is open.
var ErrBackendUnavailable = errors.New("backend no disponible (circuit abierto)")

// BreakerConfig holds tunable parameters.
type BreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip open
	SuccessThreshold int           // consecutive successes in half-open to close
	OpenTimeout      time.Duration // how long to stay open before probing
}

// DefaultBreakerConfig returns the defaults used against the GraphQL backend.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
	}
}

// Breaker implements the pattern with mutex-guarded state transitions.
type Breaker struct {
	mu               sync.Mutex
	state            BreakerState
	failureCount     int
	successCount     int
	lastFailureTime  time.Time
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
}

// NewBreaker creates a breaker in closed state.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	return &Breaker{
		state:            BreakerClosed,
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		openTimeout:      cfg.OpenTimeout,
	}
}

// State returns the current state, transitioning open → half-open once
// the open timeout has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.lastFailureTime) >= b.openTimeout {
		b.state = BreakerHalfOpen
		b.successCount = 0
	}
	return b.state
}

// Execute runs fn through the breaker. Returns ErrBackendUnavailable
// immediately while open. Only transport-level failures should count
// against the breaker: fn decides what it reports.
func (b *Breaker) Execute(fn func() error) error {
	if b.State() == BreakerOpen {
		return ErrBackendUnavailable
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
		return err
	}
	b.onSuccess()
	return nil
}

// onFailure must be called under lock.
func (b *Breaker) onFailure() {
	b.failureCount++
	b.lastFailureTime = time.Now()

	switch b.state {
	case BreakerClosed:
		if b.failureCount >= b.failureThreshold {
			b.state = BreakerOpen
			b.successCount = 0
		}
	case BreakerHalfOpen:
		// Probe failed, back to open.
		b.state = BreakerOpen
		b.failureCount = 0
	}
}

// onSuccess must be called under lock.
func (b *Breaker) onSuccess() {
	switch b.state {
	case BreakerClosed:
		b.failureCount = 0
	case BreakerHalfOpen:
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = BreakerClosed
			b.failureCount = 0
			b.successCount = 0
		}
	}
}
