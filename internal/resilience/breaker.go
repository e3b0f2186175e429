// Package resilience provides reliability patterns for calls to optional
// collaborators such as the audit event mirror.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the circuit breaker is open and rejecting calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the position of the breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker opens after maxFailures consecutive failures and rejects calls
// until timeout has elapsed, then lets a single probe through.
type Breaker struct {
	name        string
	mu          sync.Mutex
	state       State
	failures    int
	maxFailures int
	timeout     time.Duration
	openedAt    time.Time
	onChange    func(name string, from, to State)
	now         func() time.Time // for testing
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithStateChange registers fn to be called on every state transition.
// fn runs with the breaker lock held and must not call back into it.
func WithStateChange(fn func(name string, from, to State)) Option {
	return func(b *Breaker) { b.onChange = fn }
}

// NewBreaker creates a circuit breaker identified by name.
func NewBreaker(name string, maxFailures int, timeout time.Duration, opts ...Option) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	b := &Breaker{
		name:        name,
		maxFailures: maxFailures,
		timeout:     timeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the breaker's identifier.
func (b *Breaker) Name() string { return b.name }

// State returns the current state without side effects.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Execute runs fn unless the circuit is open. Context cancellation is not
// counted as a failure of the protected call.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.allowRequest() {
		return ErrCircuitOpen
	}

	err := fn(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case err == nil:
		b.onSuccess()
	case errors.Is(err, context.Canceled):
		// caller went away; says nothing about the collaborator
	default:
		b.onFailure()
	}
	return err
}

func (b *Breaker) allowRequest() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateOpen:
		if b.now().Sub(b.openedAt) >= b.timeout {
			b.transition(StateHalfOpen)
			return true
		}
		return false
	case StateHalfOpen:
		return true
	}
	return false
}

// onFailure must be called with b.mu held.
func (b *Breaker) onFailure() {
	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.maxFailures {
		b.openedAt = b.now()
		b.transition(StateOpen)
	}
}

// onSuccess must be called with b.mu held.
func (b *Breaker) onSuccess() {
	b.failures = 0
	b.transition(StateClosed)
}

// transition must be called with b.mu held.
func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	if b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}
