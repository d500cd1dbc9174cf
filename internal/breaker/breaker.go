// Package breaker implements a small three-state circuit breaker.
// It wraps any operation; thresholds and cooldowns are independently
// testable from the orchestration logic that uses it.
package breaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Allow while the breaker refuses calls.
var ErrOpen = errors.New("circuit breaker is open")

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

type Settings struct {
	// FailureThreshold is the run of consecutive failures that trips
	// the breaker while closed.
	FailureThreshold int
	// Cooldown is how long the breaker stays open before allowing
	// half-open probes.
	Cooldown time.Duration
	// HalfOpenProbes is how many in-flight probe calls half-open
	// admits at once.
	HalfOpenProbes int
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

type Breaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	probes    int
	now       func() time.Time

	state       State
	failures    int
	openedAt    time.Time
	probesInUse int
}

func New(s Settings) *Breaker {
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = 5
	}
	if s.Cooldown <= 0 {
		s.Cooldown = 30 * time.Second
	}
	if s.HalfOpenProbes <= 0 {
		s.HalfOpenProbes = 1
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return &Breaker{
		threshold: s.FailureThreshold,
		cooldown:  s.Cooldown,
		probes:    s.HalfOpenProbes,
		now:       s.Now,
		state:     StateClosed,
	}
}

// Allow reports whether a call may proceed. Every successful Allow
// must be paired with exactly one Record.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return ErrOpen
		}
		b.state = StateHalfOpen
		b.probesInUse = 0
		fallthrough
	case StateHalfOpen:
		if b.probesInUse >= b.probes {
			return ErrOpen
		}
		b.probesInUse++
		return nil
	}
	return nil
}

// Record reports the outcome of a call admitted by Allow.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.threshold {
			b.trip()
		}
	case StateHalfOpen:
		if b.probesInUse > 0 {
			b.probesInUse--
		}
		if success {
			b.state = StateClosed
			b.failures = 0
			return
		}
		b.trip()
	case StateOpen:
		// A late Record from a call admitted before the trip; ignore.
	}
}

// Do runs fn under the breaker. Failures are judged by isFailure,
// which lets callers exclude domain rejections from tripping it.
func (b *Breaker) Do(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	b.Record(err == nil || !isFailure(err))
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.failures = 0
	b.probesInUse = 0
	b.openedAt = b.now()
}
