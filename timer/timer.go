// Package timer provides a one-shot deadline timer whose readiness is
// both select-able and pollable. It is the timing primitive the timeout
// combinator in the future package races computations against.
package timer

import (
	"time"

	"go.uber.org/atomic"
)

// Timer becomes ready no earlier than the requested duration after
// construction. Readiness is monotonic: once the timer has fired it
// stays ready forever.
//
// Readiness is exposed two ways:
//   - Ready returns a channel that is closed when the timer fires,
//     so any number of goroutines can select on it.
//   - Expired is a non-blocking check of the same state.
type Timer struct {
	ready   chan struct{}
	expired *atomic.Bool
	inner   *time.Timer // nil when the duration was zero or negative
}

// After creates a Timer that fires once the given duration has elapsed.
// A zero or negative duration produces a Timer that is already ready.
func After(dur time.Duration) *Timer {
	t := &Timer{
		ready:   make(chan struct{}),
		expired: atomic.NewBool(false),
	}

	if dur <= 0 {
		t.fire()

		return t
	}

	t.inner = time.AfterFunc(dur, t.fire)

	return t
}

// fire marks the timer expired and broadcasts readiness.
// The flag is set before the channel closes, so anyone woken by the
// channel observes Expired() == true.
func (t *Timer) fire() {
	t.expired.Store(true)
	close(t.ready)
}

// Ready returns a channel that is closed when the timer fires.
// Receiving from it never yields a value; it only unblocks.
func (t *Timer) Ready() <-chan struct{} {
	return t.ready
}

// Expired reports whether the timer has fired. Once true, it stays true.
func (t *Timer) Expired() bool {
	return t.expired.Load()
}

// Stop releases the underlying runtime timer if it has not fired yet.
// It returns true if the timer was stopped before firing. A stopped
// timer never becomes ready. Stopping an already-fired or zero-duration
// timer is a no-op returning false.
func (t *Timer) Stop() bool {
	if t.inner == nil {
		return false
	}

	return t.inner.Stop()
}
