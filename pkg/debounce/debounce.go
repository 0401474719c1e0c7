// Package debounce delays a value until its input has been quiet for a
// fixed period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the latest pushed value to fn once no new value has
// been pushed for delay. Each Push restarts the timer; only the newest
// value is ever delivered.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	armed   bool
	gen     uint64 // bumped on every Push so an already-fired stale timer is ignored
	stopped bool
}

// New returns a Debouncer calling fn on its own goroutine.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push records v and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush delivers the pending value immediately, if any, on the caller's
// goroutine. It reports whether a value was delivered.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return false
	}
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Stop cancels any pending delivery. Later pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
}

// take must be called with mu held.
func (d *Debouncer[T]) take() T {
	v := d.pending
	var zero T
	d.pending = zero
	d.armed = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return v
}
