package clock

import (
	"sync"
	"time"
)

// Rescheduler runs fn after a delay, then arms itself again with a fresh
// delay, until Stop. Each round's delay comes from calling delay, so the gap
// between runs can vary. At most one run is pending at any time.
//
// Delays <= 0 are raised to one millisecond.
type Rescheduler struct {
	clock Clock
	delay func() time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *Timer
	gen     uint64
	running bool
}

// NewRescheduler creates a stopped Rescheduler.
func NewRescheduler(c Clock, delay func() time.Duration, fn func()) *Rescheduler {
	return &Rescheduler{clock: c, delay: delay, fn: fn}
}

// Start arms the first run. Returns false if already running.
func (r *Rescheduler) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	r.armLocked()
	return true
}

// Stop cancels the pending run. No run is armed after Stop returns.
// Returns false if it was not running.
func (r *Rescheduler) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return false
	}
	r.running = false
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	return true
}

// Reschedule replaces the pending run with one at a freshly drawn delay.
// Returns false if it is not running.
func (r *Rescheduler) Reschedule() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return false
	}
	r.armLocked()
	return true
}

// Running reports whether a run is armed.
func (r *Rescheduler) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Rescheduler) armLocked() {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.gen++
	gen := r.gen

	d := r.delay()
	if d <= 0 {
		d = time.Millisecond
	}
	r.timer = r.clock.AfterFunc(d, func() { r.fire(gen) })
}

func (r *Rescheduler) fire(gen uint64) {
	r.mu.Lock()
	if !r.running || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.mu.Unlock()

	r.fn()

	r.mu.Lock()
	defer r.mu.Unlock()
	// fn may have called Stop or Reschedule.
	if r.running && gen == r.gen {
		r.armLocked()
	}
}
