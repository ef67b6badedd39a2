// Package focus implements the focus-mode pomodoro countdown.
package focus

import (
	"fmt"
	"sync"
	"time"

	"github.com/dyluth/axero/internal/clock"
)

const (
	DefaultDuration = 25 * time.Minute
	Resolution      = time.Second

	CompleteTitle = "Pomodoro Complete!"
	CompleteBody  = "Time for a break! 🎉"
)

// Timer counts down in whole seconds while running. At zero it stops and
// calls onComplete once; Reset arms it again.
type Timer struct {
	duration   time.Duration
	onComplete func()
	chain      *clock.Rescheduler

	mu        sync.Mutex
	remaining time.Duration
}

// NewTimer creates a paused timer. duration <= 0 uses DefaultDuration.
// onComplete may be nil.
func NewTimer(c clock.Clock, duration time.Duration, onComplete func()) *Timer {
	if duration <= 0 {
		duration = DefaultDuration
	}
	t := &Timer{duration: duration, onComplete: onComplete, remaining: duration}
	t.chain = clock.NewRescheduler(c, func() time.Duration { return Resolution }, t.tick)
	return t
}

// Start resumes the countdown. Returns false if it is already running or
// has reached zero.
func (t *Timer) Start() bool {
	if t.Remaining() <= 0 {
		return false
	}
	return t.chain.Start()
}

// Pause halts the countdown. Returns false if it was not running.
func (t *Timer) Pause() bool {
	return t.chain.Stop()
}

// Toggle starts a paused timer or pauses a running one, and reports whether
// it is now running.
func (t *Timer) Toggle() bool {
	if t.Running() {
		t.Pause()
		return false
	}
	return t.Start()
}

// Reset pauses and restores the full duration.
func (t *Timer) Reset() {
	t.chain.Stop()
	t.mu.Lock()
	t.remaining = t.duration
	t.mu.Unlock()
}

// Close stops the countdown for good.
func (t *Timer) Close() {
	t.chain.Stop()
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	return t.chain.Running()
}

// Remaining is the time left.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Duration is the full session length.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Progress is the elapsed fraction of the session, in [0,1].
func (t *Timer) Progress() float64 {
	return 1 - float64(t.Remaining())/float64(t.duration)
}

func (t *Timer) tick() {
	t.mu.Lock()
	if t.remaining <= 0 {
		t.mu.Unlock()
		return
	}
	t.remaining -= Resolution
	if t.remaining < 0 {
		t.remaining = 0
	}
	done := t.remaining == 0
	t.mu.Unlock()

	if done {
		t.chain.Stop()
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

// Format renders d as mm:ss, rounding partial seconds down.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
