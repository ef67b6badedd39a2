package feed

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/random"
	"github.com/dyluth/axero/pkg/workspace"
)

const (
	DefaultMinInterval = 20 * time.Second
	DefaultMaxInterval = 60 * time.Second
)

// SchedulerConfig tunes a Scheduler. Zero values take the defaults.
type SchedulerConfig struct {
	MinInterval time.Duration
	MaxInterval time.Duration
	Templates   []Template

	// Rand drives both the delay and the template choice. Nil seeds a new one.
	Rand *rand.Rand

	// OnEmit is called after each entry is pushed, outside any lock.
	OnEmit func(workspace.FeedEntry)
}

// Scheduler pushes a random template into a Feed after a random delay, then
// draws a new delay and does it again, until Stop.
type Scheduler struct {
	feed      *Feed
	templates []Template
	min, max  time.Duration
	onEmit    func(workspace.FeedEntry)

	rngMu sync.Mutex
	rng   *rand.Rand

	chain *clock.Rescheduler
}

// NewScheduler creates a stopped scheduler feeding f.
func NewScheduler(f *Feed, c clock.Clock, cfg SchedulerConfig) *Scheduler {
	s := &Scheduler{
		feed:      f,
		templates: cfg.Templates,
		min:       cfg.MinInterval,
		max:       cfg.MaxInterval,
		onEmit:    cfg.OnEmit,
		rng:       cfg.Rand,
	}
	if len(s.templates) == 0 {
		s.templates = DefaultTemplates
	}
	if s.min <= 0 {
		s.min = DefaultMinInterval
	}
	if s.max <= 0 {
		s.max = DefaultMaxInterval
	}
	if s.max < s.min {
		s.max = s.min
	}
	if s.rng == nil {
		s.rng = random.New()
	}

	s.chain = clock.NewRescheduler(c, s.nextDelay, s.emit)
	return s
}

// Start arms the first emission. Returns false if already started.
func (s *Scheduler) Start() bool {
	return s.chain.Start()
}

// Stop cancels the pending emission. Nothing is pushed after Stop returns,
// except by an emission already in progress.
func (s *Scheduler) Stop() bool {
	return s.chain.Stop()
}

// Running reports whether an emission is armed.
func (s *Scheduler) Running() bool {
	return s.chain.Running()
}

// Emit pushes one entry now and, if running, restarts the wait for the next.
func (s *Scheduler) Emit() workspace.FeedEntry {
	entry := s.push()
	s.chain.Reschedule()
	return entry
}

func (s *Scheduler) emit() {
	s.push()
}

func (s *Scheduler) push() workspace.FeedEntry {
	s.rngMu.Lock()
	t := s.templates[s.rng.IntN(len(s.templates))]
	s.rngMu.Unlock()

	entry := s.feed.Push(t)
	if s.onEmit != nil {
		s.onEmit(entry)
	}
	return entry
}

// nextDelay is uniform over [min, max].
func (s *Scheduler) nextDelay() time.Duration {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.min + time.Duration(s.rng.Int64N(int64(s.max-s.min)+1))
}
