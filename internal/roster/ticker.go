package roster

import (
	"context"
	"time"

	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/pkg/workspace"
)

// DefaultTickInterval is the period between roster ticks.
const DefaultTickInterval = 4 * time.Second

// Ticker drives Roster.Tick on a fixed period.
type Ticker struct {
	roster   *Roster
	clock    clock.Clock
	interval time.Duration
	onTick   func(workspace.RosterSnapshot)
}

// NewTicker creates a ticker. interval <= 0 uses DefaultTickInterval.
// onTick may be nil.
func NewTicker(r *Roster, c clock.Clock, interval time.Duration, onTick func(workspace.RosterSnapshot)) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{roster: r, clock: c, interval: interval, onTick: onTick}
}

// Run ticks until ctx is cancelled. Returns ctx.Err().
func (t *Ticker) Run(ctx context.Context) error {
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snapshot := t.roster.Tick()
			if t.onTick != nil {
				t.onTick(snapshot)
			}
		}
	}
}
