// Package roster simulates live activity across a fixed set of employees.
//
// Every tick rewrites each employee's activity level, mood and vertical
// offset and publishes the result as one new snapshot, so readers only ever
// see a whole roster from a single tick.
package roster

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/random"
	"github.com/dyluth/axero/pkg/workspace"
)

const (
	MinActivity = 0.2
	MaxActivity = 1.0

	// MaxDelta bounds the per-tick activity change in either direction.
	MaxDelta = 0.15

	bobFrequency = 2.0
	bobAmplitude = 0.1
)

// DefaultEmployees returns the built-in office roster.
func DefaultEmployees() []workspace.Employee {
	return []workspace.Employee{
		{ID: "1", Name: "Alex Chen", Department: workspace.DepartmentEngineering, Position: workspace.Position{X: 2, Z: 1}, Mood: workspace.MoodHappy, ActivityLevel: 0.8},
		{ID: "2", Name: "Sarah Johnson", Department: workspace.DepartmentMarketing, Position: workspace.Position{X: -1, Z: 2}, Mood: workspace.MoodFiredUp, ActivityLevel: 0.9},
		{ID: "3", Name: "Mike Davis", Department: workspace.DepartmentSales, Position: workspace.Position{X: 1, Z: -1}, Mood: workspace.MoodCool, ActivityLevel: 0.7},
		{ID: "4", Name: "Emma Wilson", Department: workspace.DepartmentHR, Position: workspace.Position{X: -2}, Mood: workspace.MoodCollaborative, ActivityLevel: 0.6},
		{ID: "5", Name: "David Kim", Department: workspace.DepartmentEngineering, Position: workspace.Position{Z: 2}, Mood: workspace.MoodThinking, ActivityLevel: 0.5},
		{ID: "6", Name: "Lisa Garcia", Department: workspace.DepartmentMarketing, Position: workspace.Position{X: 1, Z: 1}, Mood: workspace.MoodSleepy, ActivityLevel: 0.3},
	}
}

// Step applies delta to level and clamps the result to [MinActivity, MaxActivity].
func Step(level, delta float64) float64 {
	return min(max(level+delta, MinActivity), MaxActivity)
}

// VerticalOffset is the bob height for the employee at index at time t.
// It depends only on t and index.
func VerticalOffset(t time.Time, index int) float64 {
	seconds := float64(t.UnixMilli()) / 1000
	return math.Sin(seconds*bobFrequency+float64(index)) * bobAmplitude
}

// Roster owns the current snapshot. Tick may be called from any goroutine.
type Roster struct {
	clock clock.Clock

	mu    sync.Mutex // serializes Tick and guards rng
	rng   *rand.Rand
	delta func() float64

	current atomic.Pointer[workspace.RosterSnapshot]
}

// New creates a roster from employees. rng may be nil.
func New(c clock.Clock, employees []workspace.Employee, rng *rand.Rand) (*Roster, error) {
	if len(employees) == 0 {
		return nil, fmt.Errorf("roster must have at least one employee")
	}

	initial := &workspace.RosterSnapshot{Employees: slices.Clone(employees), StartedAtMs: c.Now().UnixMilli()}
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}

	if rng == nil {
		rng = random.New()
	}

	r := &Roster{clock: c, rng: rng}
	r.delta = func() float64 { return (r.rng.Float64()*2 - 1) * MaxDelta }
	r.current.Store(initial)
	return r, nil
}

// Snapshot returns a copy of the latest snapshot.
func (r *Roster) Snapshot() workspace.RosterSnapshot {
	s := r.current.Load()
	return workspace.RosterSnapshot{
		Employees:  slices.Clone(s.Employees),
		TickedAtMs:  s.TickedAtMs,
		Tick:        s.Tick,
		StartedAtMs: s.StartedAtMs,
	}
}

// Tick perturbs every employee and swaps in the new snapshot, which it returns.
func (r *Roster) Tick() workspace.RosterSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.current.Load()
	now := r.clock.Now()

	next := &workspace.RosterSnapshot{
		Employees:  make([]workspace.Employee, len(prev.Employees)),
		TickedAtMs:  now.UnixMilli(),
		Tick:        prev.Tick + 1,
		StartedAtMs: prev.StartedAtMs,
	}
	for i, e := range prev.Employees {
		e.ActivityLevel = Step(e.ActivityLevel, r.delta())
		e.Mood = workspace.Moods[r.rng.IntN(len(workspace.Moods))]
		e.VerticalOffset = VerticalOffset(now, i)
		next.Employees[i] = e
	}

	r.current.Store(next)
	return workspace.RosterSnapshot{
		Employees:  slices.Clone(next.Employees),
		TickedAtMs:  next.TickedAtMs,
		Tick:        next.Tick,
		StartedAtMs: next.StartedAtMs,
	}
}
