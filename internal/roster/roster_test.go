package roster

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/random"
	"github.com/dyluth/axero/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestStep(t *testing.T) {
	tests := []struct {
		level, delta, want float64
	}{
		{0.95, 0.5, 1.0},
		{0.25, -0.5, 0.2},
		{0.5, 0.1, 0.6},
		{0.5, -0.15, 0.35},
		{1.0, 0.15, 1.0},
		{0.2, -0.15, 0.2},
		{0.0, 0.0, 0.2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Step(tt.level, tt.delta), 1e-9, "Step(%v, %v)", tt.level, tt.delta)
	}
}

func TestNew(t *testing.T) {
	clk := clock.Fake(epoch)

	t.Run("rejects empty roster", func(t *testing.T) {
		_, err := New(clk, nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		employees := DefaultEmployees()
		employees[3].ID = "1"
		_, err := New(clk, employees, nil)
		assert.ErrorContains(t, err, "duplicate employee ID")
	})

	t.Run("initial snapshot is the input", func(t *testing.T) {
		r, err := New(clk, DefaultEmployees(), nil)
		require.NoError(t, err)
		s := r.Snapshot()
		assert.Equal(t, uint64(0), s.Tick)
		assert.Equal(t, DefaultEmployees(), s.Employees)
		assert.Equal(t, epoch.UnixMilli(), s.StartedAtMs)
	})

	t.Run("ticks keep the start time", func(t *testing.T) {
		r, err := New(clock.Fake(epoch), DefaultEmployees(), nil)
		require.NoError(t, err)
		s := r.Tick()
		assert.Equal(t, uint64(1), s.Tick)
		assert.Equal(t, epoch.UnixMilli(), s.StartedAtMs)
	})
}

func TestTickClamps(t *testing.T) {
	clk := clock.Fake(epoch)
	employees := []workspace.Employee{
		{ID: "hi", Name: "High", Department: workspace.DepartmentSales, Mood: workspace.MoodCool, ActivityLevel: 0.95},
		{ID: "lo", Name: "Low", Department: workspace.DepartmentHR, Mood: workspace.MoodSleepy, ActivityLevel: 0.25},
	}

	r, err := New(clk, employees, random.NewWithSeed(1))
	require.NoError(t, err)

	r.delta = func() float64 { return 0.5 }
	s := r.Tick()
	assert.Equal(t, 1.0, s.Employees[0].ActivityLevel)

	r.delta = func() float64 { return -0.5 }
	s = r.Tick()
	s = r.Tick()
	assert.InDelta(t, 0.2, s.Employees[1].ActivityLevel, 1e-9)
	assert.GreaterOrEqual(t, s.Employees[1].ActivityLevel, MinActivity)
}

func TestThousandTicks(t *testing.T) {
	clk := clock.Fake(epoch)
	r, err := New(clk, DefaultEmployees(), random.NewWithSeed(42))
	require.NoError(t, err)

	moods := map[workspace.Mood]bool{}
	for i := 0; i < 1000; i++ {
		clk.Advance(DefaultTickInterval)
		s := r.Tick()
		require.Len(t, s.Employees, 6)
		for j, e := range s.Employees {
			want := DefaultEmployees()[j]
			require.Equal(t, want.ID, e.ID)
			require.Equal(t, want.Name, e.Name)
			require.Equal(t, want.Department, e.Department)
			require.Equal(t, want.Position, e.Position)
			require.GreaterOrEqual(t, e.ActivityLevel, MinActivity)
			require.LessOrEqual(t, e.ActivityLevel, MaxActivity)
			require.NoError(t, e.Mood.Validate())
			moods[e.Mood] = true
		}
	}

	s := r.Snapshot()
	assert.Equal(t, uint64(1000), s.Tick)
	assert.Equal(t, clk.Now().UnixMilli(), s.TickedAtMs)
	assert.Len(t, moods, len(workspace.Moods), "every mood should come up")
}

func TestTickDeltaBounds(t *testing.T) {
	r, err := New(clock.Fake(epoch), DefaultEmployees(), random.NewWithSeed(9))
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		d := r.delta()
		require.GreaterOrEqual(t, d, -MaxDelta)
		require.LessOrEqual(t, d, MaxDelta)
	}
}

func TestVerticalOffset(t *testing.T) {
	at := epoch.Add(1234 * time.Millisecond)
	assert.Equal(t, VerticalOffset(at, 3), VerticalOffset(at, 3))
	assert.NotEqual(t, VerticalOffset(at, 0), VerticalOffset(at, 1))
	for i := 0; i < 6; i++ {
		v := VerticalOffset(at, i)
		assert.LessOrEqual(t, v, 0.1)
		assert.GreaterOrEqual(t, v, -0.1)
	}

	clk := clock.Fake(at)
	r, err := New(clk, DefaultEmployees(), nil)
	require.NoError(t, err)
	s := r.Tick()
	r.Tick()
	s2 := r.Tick()
	for i := range s.Employees {
		assert.Equal(t, VerticalOffset(at, i), s.Employees[i].VerticalOffset)
		assert.Equal(t, s.Employees[i].VerticalOffset, s2.Employees[i].VerticalOffset, "offset depends on time only")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	r, err := New(clock.Fake(epoch), DefaultEmployees(), nil)
	require.NoError(t, err)

	s := r.Snapshot()
	s.Employees[0].Name = "mutated"
	assert.Equal(t, "Alex Chen", r.Snapshot().Employees[0].Name)
}

func TestConcurrentReadersSeeWholeTicks(t *testing.T) {
	clk := clock.Fake(epoch)
	r, err := New(clk, DefaultEmployees(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := r.Snapshot()
				if s.Tick == 0 {
					continue
				}
				at := time.UnixMilli(s.TickedAtMs)
				for i, e := range s.Employees {
					if e.VerticalOffset != VerticalOffset(at, i) {
						t.Errorf("tick %d employee %d has offset from another tick", s.Tick, i)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 500; i++ {
		clk.Advance(37 * time.Millisecond)
		r.Tick()
	}
	close(stop)
	wg.Wait()
}

func TestTickerRun(t *testing.T) {
	clk := clock.Fake(epoch)
	r, err := New(clk, DefaultEmployees(), nil)
	require.NoError(t, err)

	ticks := make(chan workspace.RosterSnapshot, 1)
	ticker := NewTicker(r, clk, 0, func(s workspace.RosterSnapshot) { ticks <- s })
	assert.Equal(t, DefaultTickInterval, ticker.interval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ticker.Run(ctx) }()

	clk.WaitForTimers(1)
	for want := uint64(1); want <= 3; want++ {
		clk.Advance(DefaultTickInterval)
		select {
		case s := <-ticks:
			assert.Equal(t, want, s.Tick)
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for tick %d", want)
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
