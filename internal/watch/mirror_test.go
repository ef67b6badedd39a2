package watch

import (
	"context"
	"testing"
	"time"

	"github.com/dyluth/axero/pkg/workspace"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title string, ms int64) *workspace.FeedEntry {
	return &workspace.FeedEntry{ID: uuid.Must(uuid.NewV7()).String(), Title: title, CreatedAtMs: ms}
}

func TestFeedMirror(t *testing.T) {
	client, mr := setupClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	existing := entry("existing", 1)
	require.NoError(t, client.AppendFeedEntry(ctx, existing, 0))

	mirror := NewFeedMirror(client, 2)
	done := make(chan error, 1)
	go func() { done <- mirror.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(mirror.Entries()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(workspace.FeedReadEventsChannel("test-instance"))[workspace.FeedReadEventsChannel("test-instance")] == 1
	}, 2*time.Second, 10*time.Millisecond)

	t.Run("prepends live entries and trims", func(t *testing.T) {
		require.NoError(t, client.AppendFeedEntry(ctx, entry("second", 2), 0))
		require.NoError(t, client.AppendFeedEntry(ctx, entry("third", 3), 0))

		require.Eventually(t, func() bool {
			got := mirror.Entries()
			return len(got) == 2 && got[0].Title == "third"
		}, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, "second", mirror.Entries()[1].Title)
	})

	t.Run("mark all read updates local and remote", func(t *testing.T) {
		assert.Equal(t, 2, mirror.MarkAllRead())
		for _, e := range mirror.Entries() {
			assert.True(t, e.Read)
		}

		remote, err := client.ListFeed(ctx)
		require.NoError(t, err)
		for _, e := range remote {
			assert.True(t, e.Read)
		}
	})

	t.Run("remote read events apply locally", func(t *testing.T) {
		require.NoError(t, client.AppendFeedEntry(ctx, entry("fourth", 4), 0))
		require.Eventually(t, func() bool {
			got := mirror.Entries()
			return len(got) == 2 && got[0].Title == "fourth" && !got[0].Read
		}, 2*time.Second, 10*time.Millisecond)

		_, err := client.MarkFeedRead(ctx)
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			return mirror.Entries()[0].Read
		}, 2*time.Second, 10*time.Millisecond)
	})

	cancel()
	assert.NoError(t, <-done)
}

func TestRosterMirror(t *testing.T) {
	client, _ := setupClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirror := NewRosterMirror(client)
	assert.Empty(t, mirror.Snapshot().Employees)

	done := make(chan error, 1)
	go func() { done <- mirror.Run(ctx) }()

	snapshot := &workspace.RosterSnapshot{
		Employees: []workspace.Employee{{ID: "1", Name: "Alex Chen", Department: workspace.DepartmentEngineering, Mood: workspace.MoodHappy, ActivityLevel: 0.5}},
		Tick:      2,
	}

	require.Eventually(t, func() bool {
		_ = client.PutRoster(ctx, snapshot)
		return mirror.Snapshot().Tick == 2
	}, 2*time.Second, 20*time.Millisecond)

	mirror.apply(&workspace.RosterSnapshot{Employees: snapshot.Employees, Tick: 1})
	assert.Equal(t, uint64(2), mirror.Snapshot().Tick, "stale tick ignored")

	cancel()
	assert.NoError(t, <-done)
}

func TestRosterMirrorFollowsRestartedSimulator(t *testing.T) {
	client, _ := setupClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirror := NewRosterMirror(client)
	done := make(chan error, 1)
	go func() { done <- mirror.Run(ctx) }()

	withActivity := func(level float64) []workspace.Employee {
		return []workspace.Employee{{ID: "1", Name: "Alex Chen", Department: workspace.DepartmentEngineering, Mood: workspace.MoodHappy, ActivityLevel: level}}
	}

	old := &workspace.RosterSnapshot{Employees: withActivity(0.8), Tick: 500, TickedAtMs: 3_000_000, StartedAtMs: 1_000_000}
	require.Eventually(t, func() bool {
		_ = client.PutRoster(ctx, old)
		return mirror.Snapshot().Tick == 500
	}, 2*time.Second, 20*time.Millisecond)

	// The restarted process counts ticks from zero again.
	restarted := &workspace.RosterSnapshot{Employees: withActivity(0.4), Tick: 0, StartedAtMs: 4_000_000}
	require.NoError(t, client.PutRoster(ctx, restarted))
	require.Eventually(t, func() bool {
		s := mirror.Snapshot()
		return s.StartedAtMs == 4_000_000 && s.Tick == 0
	}, 2*time.Second, 20*time.Millisecond)

	next := &workspace.RosterSnapshot{Employees: withActivity(0.3), Tick: 1, TickedAtMs: 4_004_000, StartedAtMs: 4_000_000}
	require.NoError(t, client.PutRoster(ctx, next))
	require.Eventually(t, func() bool {
		return mirror.Snapshot().Tick == 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, 0.3, mirror.Snapshot().Employees[0].ActivityLevel)

	// A late snapshot from the previous process is ignored.
	mirror.apply(&workspace.RosterSnapshot{Employees: withActivity(0.9), Tick: 501, StartedAtMs: 1_000_000})
	assert.Equal(t, uint64(1), mirror.Snapshot().Tick)
	assert.Equal(t, int64(4_000_000), mirror.Snapshot().StartedAtMs)

	cancel()
	assert.NoError(t, <-done)
}
