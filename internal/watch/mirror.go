package watch

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/dyluth/axero/pkg/workspace"
)

// markReadTimeout bounds the Redis round trip made by FeedMirror.MarkAllRead.
const markReadTimeout = 2 * time.Second

// FeedMirror keeps a local copy of an instance's feed, newest first, fed by
// the Redis list and its pub/sub events.
type FeedMirror struct {
	client     *workspace.Client
	maxEntries int

	mu      sync.Mutex
	entries []workspace.FeedEntry
}

// NewFeedMirror creates an empty mirror. maxEntries <= 0 keeps everything.
func NewFeedMirror(client *workspace.Client, maxEntries int) *FeedMirror {
	return &FeedMirror{client: client, maxEntries: maxEntries}
}

// Run loads the current feed and applies events until ctx is cancelled.
// Subscriptions are opened before the initial load so no entry is missed;
// entries seen twice are applied once.
func (m *FeedMirror) Run(ctx context.Context) error {
	entries, err := m.client.SubscribeFeedEvents(ctx)
	if err != nil {
		return err
	}
	defer entries.Close()

	reads, err := m.client.SubscribeFeedReadEvents(ctx)
	if err != nil {
		return err
	}
	defer reads.Close()

	initial, err := m.client.ListFeed(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	for i := len(initial) - 1; i >= 0; i-- {
		m.pushLocked(*initial[i])
	}
	m.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-entries.Events():
			if !ok {
				return nil
			}
			m.mu.Lock()
			m.pushLocked(*e)
			m.mu.Unlock()

		case _, ok := <-reads.Events():
			if !ok {
				return nil
			}
			m.markLocal()

		case err := <-entries.Errors():
			if err != nil {
				log.Printf("[Mirror] Feed subscription error: %v", err)
			}

		case err := <-reads.Errors():
			if err != nil {
				log.Printf("[Mirror] Feed read subscription error: %v", err)
			}
		}
	}
}

func (m *FeedMirror) pushLocked(e workspace.FeedEntry) {
	if slices.ContainsFunc(m.entries, func(have workspace.FeedEntry) bool { return have.ID == e.ID }) {
		return
	}
	m.entries = slices.Insert(m.entries, 0, e)
	if m.maxEntries > 0 && len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
}

func (m *FeedMirror) markLocal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	changed := 0
	for i := range m.entries {
		if !m.entries[i].Read {
			m.entries[i].Read = true
			changed++
		}
	}
	return changed
}

// Entries returns a copy of the mirrored feed, newest first.
func (m *FeedMirror) Entries() []workspace.FeedEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries)
}

// MarkAllRead marks the local copy read and asks Redis to do the same.
// Returns the number of local entries that changed. A Redis failure is
// logged; the read event from a later success reconciles other mirrors.
func (m *FeedMirror) MarkAllRead() int {
	changed := m.markLocal()

	ctx, cancel := context.WithTimeout(context.Background(), markReadTimeout)
	defer cancel()
	if _, err := m.client.MarkFeedRead(ctx); err != nil {
		log.Printf("[Mirror] Failed to mark feed read: %v", err)
	}
	return changed
}

// RosterMirror holds the latest roster snapshot published for an instance.
type RosterMirror struct {
	client *workspace.Client

	mu      sync.Mutex
	current workspace.RosterSnapshot
}

// NewRosterMirror creates a mirror holding an empty snapshot.
func NewRosterMirror(client *workspace.Client) *RosterMirror {
	return &RosterMirror{client: client}
}

// Run loads the stored snapshot, if any, and follows roster events until
// ctx is cancelled. Older ticks never replace newer ones.
func (m *RosterMirror) Run(ctx context.Context) error {
	sub, err := m.client.SubscribeRosterEvents(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	snapshot, err := m.client.GetRoster(ctx)
	switch {
	case err == nil:
		m.apply(snapshot)
	case !workspace.IsNotFound(err):
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-sub.Events():
			if !ok {
				return nil
			}
			m.apply(s)
		case err := <-sub.Errors():
			if err != nil {
				log.Printf("[Mirror] Roster subscription error: %v", err)
			}
		}
	}
}

func (m *RosterMirror) apply(s *workspace.RosterSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !s.Newer(&m.current) {
		return
	}
	m.current = *s
}

// Snapshot returns a copy of the latest snapshot.
func (m *RosterMirror) Snapshot() workspace.RosterSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return workspace.RosterSnapshot{
		Employees:  slices.Clone(m.current.Employees),
		TickedAtMs:  m.current.TickedAtMs,
		Tick:        m.current.Tick,
		StartedAtMs: m.current.StartedAtMs,
	}
}
