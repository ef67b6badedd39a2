// Package feed simulates a notification feed: entries arrive from a template
// pool at random intervals, newest first, and can be marked read in bulk.
package feed

import (
	"sync"

	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/pkg/workspace"
	"github.com/google/uuid"
)

// DefaultMaxEntries caps the feed when no other limit is configured.
const DefaultMaxEntries = 50

// Template is the static part of a feed entry.
type Template struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// DefaultTemplates is the built-in notification pool.
var DefaultTemplates = []Template{
	{Title: "New message from Sarah", Description: "Great presentation today! Can we sync on Q4?"},
	{Title: "Meeting reminder", Description: "Design review starts in 10 minutes in Conference A"},
	{Title: "Build succeeded", Description: "main passed all checks and was deployed to staging"},
	{Title: "Coffee is ready", Description: "Fresh pot in the 3rd floor kitchen"},
	{Title: "Document shared", Description: `Alex shared "Q4 Report" with you`},
	{Title: "Wellness check-in", Description: "Time to stretch and grab some water"},
}

// Feed holds entries newest first. It is safe for concurrent use.
type Feed struct {
	clock      clock.Clock
	maxEntries int

	mu      sync.RWMutex
	entries []workspace.FeedEntry
}

// New creates an empty feed. maxEntries <= 0 means unbounded; otherwise the
// oldest entries are dropped once the feed grows past it.
func New(c clock.Clock, maxEntries int) *Feed {
	return &Feed{clock: c, maxEntries: maxEntries}
}

// Push builds an unread entry from t with a fresh time-ordered id and the
// current time, prepends it and returns it.
func (f *Feed) Push(t Template) workspace.FeedEntry {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	entry := workspace.FeedEntry{
		ID:          id.String(),
		Title:       t.Title,
		Description: t.Description,
		CreatedAtMs: f.clock.Now().UnixMilli(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, workspace.FeedEntry{})
	copy(f.entries[1:], f.entries)
	f.entries[0] = entry

	if f.maxEntries > 0 && len(f.entries) > f.maxEntries {
		clear(f.entries[f.maxEntries:])
		f.entries = f.entries[:f.maxEntries]
	}

	return entry
}

// Entries returns a copy of the feed, newest first.
func (f *Feed) Entries() []workspace.FeedEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]workspace.FeedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// MarkAllRead flags every entry read and returns how many changed.
// A second call returns 0.
func (f *Feed) MarkAllRead() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	changed := 0
	for i := range f.entries {
		if !f.entries[i].Read {
			f.entries[i].Read = true
			changed++
		}
	}
	return changed
}

// MarkReadThrough flags entries created at or before createdAtMs read and
// returns how many changed. Later entries keep their state.
func (f *Feed) MarkReadThrough(createdAtMs int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	changed := 0
	for i := range f.entries {
		if !f.entries[i].Read && f.entries[i].CreatedAtMs <= createdAtMs {
			f.entries[i].Read = true
			changed++
		}
	}
	return changed
}

// UnreadCount counts entries not yet read.
func (f *Feed) UnreadCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, e := range f.entries {
		if !e.Read {
			n++
		}
	}
	return n
}

// Len returns the number of entries.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}
