package preferences

import (
	"context"
	"sync"

	"github.com/dyluth/axero/internal/kv"
)

// Store owns the current snapshot and writes it through to a kv.Store.
// Storage failures never reach the caller.
type Store struct {
	kv kv.Store

	mu      sync.RWMutex
	current Preferences
}

// NewStore creates a store holding Default(). backend may be nil.
func NewStore(backend kv.Store) *Store {
	return &Store{kv: backend, current: Default()}
}

// Load reads the stored record, falling back to defaults when it is absent
// or invalid, and returns the resulting snapshot.
func (s *Store) Load(ctx context.Context) Preferences {
	p := Default()
	if s.kv != nil {
		if raw, err := s.kv.Get(ctx, Key); err == nil {
			p, _ = Decode(raw)
		}
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return p
}

// Current returns the active snapshot.
func (s *Store) Current() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the snapshot with fn(current) and persists it once.
// If the new snapshot is invalid nothing changes and the error is returned.
func (s *Store) Update(ctx context.Context, fn func(Preferences) Preferences) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.current)
	if err := next.Validate(); err != nil {
		return s.current, err
	}
	s.current = next
	s.persistLocked(ctx)
	return next, nil
}

// Set applies one field change by name. See Apply.
func (s *Store) Set(ctx context.Context, field, value string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Apply(s.current, field, value)
	if err != nil {
		return s.current, err
	}
	s.current = next
	s.persistLocked(ctx)
	return next, nil
}

// Reset restores and persists Default().
func (s *Store) Reset(ctx context.Context) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Default()
	s.persistLocked(ctx)
	return s.current
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.kv == nil {
		return
	}
	raw, err := Encode(s.current)
	if err != nil {
		return
	}
	_ = s.kv.Set(ctx, Key, raw)
}
