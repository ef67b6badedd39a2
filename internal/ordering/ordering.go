// Package ordering keeps a user-controlled display order over a fixed set of
// items and persists it as a plain list of identifiers.
//
// The order is always a permutation of the declared keys. A stored order that
// is not such a permutation (stale ids from an older catalog, duplicates,
// truncation, bad JSON) is ignored in favour of declaration order.
package ordering

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/dyluth/axero/internal/kv"
)

// Item pairs an identifier with its static content.
type Item[K comparable, V any] struct {
	Key   K
	Value V
}

// IsPermutation reports whether order contains exactly the members of keys,
// each once.
func IsPermutation[K comparable](keys, order []K) bool {
	if len(order) != len(keys) || len(order) == 0 {
		return false
	}

	remaining := make(map[K]int, len(keys))
	for _, k := range keys {
		remaining[k]++
	}
	for _, k := range order {
		if remaining[k] == 0 {
			return false
		}
		remaining[k]--
	}
	return true
}

// Initialize returns stored when it is a valid permutation of declared, and a
// copy of declared otherwise.
func Initialize[K comparable](declared, stored []K) []K {
	if IsPermutation(declared, stored) {
		return slices.Clone(stored)
	}
	return slices.Clone(declared)
}

// Decode parses a persisted identifier list. ok is false for anything that is
// not a JSON array of K.
func Decode[K comparable](raw string) (order []K, ok bool) {
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, false
	}
	return order, true
}

// Encode serializes an order as a JSON array of identifiers.
func Encode[K comparable](order []K) (string, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("failed to encode order: %w", err)
	}
	return string(data), nil
}

// Move removes the element at from and reinserts it at to in the shortened
// sequence. It returns a new slice and true, or the input unchanged and false
// when from == to or either index is outside [0, len(order)).
func Move[K comparable](order []K, from, to int) ([]K, bool) {
	n := len(order)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return order, false
	}

	moved := order[from]
	result := make([]K, 0, n)
	result = append(result, order[:from]...)
	result = append(result, order[from+1:]...)
	result = slices.Insert(result, to, moved)
	return result, true
}

// Collection is a fixed item set with a persisted, reorderable order.
// It is safe for concurrent use.
type Collection[K comparable, V any] struct {
	declared []K
	items    map[K]V
	store    kv.Store
	key      string

	mu    sync.RWMutex
	order []K
}

// New builds a collection from items in declaration order. The order starts
// as declaration order until Load is called. store may be nil, in which case
// nothing is persisted.
func New[K comparable, V any](items []Item[K, V], store kv.Store, key string) (*Collection[K, V], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("collection must declare at least one item")
	}

	declared := make([]K, 0, len(items))
	byKey := make(map[K]V, len(items))
	for _, it := range items {
		if _, dup := byKey[it.Key]; dup {
			return nil, fmt.Errorf("duplicate item key: %v", it.Key)
		}
		byKey[it.Key] = it.Value
		declared = append(declared, it.Key)
	}

	return &Collection[K, V]{
		declared: declared,
		items:    byKey,
		store:    store,
		key:      key,
		order:    slices.Clone(declared),
	}, nil
}

// Load restores the persisted order. Any read or validation failure leaves
// declaration order in place.
func (c *Collection[K, V]) Load(ctx context.Context) {
	var stored []K
	if c.store != nil {
		if raw, err := c.store.Get(ctx, c.key); err == nil {
			stored, _ = Decode[K](raw)
		}
	}

	c.mu.Lock()
	c.order = Initialize(c.declared, stored)
	c.mu.Unlock()
}

// Order returns a copy of the current order.
func (c *Collection[K, V]) Order() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Declared returns a copy of the declaration order.
func (c *Collection[K, V]) Declared() []K {
	return slices.Clone(c.declared)
}

// Items returns the item values in current order.
func (c *Collection[K, V]) Items() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values := make([]V, 0, len(c.order))
	for _, k := range c.order {
		values = append(values, c.items[k])
	}
	return values
}

// Get returns the item with the given key.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	v, ok := c.items[key]
	return v, ok
}

// Len returns the number of items.
func (c *Collection[K, V]) Len() int {
	return len(c.declared)
}

// Move applies Move to the current order and persists the result. It reports
// whether the order changed; a no-op move is not persisted. Storage errors are
// dropped, use MoveAndSave when the caller must know.
func (c *Collection[K, V]) Move(ctx context.Context, from, to int) bool {
	moved, _ := c.MoveAndSave(ctx, from, to)
	return moved
}

// MoveAndSave is Move that also returns the storage error. The in-memory
// order changes even when saving fails.
func (c *Collection[K, V]) MoveAndSave(ctx context.Context, from, to int) (bool, error) {
	c.mu.Lock()
	next, ok := Move(c.order, from, to)
	if ok {
		c.order = next
	}
	snapshot := slices.Clone(c.order)
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, c.persist(ctx, snapshot)
}

// Reset restores declaration order and persists it, dropping storage errors.
func (c *Collection[K, V]) Reset(ctx context.Context) {
	_ = c.ResetAndSave(ctx)
}

// ResetAndSave is Reset that also returns the storage error.
func (c *Collection[K, V]) ResetAndSave(ctx context.Context) error {
	c.mu.Lock()
	c.order = slices.Clone(c.declared)
	snapshot := slices.Clone(c.order)
	c.mu.Unlock()

	return c.persist(ctx, snapshot)
}

func (c *Collection[K, V]) persist(ctx context.Context, order []K) error {
	if c.store == nil {
		return nil
	}
	raw, err := Encode(order)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}
