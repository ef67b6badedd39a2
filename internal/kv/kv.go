// Package kv defines the key-value port the dashboard persists its settings
// record and widget order through, plus the in-memory and Redis adapters.
// A local file implementation lives in kv/sqlitekv.
package kv

import (
	"context"
	"errors"
	"sync"

	"github.com/dyluth/axero/pkg/workspace"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store reads and writes serialized records by key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Memory is a Store held in process memory. The zero value is not usable;
// call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value for key or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Redis adapts a workspace client to Store. Keys are namespaced by the
// client's instance.
type Redis struct {
	client *workspace.Client
}

// NewRedis wraps client.
func NewRedis(client *workspace.Client) *Redis {
	return &Redis{client: client}
}

// Get returns the value for key or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key)
	if err != nil {
		if workspace.IsNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores value under key.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value)
}
