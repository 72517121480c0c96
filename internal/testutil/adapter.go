// Package testutil provides shared test helpers, chiefly an in-memory
// key-value adapter so store, recurring, and backup tests can run
// without a database file.
package testutil

import (
	"context"
	"fmt"
	"sync"
)

// MemAdapter is an in-memory store.Adapter. The zero value is not
// usable; create one with NewMemAdapter.
type MemAdapter struct {
	mu     sync.Mutex
	data   map[string]string
	sets   int
	failed bool
}

// NewMemAdapter returns an empty in-memory adapter.
func NewMemAdapter() *MemAdapter {
	return &MemAdapter{data: make(map[string]string)}
}

// Seed pre-populates a key without counting it as a write.
func (m *MemAdapter) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// FailWrites makes every subsequent Set and Remove return an error,
// for exercising best-effort persistence paths.
func (m *MemAdapter) FailWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = true
}

// SetCount reports how many successful Set calls happened.
func (m *MemAdapter) SetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func (m *MemAdapter) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemAdapter) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed {
		return fmt.Errorf("adapter writes disabled")
	}
	m.data[key] = value
	m.sets++
	return nil
}

func (m *MemAdapter) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed {
		return fmt.Errorf("adapter writes disabled")
	}
	delete(m.data, key)
	return nil
}
