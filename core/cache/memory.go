package cache

import (
	"context"
	"sync"
)

// Memory is an unbounded in-process cache. It is meant for small, fixed
// populations (configuration rows, session state); anything user-driven
// belongs in the bounded LRU instead.
type Memory[T any] struct {
	mu      sync.Mutex
	entries map[string]T
	clone   func(T) T
}

// NewMemory creates an unbounded in-process cache. clone may be nil when
// callers are trusted not to mutate returned values in place.
func NewMemory[T any](clone func(T) T) *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]T),
		clone:   clone,
	}
}

func (m *Memory[T]) Get(ctx context.Context, key any) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.entries[Key(key)]
	if !ok {
		var zero T
		return zero, false, nil
	}
	if m.clone != nil {
		value = m.clone(value)
	}
	return value, true, nil
}

func (m *Memory[T]) Set(ctx context.Context, key any, value T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.clone != nil {
		value = m.clone(value)
	}
	m.entries[Key(key)] = value
	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, key any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, Key(key))
	return nil
}
