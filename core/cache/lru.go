package cache

import (
	"container/list"
	"context"
	"sync"
)

type lruEntry[T any] struct {
	key   string
	value T
}

// LRU is a capacity-bounded in-process cache with least-recently-used
// eviction. A hit refreshes recency; inserting at capacity evicts the
// coldest entries one at a time until there is room.
type LRU[T any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	clone    func(T) T
}

// NewLRU creates a bounded cache holding at most capacity entries. clone may
// be nil for values that are safe to share by reference.
func NewLRU[T any](capacity int, clone func(T) T) *LRU[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[T]{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		clone:    clone,
	}
}

func (l *LRU[T]) Get(ctx context.Context, key any) (T, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	elem, ok := l.entries[Key(key)]
	if !ok {
		var zero T
		return zero, false, nil
	}

	l.order.MoveToFront(elem)
	value := elem.Value.(*lruEntry[T]).value
	if l.clone != nil {
		value = l.clone(value)
	}
	return value, true, nil
}

func (l *LRU[T]) Set(ctx context.Context, key any, value T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.clone != nil {
		value = l.clone(value)
	}

	keyStr := Key(key)
	if elem, ok := l.entries[keyStr]; ok {
		elem.Value.(*lruEntry[T]).value = value
		l.order.MoveToFront(elem)
		return nil
	}

	for len(l.entries) >= l.capacity {
		oldest := l.order.Back()
		if oldest == nil {
			break
		}
		l.order.Remove(oldest)
		delete(l.entries, oldest.Value.(*lruEntry[T]).key)
	}

	l.entries[keyStr] = l.order.PushFront(&lruEntry[T]{key: keyStr, value: value})
	return nil
}

func (l *LRU[T]) Delete(ctx context.Context, key any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	keyStr := Key(key)
	if elem, ok := l.entries[keyStr]; ok {
		l.order.Remove(elem)
		delete(l.entries, keyStr)
	}
	return nil
}

// Len returns the current entry count.
func (l *LRU[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
