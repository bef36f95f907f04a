package twin

import (
	"sync"
)

// table is a thread-safe in-memory collection of records that remembers insertion order, so
// that lists come back in a stable order.
type table[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{items: make(map[string]T)}
}

func (t *table[T]) set(id string, item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[id]; !exists {
		t.order = append(t.order, id)
	}
	t.items[id] = item
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	item, ok := t.items[id]
	return item, ok
}

func (t *table[T]) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[id]; !exists {
		return false
	}
	delete(t.items, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// update applies fn to the item with the given ID while holding the lock, and stores the
// result. It returns false if there is no such item.
func (t *table[T]) update(id string, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item, ok := t.items[id]
	if !ok {
		return item, false
	}
	fn(&item)
	t.items[id] = item
	return item, true
}

// filter returns the items for which keep returns true, in insertion order.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ret := make([]T, 0)
	for _, id := range t.order {
		if item := t.items[id]; keep(item) {
			ret = append(ret, item)
		}
	}
	return ret
}

// page applies offset and limit to a list. A limit of zero or less means no limit.
func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
