package slugs

import (
	"context"
	"fmt"
	"sync"
)

// Fields tells a MemorySource how to read identifiers from T. A nil Visible
// treats every item as visible.
type Fields[T any] struct {
	ID      func(T) string
	Slug    func(T) string
	Visible func(T) bool
}

// MemorySource is a concurrency safe in-memory Source.
type MemorySource[T any] struct {
	mu     sync.RWMutex
	items  []T
	fields Fields[T]
}

// NewMemorySource returns a source over items, in insertion order.
func NewMemorySource[T any](fields Fields[T], items ...T) *MemorySource[T] {
	return &MemorySource[T]{
		items:  append([]T(nil), items...),
		fields: fields,
	}
}

// Replace swaps the backing items.
func (m *MemorySource[T]) Replace(items []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T(nil), items...)
}

// Put appends item, replacing an existing item with the same ID.
func (m *MemorySource[T]) Put(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fields.ID != nil {
		id := m.fields.ID(item)
		for i, existing := range m.items {
			if m.fields.ID(existing) == id {
				m.items[i] = item
				return
			}
		}
	}
	m.items = append(m.items, item)
}

// All returns every visible item.
func (m *MemorySource[T]) All() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.items))
	for _, item := range m.items {
		if m.visible(item) {
			out = append(out, item)
		}
	}
	return out
}

func (m *MemorySource[T]) Match(ctx context.Context, lookup Lookup) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var read func(T) string
	switch lookup.Field {
	case FieldSlug:
		read = m.fields.Slug
	case FieldID:
		read = m.fields.ID
	}
	if read == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedField, lookup.Field)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []T
	for _, item := range m.items {
		if m.visible(item) && Matches(lookup.Match, read(item), lookup.Value) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemorySource[T]) Sample(ctx context.Context, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := m.All()
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MemorySource[T]) visible(item T) bool {
	return m.fields.Visible == nil || m.fields.Visible(item)
}
