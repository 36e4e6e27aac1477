package deprecation

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// Key identifies one deprecated call site.
type Key struct {
	Component string
	Message   string
}

// Usage is the running telemetry for a Key.
type Usage struct {
	Component string    `json:"component"`
	Message   string    `json:"message"`
	Count     int64     `json:"count"`
	FirstSeen time.Time `json:"first_seen"`
	LastUsed  time.Time `json:"last_used"`
}

// Store persists usage counters. Increment must be atomic per key.
type Store interface {
	Increment(ctx context.Context, key Key, at time.Time) (Usage, error)
	Get(ctx context.Context, key Key) (Usage, bool, error)
	List(ctx context.Context) ([]Usage, error)
	Reset(ctx context.Context) error
}

// MemoryStore keeps counters in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	usages map[Key]Usage
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{usages: map[Key]Usage{}}
}

func (s *MemoryStore) Increment(_ context.Context, key Key, at time.Time) (Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	usage, ok := s.usages[key]
	if !ok {
		usage = Usage{Component: key.Component, Message: key.Message, FirstSeen: at}
	}
	usage.Count++
	usage.LastUsed = at
	s.usages[key] = usage
	return usage, nil
}

func (s *MemoryStore) Get(_ context.Context, key Key) (Usage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	usage, ok := s.usages[key]
	return usage, ok, nil
}

func (s *MemoryStore) List(context.Context) ([]Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Usage, 0, len(s.usages))
	for _, u := range s.usages {
		out = append(out, u)
	}
	sortUsages(out)
	return out, nil
}

func (s *MemoryStore) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.usages)
	return nil
}

func sortUsages(usages []Usage) {
	slices.SortFunc(usages, func(a, b Usage) int {
		if c := cmp.Compare(a.Component, b.Component); c != 0 {
			return c
		}
		return cmp.Compare(a.Message, b.Message)
	})
}
