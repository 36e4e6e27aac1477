// Package deprecation tracks calls to content write paths that moved to the
// external CMS and rejects them with a typed error.
package deprecation

import (
	"context"
	"time"
)

// Registry counts deprecated calls per (component, message) pair. It is
// constructed explicitly and passed to the adapters that report into it.
type Registry struct {
	store Store
	now   func() time.Time
}

type RegistryOption func(*Registry)

// WithStore swaps the in-memory store, e.g. for RedisStore.
func WithStore(store Store) RegistryOption {
	return func(r *Registry) {
		if store != nil {
			r.store = store
		}
	}
}

func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		store: NewMemoryStore(),
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Record increments the counter for the pair and stamps its last use.
func (r *Registry) Record(ctx context.Context, component, message string) (Usage, error) {
	return r.store.Increment(ctx, Key{Component: component, Message: message}, r.now().UTC())
}

func (r *Registry) Usage(ctx context.Context, component, message string) (Usage, bool, error) {
	return r.store.Get(ctx, Key{Component: component, Message: message})
}

// Snapshot lists every usage ordered by component then message.
func (r *Registry) Snapshot(ctx context.Context) ([]Usage, error) {
	return r.store.List(ctx)
}

func (r *Registry) Reset(ctx context.Context) error {
	return r.store.Reset(ctx)
}
