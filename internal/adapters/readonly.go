package adapters

import (
	"context"

	"github.com/goliatone/go-vendcms/internal/deprecation"
)

// ReadOnly wraps source for entity. Reads go through Normalize. Writes never
// reach source: the gate records, logs and notifies, then the typed
// DeprecatedOperationError is returned.
func ReadOnly[T any](entity string, source any, gate *deprecation.Gate) ContentAdapter[T] {
	if gate == nil {
		gate = deprecation.NewGate(nil, nil, nil)
	}
	return &readOnly[T]{
		Reader: Normalize[T](source),
		entity: entity,
		gate:   gate,
	}
}

type readOnly[T any] struct {
	Reader[T]
	entity string
	gate   *deprecation.Gate
}

func (a *readOnly[T]) Create(ctx context.Context, _ T) (*T, error) {
	return nil, a.gate.Reject(ctx, OpCreate, a.entity)
}

func (a *readOnly[T]) Update(ctx context.Context, _ string, _ T) (*T, error) {
	return nil, a.gate.Reject(ctx, OpUpdate, a.entity)
}

func (a *readOnly[T]) Delete(ctx context.Context, _ string) error {
	return a.gate.Reject(ctx, OpDelete, a.entity)
}

func (a *readOnly[T]) Clone(ctx context.Context, _ string) (*T, error) {
	return nil, a.gate.Reject(ctx, OpClone, a.entity)
}
