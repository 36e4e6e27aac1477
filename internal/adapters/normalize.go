package adapters

import "context"

// Normalize maps source onto Reader. A source that already implements Reader
// is returned as is. Otherwise each Get* capability is used when present and
// missing ones answer with an empty slice or nil.
func Normalize[T any](source any) Reader[T] {
	if r, ok := source.(Reader[T]); ok {
		return r
	}
	n := normalized[T]{}
	if g, ok := source.(AllGetter[T]); ok {
		n.all = g.GetAll
	}
	if g, ok := source.(SlugGetter[T]); ok {
		n.bySlug = g.GetBySlug
	}
	if g, ok := source.(IDGetter[T]); ok {
		n.byID = g.GetByID
	}
	return n
}

type normalized[T any] struct {
	all    func(context.Context) ([]T, error)
	bySlug func(context.Context, string) (*T, error)
	byID   func(context.Context, string) (*T, error)
}

func (n normalized[T]) FetchAll(ctx context.Context) ([]T, error) {
	if n.all == nil {
		return []T{}, nil
	}
	out, err := n.all(ctx)
	if out == nil && err == nil {
		out = []T{}
	}
	return out, err
}

func (n normalized[T]) FetchBySlug(ctx context.Context, slug string) (*T, error) {
	if n.bySlug == nil {
		return nil, nil
	}
	return n.bySlug(ctx, slug)
}

func (n normalized[T]) FetchByID(ctx context.Context, id string) (*T, error) {
	if n.byID == nil {
		return nil, nil
	}
	return n.byID(ctx, id)
}
