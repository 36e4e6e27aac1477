package catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/goliatone/go-vendcms/internal/slugs"
)

// MemoryRepository keeps records in process. It backs tests and the default
// container when no database is configured.
type MemoryRepository[T Entity] struct {
	source *slugs.MemorySource[T]
}

// NewMemoryRepository returns a repository seeded with records.
func NewMemoryRepository[T Entity](records ...T) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		source: slugs.NewMemorySource(slugs.Fields[T]{
			ID:      func(r T) string { return r.GetID().String() },
			Slug:    func(r T) string { return r.GetSlug() },
			Visible: func(r T) bool { return r.IsVisible() },
		}, records...),
	}
}

func (m *MemoryRepository[T]) Match(ctx context.Context, lookup slugs.Lookup) ([]T, error) {
	return m.source.Match(ctx, lookup)
}

func (m *MemoryRepository[T]) Sample(ctx context.Context, limit int) ([]T, error) {
	return m.source.Sample(ctx, limit)
}

// List returns visible records ordered by slug.
func (m *MemoryRepository[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := m.source.All()
	slices.SortStableFunc(all, func(a, b T) int {
		return strings.Compare(a.GetSlug(), b.GetSlug())
	})
	return all, nil
}

// Save inserts or replaces record by ID.
func (m *MemoryRepository[T]) Save(ctx context.Context, record T) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	m.source.Put(record)
	return record, nil
}
