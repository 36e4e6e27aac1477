package contentful

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Repository reads one content type straight from the delivery API. It plugs
// into catalog.Service like the relational repositories.
type Repository[T catalog.Entity] struct {
	client      *Client
	contentType string
	mapEntry    Mapper[T]
	logger      interfaces.Logger
}

var _ catalog.Repository[catalog.Entity] = (*Repository[catalog.Entity])(nil)

func NewRepository[T catalog.Entity](client *Client, contentType string, mapEntry Mapper[T], logger interfaces.Logger) *Repository[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Repository[T]{
		client:      client,
		contentType: contentType,
		mapEntry:    mapEntry,
		logger:      logging.WithEntity(logger, contentType, ""),
	}
}

// Match translates a lookup into a delivery query. The API has no case
// insensitive equality, so insensitive and contains lookups use the full text
// [match] operator and are narrowed client side.
func (r *Repository[T]) Match(ctx context.Context, lookup slugs.Lookup) ([]T, error) {
	switch lookup.Field {
	case slugs.FieldSlug:
		q := EntriesQuery{ContentType: r.contentType}
		if lookup.Match == slugs.MatchExact {
			q.Fields = map[string]string{"slug": lookup.Value}
		} else {
			q.Fields = map[string]string{"slug[match]": lookup.Value}
		}
		collection, err := r.client.GetEntries(ctx, q)
		if err != nil {
			return nil, err
		}
		return r.collect(collection, func(record T) bool {
			return slugs.Matches(lookup.Match, record.GetSlug(), lookup.Value)
		}), nil
	case slugs.FieldID:
		id, err := uuid.Parse(lookup.Value)
		if err != nil {
			return nil, nil
		}
		match := func(record T) bool { return record.GetID() == id }
		// Pushed entries use the row UUID as sys.id, so try that first.
		direct, err := r.client.GetEntries(ctx, EntriesQuery{ContentType: r.contentType, IDs: []string{lookup.Value}})
		if err != nil {
			return nil, err
		}
		if found := r.collect(direct, match); len(found) > 0 {
			return found, nil
		}
		// Other ids are hashes of the sys.id and cannot be reversed into a
		// query, so page through the content type.
		collection, err := r.client.GetAllEntries(ctx, EntriesQuery{ContentType: r.contentType})
		if err != nil {
			return nil, err
		}
		return r.collect(collection, match), nil
	default:
		return nil, fmt.Errorf("%w: %s", slugs.ErrUnsupportedField, lookup.Field)
	}
}

func (r *Repository[T]) Sample(ctx context.Context, limit int) ([]T, error) {
	collection, err := r.client.GetEntries(ctx, EntriesQuery{ContentType: r.contentType, Limit: limit})
	if err != nil {
		return nil, err
	}
	return r.collect(collection, nil), nil
}

// List returns every visible entry ordered by slug.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	collection, err := r.client.GetAllEntries(ctx, EntriesQuery{ContentType: r.contentType})
	if err != nil {
		return nil, err
	}
	out := r.collect(collection, nil)
	slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(a.GetSlug(), b.GetSlug()) })
	return out, nil
}

// Entries returns every mapped entry including hidden ones, for sync jobs.
func (r *Repository[T]) Entries(ctx context.Context) ([]T, []error, error) {
	collection, err := r.client.GetAllEntries(ctx, EntriesQuery{ContentType: r.contentType})
	if err != nil {
		return nil, nil, err
	}
	assets := collection.Assets()
	out := make([]T, 0, len(collection.Items))
	var failures []error
	for _, entry := range collection.Items {
		record, err := r.mapEntry(entry, assets)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		out = append(out, record)
	}
	return out, failures, nil
}

func (r *Repository[T]) collect(collection *EntryCollection, keep func(T) bool) []T {
	assets := collection.Assets()
	out := make([]T, 0, len(collection.Items))
	for _, entry := range collection.Items {
		record, err := r.mapEntry(entry, assets)
		if err != nil {
			r.logger.Warn("contentful.entry_skipped", "entry_id", entry.Sys.ID, "error", err)
			continue
		}
		if !record.IsVisible() {
			continue
		}
		if keep != nil && !keep(record) {
			continue
		}
		out = append(out, record)
	}
	return out
}
