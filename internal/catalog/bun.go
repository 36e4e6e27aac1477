package catalog

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vendcms/internal/slugs"
)

// BunConfig describes how a bun backed repository loads one entity.
type BunConfig struct {
	// Resource names the entity in errors and cache keys.
	Resource string
	// Relations attaches child collections to a select.
	Relations func(q *bun.SelectQuery) *bun.SelectQuery
	// OrderBy is the listing order expression; defaults to slug.
	OrderBy string
}

// BunRepository implements Repository over go-repository-bun. Listing can be
// cached; slug lookups always hit the database.
type BunRepository[T Entity] struct {
	db           *bun.DB
	repo         repository.Repository[T]
	listing      repository.Repository[T]
	cfg          BunConfig
	cacheService cache.CacheService
}

// NewBunRepository wraps base. A nil cacheService or serializer disables caching.
func NewBunRepository[T Entity](db *bun.DB, base repository.Repository[T], cfg BunConfig, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository[T] {
	if cfg.OrderBy == "" {
		cfg.OrderBy = "?TableAlias.slug ASC"
	}
	r := &BunRepository[T]{db: db, repo: base, listing: base, cfg: cfg}
	if cacheService != nil && serializer != nil {
		r.listing = repositorycache.New(base, cacheService, serializer)
		r.cacheService = cacheService
	}
	return r
}

// DB exposes the handle for entity specific writes.
func (r *BunRepository[T]) DB() *bun.DB { return r.db }

func (r *BunRepository[T]) scope(q *bun.SelectQuery) *bun.SelectQuery {
	q = q.Where("?TableAlias.visible = ?", true)
	if r.cfg.Relations != nil {
		q = r.cfg.Relations(q)
	}
	return q
}

func (r *BunRepository[T]) Match(ctx context.Context, lookup slugs.Lookup) ([]T, error) {
	var filter func(q *bun.SelectQuery) *bun.SelectQuery
	switch lookup.Field {
	case slugs.FieldID:
		id, err := uuid.Parse(lookup.Value)
		if err != nil {
			return nil, nil
		}
		filter = func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id)
		}
	case slugs.FieldSlug:
		filter = func(q *bun.SelectQuery) *bun.SelectQuery {
			return applySlugMatch(q, lookup)
		}
	default:
		return nil, fmt.Errorf("%w: %s", slugs.ErrUnsupportedField, lookup.Field)
	}

	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(r.scope),
		repository.SelectRawProcessor(filter),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr(r.cfg.OrderBy)
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, r.cfg.Resource, lookup.Value)
	}
	return records, nil
}

func applySlugMatch(q *bun.SelectQuery, lookup slugs.Lookup) *bun.SelectQuery {
	switch lookup.Match {
	case slugs.MatchInsensitive:
		return q.Where("LOWER(?TableAlias.slug) = LOWER(?)", lookup.Value)
	case slugs.MatchContains:
		pattern := "%" + slugs.EscapeLike(lookup.Value) + "%"
		return q.Where(`LOWER(?TableAlias.slug) LIKE LOWER(?) ESCAPE '\'`, pattern)
	default:
		return q.Where("?TableAlias.slug = ?", lookup.Value)
	}
}

func (r *BunRepository[T]) Sample(ctx context.Context, limit int) ([]T, error) {
	visible := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("?TableAlias.visible = ?", true).OrderExpr(r.cfg.OrderBy)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q
	})
	records, _, err := r.repo.List(ctx, visible)
	if err != nil {
		return nil, mapRepositoryError(err, r.cfg.Resource, "")
	}
	return records, nil
}

func (r *BunRepository[T]) List(ctx context.Context) ([]T, error) {
	records, _, err := r.listing.List(ctx,
		repository.SelectRawProcessor(r.scope),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr(r.cfg.OrderBy)
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, r.cfg.Resource, "")
	}
	return records, nil
}

// InvalidateCache drops cached listings after writes.
func (r *BunRepository[T]) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cfg.Resource+cache.KeySeparator)
}

// Upsert inserts model or updates columns on id conflict.
func Upsert(ctx context.Context, db bun.IDB, model any, columns ...string) error {
	q := db.NewInsert().Model(model).On("CONFLICT (id) DO UPDATE")
	for _, col := range columns {
		q = q.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
	}
	_, err := q.Exec(ctx)
	return err
}

// ReplaceChildren deletes the rows of C owned by parentID and inserts children.
func ReplaceChildren[C any](ctx context.Context, db bun.IDB, parentColumn string, parentID uuid.UUID, children []*C) error {
	if _, err := db.NewDelete().
		Model((*C)(nil)).
		Where("? = ?", bun.Ident(parentColumn), parentID).
		Exec(ctx); err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&children).Exec(ctx)
	return err
}
