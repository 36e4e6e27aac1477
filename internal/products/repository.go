package products

import (
	"context"
	"fmt"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/identity"
)

// Repository is the store contract behind the product type service.
type Repository interface {
	catalog.Repository[*ProductType]
	catalog.Writer[*ProductType]
}

func NewProductTypeRepository(db *bun.DB) repository.Repository[*ProductType] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ProductType]{
		NewRecord: func() *ProductType { return &ProductType{} },
		GetID: func(p *ProductType) uuid.UUID {
			return p.ID
		},
		SetID: func(p *ProductType, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *ProductType) string {
			return p.Slug
		},
	})
}

type BunRepository struct {
	*catalog.BunRepository[*ProductType]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		BunRepository: catalog.NewBunRepository(db, NewProductTypeRepository(db), catalog.BunConfig{
			Resource: Entity,
			Relations: func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Relation("Images", byDisplayOrder).
					Relation("Benefits", byDisplayOrder).
					Relation("Features", byDisplayOrder)
			},
			OrderBy: "?TableAlias.title ASC",
		}, cacheService, serializer),
	}
}

func byDisplayOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.display_order ASC")
}

func (r *BunRepository) Save(ctx context.Context, p *ProductType) (*ProductType, error) {
	if err := prepare(p); err != nil {
		return nil, err
	}
	if err := validate(p); err != nil {
		return nil, fmt.Errorf("product type repository: %w", err)
	}
	err := r.DB().RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := catalog.Upsert(ctx, tx, p, "slug", "title", "description", "visible", "updated_at"); err != nil {
			return err
		}
		if err := catalog.ReplaceChildren(ctx, tx, "product_type_id", p.ID, p.Images); err != nil {
			return err
		}
		if err := catalog.ReplaceChildren(ctx, tx, "product_type_id", p.ID, p.Benefits); err != nil {
			return err
		}
		return catalog.ReplaceChildren(ctx, tx, "product_type_id", p.ID, p.Features)
	})
	if err != nil {
		return nil, fmt.Errorf("product type repository: save %s: %w", p.Slug, err)
	}
	return p, r.InvalidateCache(ctx)
}

type MemoryRepository struct {
	*catalog.MemoryRepository[*ProductType]
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(records ...*ProductType) *MemoryRepository {
	seeded := make([]*ProductType, 0, len(records))
	for _, p := range records {
		if prepare(p) == nil {
			seeded = append(seeded, p)
		}
	}
	return &MemoryRepository{MemoryRepository: catalog.NewMemoryRepository(seeded...)}
}

func (r *MemoryRepository) Save(ctx context.Context, p *ProductType) (*ProductType, error) {
	if err := prepare(p); err != nil {
		return nil, err
	}
	return r.MemoryRepository.Save(ctx, p)
}

func prepare(p *ProductType) error {
	if p == nil || strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("product type repository: slug is required")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i, img := range p.Images {
		if img != nil {
			img.ProductTypeID = p.ID
			if img.ID == uuid.Nil {
				img.ID = identity.ChildUUID(p.ID, "product_type_image", i)
			}
		}
	}
	for i, b := range p.Benefits {
		if b != nil {
			b.ProductTypeID = p.ID
			if b.ID == uuid.Nil {
				b.ID = identity.ChildUUID(p.ID, "product_type_benefit", i)
			}
		}
	}
	for i, f := range p.Features {
		if f != nil {
			f.ProductTypeID = p.ID
			if f.ID == uuid.Nil {
				f.ID = identity.ChildUUID(p.ID, "product_type_feature", i)
			}
		}
	}
	return nil
}
