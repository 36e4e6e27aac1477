package technologies

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

// Repository is the store contract behind the technology service.
type Repository interface {
	catalog.Repository[*Technology]
	catalog.Writer[*Technology]
}

func NewTechnologyRepository(db *bun.DB) repository.Repository[*Technology] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Technology]{
		NewRecord: func() *Technology { return &Technology{} },
		GetID: func(t *Technology) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Technology, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(t *Technology) string {
			return t.Slug
		},
	})
}

type BunRepository struct {
	*catalog.BunRepository[*Technology]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		BunRepository: catalog.NewBunRepository(db, NewTechnologyRepository(db), catalog.BunConfig{
			Resource: Entity,
			Relations: func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Relation("Sections", byDisplayOrder).
					Relation("Sections.Features", byDisplayOrder).
					Relation("Sections.Features.Items", byDisplayOrder).
					Relation("Sections.Images", byDisplayOrder)
			},
			OrderBy: "?TableAlias.title ASC",
		}, cacheService, serializer),
	}
}

func byDisplayOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.display_order ASC")
}

// Save upserts the technology and replaces its whole section tree.
func (r *BunRepository) Save(ctx context.Context, t *Technology) (*Technology, error) {
	if err := prepare(t); err != nil {
		return nil, err
	}
	if err := validate(t); err != nil {
		return nil, fmt.Errorf("technology repository: %w", err)
	}
	err := r.DB().RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := catalog.Upsert(ctx, tx, t, "slug", "title", "description", "image_url", "image_alt", "visible", "updated_at"); err != nil {
			return err
		}
		if err := deleteSectionTree(ctx, tx, t.ID); err != nil {
			return err
		}
		if err := catalog.ReplaceChildren(ctx, tx, "technology_id", t.ID, t.Sections); err != nil {
			return err
		}
		features, items, images := flatten(t)
		if err := insertAll(ctx, tx, features); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, items); err != nil {
			return err
		}
		return insertAll(ctx, tx, images)
	})
	if err != nil {
		return nil, fmt.Errorf("technology repository: save %s: %w", t.Slug, err)
	}
	return t, r.InvalidateCache(ctx)
}

// deleteSectionTree removes items, features and images below the sections of
// technologyID. Sections themselves are replaced by the caller.
func deleteSectionTree(ctx context.Context, tx bun.Tx, technologyID uuid.UUID) error {
	sectionIDs := tx.NewSelect().
		Model((*TechnologySection)(nil)).
		Column("id").
		Where("technology_id = ?", technologyID)
	featureIDs := tx.NewSelect().
		Model((*TechnologyFeature)(nil)).
		Column("id").
		Where("section_id IN (?)", sectionIDs)

	if _, err := tx.NewDelete().Model((*TechnologyFeatureItem)(nil)).Where("feature_id IN (?)", featureIDs).Exec(ctx); err != nil {
		return err
	}
	if _, err := tx.NewDelete().Model((*TechnologyFeature)(nil)).Where("section_id IN (?)", sectionIDs).Exec(ctx); err != nil {
		return err
	}
	_, err := tx.NewDelete().Model((*TechnologySectionImage)(nil)).Where("section_id IN (?)", sectionIDs).Exec(ctx)
	return err
}

func flatten(t *Technology) ([]*TechnologyFeature, []*TechnologyFeatureItem, []*TechnologySectionImage) {
	var (
		features []*TechnologyFeature
		items    []*TechnologyFeatureItem
		images   []*TechnologySectionImage
	)
	for _, s := range t.Sections {
		features = append(features, s.Features...)
		images = append(images, s.Images...)
		for _, f := range s.Features {
			items = append(items, f.Items...)
		}
	}
	return features, items, images
}

func insertAll[C any](ctx context.Context, db bun.IDB, rows []*C) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

type MemoryRepository struct {
	*catalog.MemoryRepository[*Technology]
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(records ...*Technology) *MemoryRepository {
	seeded := make([]*Technology, 0, len(records))
	for _, t := range records {
		if prepare(t) == nil {
			seeded = append(seeded, t)
		}
	}
	return &MemoryRepository{MemoryRepository: catalog.NewMemoryRepository(seeded...)}
}

func (r *MemoryRepository) Save(ctx context.Context, t *Technology) (*Technology, error) {
	if err := prepare(t); err != nil {
		return nil, err
	}
	return r.MemoryRepository.Save(ctx, t)
}

func prepare(t *Technology) error {
	if t == nil || strings.TrimSpace(t.Slug) == "" {
		return fmt.Errorf("technology repository: slug is required")
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for i, s := range t.Sections {
		if s == nil {
			continue
		}
		s.TechnologyID = t.ID
		if s.ID == uuid.Nil {
			s.ID = identity.ChildUUID(t.ID, "technology_section", i)
		}
		for j, f := range s.Features {
			if f == nil {
				continue
			}
			f.SectionID = s.ID
			if f.ID == uuid.Nil {
				f.ID = identity.ChildUUID(s.ID, "technology_feature", j)
			}
			for k, item := range f.Items {
				if item == nil {
					continue
				}
				item.FeatureID = f.ID
				if item.ID == uuid.Nil {
					item.ID = identity.ChildUUID(f.ID, "technology_feature_item", k)
				}
			}
		}
		for j, img := range s.Images {
			if img == nil {
				continue
			}
			img.SectionID = s.ID
			if img.ID == uuid.Nil {
				img.ID = identity.ChildUUID(s.ID, "technology_section_image", j)
			}
		}
	}
	return nil
}
