package machines

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

// Repository is the store contract the machine service reads from.
type Repository interface {
	catalog.Repository[*Machine]
	catalog.Writer[*Machine]
}

// NewMachineRepository builds the go-repository-bun handle for machines.
func NewMachineRepository(db *bun.DB) repository.Repository[*Machine] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Machine]{
		NewRecord: func() *Machine { return &Machine{} },
		GetID: func(m *Machine) uuid.UUID {
			return m.ID
		},
		SetID: func(m *Machine, id uuid.UUID) {
			m.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(m *Machine) string {
			return m.Slug
		},
	})
}

// BunRepository reads machines with every child collection attached.
type BunRepository struct {
	*catalog.BunRepository[*Machine]
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository returns an uncached repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache caches listings through go-repository-cache.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		BunRepository: catalog.NewBunRepository(db, NewMachineRepository(db), catalog.BunConfig{
			Resource:  Entity,
			Relations: withRelations,
			OrderBy:   "?TableAlias.title ASC",
		}, cacheService, serializer),
	}
}

func withRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Images", byDisplayOrder).
		Relation("Specs", byDisplayOrder).
		Relation("Features", byDisplayOrder).
		Relation("DeploymentExamples", byDisplayOrder)
}

func byDisplayOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.display_order ASC")
}

// Save upserts the machine and replaces its child collections in one
// transaction.
func (r *BunRepository) Save(ctx context.Context, m *Machine) (*Machine, error) {
	if err := prepare(m); err != nil {
		return nil, err
	}
	if err := checkChildren(m); err != nil {
		return nil, fmt.Errorf("machine repository: %w", err)
	}
	err := r.DB().RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := catalog.Upsert(ctx, tx, m, "slug", "title", "type", "temperature", "description", "visible", "updated_at"); err != nil {
			return fmt.Errorf("upsert machine: %w", err)
		}
		if err := catalog.ReplaceChildren(ctx, tx, "machine_id", m.ID, m.Images); err != nil {
			return fmt.Errorf("replace images: %w", err)
		}
		if err := catalog.ReplaceChildren(ctx, tx, "machine_id", m.ID, m.Specs); err != nil {
			return fmt.Errorf("replace specs: %w", err)
		}
		if err := catalog.ReplaceChildren(ctx, tx, "machine_id", m.ID, m.Features); err != nil {
			return fmt.Errorf("replace features: %w", err)
		}
		if err := catalog.ReplaceChildren(ctx, tx, "machine_id", m.ID, m.DeploymentExamples); err != nil {
			return fmt.Errorf("replace deployment examples: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("machine repository: save %s: %w", m.Slug, err)
	}
	return m, r.InvalidateCache(ctx)
}

// MemoryRepository is the in-process store used by tests and the default container.
type MemoryRepository struct {
	*catalog.MemoryRepository[*Machine]
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository returns an in-memory store seeded with machines.
func NewMemoryRepository(records ...*Machine) *MemoryRepository {
	seeded := make([]*Machine, 0, len(records))
	for _, m := range records {
		if prepare(m) == nil {
			seeded = append(seeded, m)
		}
	}
	return &MemoryRepository{MemoryRepository: catalog.NewMemoryRepository(seeded...)}
}

func (r *MemoryRepository) Save(ctx context.Context, m *Machine) (*Machine, error) {
	if err := prepare(m); err != nil {
		return nil, err
	}
	return r.MemoryRepository.Save(ctx, m)
}

// prepare assigns missing ids and parent references on m and its children.
func prepare(m *Machine) error {
	if m == nil {
		return fmt.Errorf("machine repository: nil machine")
	}
	if strings.TrimSpace(m.Slug) == "" {
		return fmt.Errorf("machine repository: slug is required")
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	for i, img := range m.Images {
		if img == nil {
			continue
		}
		img.MachineID = m.ID
		if img.ID == uuid.Nil {
			img.ID = identity.ChildUUID(m.ID, "machine_image", i)
		}
	}
	for i, spec := range m.Specs {
		if spec == nil {
			continue
		}
		spec.MachineID = m.ID
		if spec.ID == uuid.Nil {
			spec.ID = identity.ChildUUID(m.ID, "machine_spec", i)
		}
	}
	for i, f := range m.Features {
		if f == nil {
			continue
		}
		f.MachineID = m.ID
		if f.ID == uuid.Nil {
			f.ID = identity.ChildUUID(m.ID, "machine_feature", i)
		}
	}
	for i, d := range m.DeploymentExamples {
		if d == nil {
			continue
		}
		d.MachineID = m.ID
		if d.ID == uuid.Nil {
			d.ID = identity.ChildUUID(m.ID, "machine_deployment_example", i)
		}
	}
	return nil
}
