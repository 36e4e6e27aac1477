package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/identity"
	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/internal/transform"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Transformer reshapes stored records into view models.
type Transformer[T, V any] func(records []T, logger interfaces.Logger) ([]V, transform.Report)

// ServiceConfig configures a Service.
type ServiceConfig[V any] struct {
	Entity   string
	Logger   interfaces.Logger
	Resolver []slugs.Option
	// Decorate runs on every view model before it is returned.
	Decorate func(*V)
}

// Service exposes the read operations of one content entity.
type Service[T, V any] struct {
	repo      Repository[T]
	transform Transformer[T, V]
	resolver  *slugs.Resolver[T]
	logger    interfaces.Logger
	entity    string
	decorate  func(*V)
}

// NewService wires repo, the slug resolver and the transformer.
func NewService[T, V any](repo Repository[T], fn Transformer[T, V], cfg ServiceConfig[V]) *Service[T, V] {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	opts := append([]slugs.Option{slugs.WithLogger(logger), slugs.WithEntity(cfg.Entity)}, cfg.Resolver...)
	return &Service[T, V]{
		repo:      repo,
		transform: fn,
		resolver:  slugs.NewResolver[T](repo, opts...),
		logger:    logging.WithEntity(logger, cfg.Entity, ""),
		entity:    cfg.Entity,
		decorate:  cfg.Decorate,
	}
}

// Entity returns the entity name the service was built for.
func (s *Service[T, V]) Entity() string { return s.entity }

// FetchAll returns every visible record as a view model.
func (s *Service[T, V]) FetchAll(ctx context.Context) ([]V, error) {
	views, _, err := s.FetchAllWithReport(ctx)
	return views, err
}

// FetchAllWithReport also returns which rows were dropped by the transformer.
func (s *Service[T, V]) FetchAllWithReport(ctx context.Context) ([]V, transform.Report, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return []V{}, transform.Report{Entity: s.entity}, err
	}
	views, report := s.project(records)
	return views, report, nil
}

// FetchBySlug resolves slug through the staged resolver and returns the first
// match, or nil when nothing matches.
func (s *Service[T, V]) FetchBySlug(ctx context.Context, slug string) (*V, error) {
	return s.first(s.Search(ctx, slugs.Request{Slug: slug}))
}

// FetchByID accepts a database UUID or a Contentful entry id.
func (s *Service[T, V]) FetchByID(ctx context.Context, id string) (*V, error) {
	parsed := identity.ParseOrEntry(id)
	if parsed == uuid.Nil {
		return nil, nil
	}
	return s.first(s.Search(ctx, slugs.Request{ID: parsed}))
}

// Search runs the full resolver request, including ExactMatchOnly.
func (s *Service[T, V]) Search(ctx context.Context, req slugs.Request) ([]V, error) {
	records, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return []V{}, err
	}
	views, _ := s.project(records)
	return views, nil
}

func (s *Service[T, V]) project(records []T) ([]V, transform.Report) {
	views, report := s.transform(records, s.logger)
	if report.Partial() {
		s.logger.Warn("transform.batch_partial", "total", report.Total, "dropped", len(report.Dropped))
	}
	if s.decorate != nil {
		for i := range views {
			s.decorate(&views[i])
		}
	}
	return views, report
}

func (s *Service[T, V]) first(views []V, err error) (*V, error) {
	if err != nil || len(views) == 0 {
		return nil, err
	}
	out := views[0]
	return &out, nil
}
