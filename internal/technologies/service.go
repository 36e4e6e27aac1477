package technologies

import (
	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Service is the technology read service. FetchBySlug is the
// searchBySlug entry point used by technology pages.
type Service = catalog.Service[*Technology, TechnologyView]

type Option func(*catalog.ServiceConfig[TechnologyView])

func WithLogger(logger interfaces.Logger) Option {
	return func(cfg *catalog.ServiceConfig[TechnologyView]) { cfg.Logger = logger }
}

func WithResolverOptions(opts ...slugs.Option) Option {
	return func(cfg *catalog.ServiceConfig[TechnologyView]) {
		cfg.Resolver = append(cfg.Resolver, opts...)
	}
}

func WithURL(fn func(slug string) string) Option {
	return func(cfg *catalog.ServiceConfig[TechnologyView]) {
		if fn != nil {
			cfg.Decorate = func(v *TechnologyView) { v.URL = fn(v.Slug) }
		}
	}
}

func NewService(repo catalog.Repository[*Technology], opts ...Option) *Service {
	cfg := catalog.ServiceConfig[TechnologyView]{Entity: Entity}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return catalog.NewService(repo, TransformWithReport, cfg)
}
