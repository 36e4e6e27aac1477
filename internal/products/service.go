package products

import (
	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Service is the product type read service. FetchBySlug is the
// searchBySlug entry point used by product pages.
type Service = catalog.Service[*ProductType, ProductTypeView]

type Option func(*catalog.ServiceConfig[ProductTypeView])

func WithLogger(logger interfaces.Logger) Option {
	return func(cfg *catalog.ServiceConfig[ProductTypeView]) { cfg.Logger = logger }
}

func WithResolverOptions(opts ...slugs.Option) Option {
	return func(cfg *catalog.ServiceConfig[ProductTypeView]) {
		cfg.Resolver = append(cfg.Resolver, opts...)
	}
}

func WithURL(fn func(slug string) string) Option {
	return func(cfg *catalog.ServiceConfig[ProductTypeView]) {
		if fn != nil {
			cfg.Decorate = func(v *ProductTypeView) { v.URL = fn(v.Slug) }
		}
	}
}

func NewService(repo catalog.Repository[*ProductType], opts ...Option) *Service {
	cfg := catalog.ServiceConfig[ProductTypeView]{Entity: Entity}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return catalog.NewService(repo, TransformWithReport, cfg)
}
