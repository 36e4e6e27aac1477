package machines

import (
	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Service exposes FetchAll, FetchBySlug, FetchByID and Search for machines.
type Service = catalog.Service[*Machine, MachineView]

// Option configures NewService.
type Option func(*catalog.ServiceConfig[MachineView])

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(cfg *catalog.ServiceConfig[MachineView]) {
		cfg.Logger = logger
	}
}

// WithResolverOptions forwards options to the slug resolver.
func WithResolverOptions(opts ...slugs.Option) Option {
	return func(cfg *catalog.ServiceConfig[MachineView]) {
		cfg.Resolver = append(cfg.Resolver, opts...)
	}
}

// WithURL sets the function that builds the public page URL for a slug.
func WithURL(fn func(slug string) string) Option {
	return func(cfg *catalog.ServiceConfig[MachineView]) {
		if fn == nil {
			return
		}
		cfg.Decorate = func(v *MachineView) {
			v.URL = fn(v.Slug)
		}
	}
}

// NewService builds the machine read service over repo.
func NewService(repo catalog.Repository[*Machine], opts ...Option) *Service {
	cfg := catalog.ServiceConfig[MachineView]{Entity: Entity}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return catalog.NewService(repo, TransformWithReport, cfg)
}

