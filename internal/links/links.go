// Package links builds public URLs for content view models from go-urlkit
// route templates.
package links

import (
	"fmt"
	"maps"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/runtimeconfig"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// GroupName is the urlkit group holding the public routes.
const GroupName = "public"

// Route names, matching the entity names used across the module.
const (
	RouteMachine      = "machine"
	RouteProductType  = "product_type"
	RouteTechnology   = "technology"
	RouteBusinessGoal = "business_goal"
)

// DefaultPaths are the public site routes. Config paths override them.
func DefaultPaths() map[string]string {
	return map[string]string{
		RouteMachine:      "/machines/:slug",
		RouteProductType:  "/products/:slug",
		RouteTechnology:   "/technology/:slug",
		RouteBusinessGoal: "/business-goals/:slug",
	}
}

// Builder renders entity URLs.
type Builder struct {
	group  *urlkit.Group
	logger interfaces.Logger
}

func New(cfg runtimeconfig.LinksConfig, logger interfaces.Logger) (*Builder, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	paths := DefaultPaths()
	for route, path := range cfg.Paths {
		if strings.TrimSpace(path) != "" {
			paths[route] = path
		}
	}
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    GroupName,
			BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
			Paths:   maps.Clone(paths),
		}},
	})
	group, err := lookupGroup(manager, GroupName)
	if err != nil {
		return nil, err
	}
	return &Builder{group: group, logger: logger}, nil
}

// URL renders the route for entity with slug.
func (b *Builder) URL(entity, slug string) (string, error) {
	builder, err := safeBuilder(b.group, entity)
	if err != nil {
		return "", err
	}
	builder.WithParam("slug", slug)
	return builder.Build()
}

// For returns a slug to URL function for entity, suitable for the services'
// WithURL options. Build failures are logged and yield "".
func (b *Builder) For(entity string) func(slug string) string {
	return func(slug string) string {
		url, err := b.URL(entity, slug)
		if err != nil {
			b.logger.Warn("links.build_failed", "route", entity, "slug", slug, "error", err)
			return ""
		}
		return url
	}
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("links: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: route %q not found", route)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}
