package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	vendcms "github.com/goliatone/go-vendcms"
	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/internal/transform"
)

// entityReader erases the view type of a catalog service for printing.
type entityReader struct {
	list   func(ctx context.Context) (any, transform.Report, error)
	search func(ctx context.Context, req slugs.Request) (any, int, error)
	byID   func(ctx context.Context, id string) (any, error)
}

func readerFor[T, V any](svc *catalog.Service[T, V]) entityReader {
	return entityReader{
		list: func(ctx context.Context) (any, transform.Report, error) {
			return svc.FetchAllWithReport(ctx)
		},
		search: func(ctx context.Context, req slugs.Request) (any, int, error) {
			views, err := svc.Search(ctx, req)
			return views, len(views), err
		},
		byID: func(ctx context.Context, id string) (any, error) {
			view, err := svc.FetchByID(ctx, id)
			if view == nil {
				return nil, err
			}
			return view, err
		},
	}
}

var entityAliases = map[string]string{
	"machine":        "machine",
	"machines":       "machine",
	"product":        "product_type",
	"products":       "product_type",
	"product_type":   "product_type",
	"product-type":   "product_type",
	"technology":     "technology",
	"technologies":   "technology",
	"business_goal":  "business_goal",
	"business-goal":  "business_goal",
	"business_goals": "business_goal",
	"goal":           "business_goal",
	"goals":          "business_goal",
}

func entityNames() []string {
	names := []string{}
	for _, name := range entityAliases {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func lookupEntity(module *vendcms.Module, raw string) (entityReader, error) {
	switch entityAliases[strings.ToLower(strings.TrimSpace(raw))] {
	case "machine":
		return readerFor(module.Machines()), nil
	case "product_type":
		return readerFor(module.ProductTypes()), nil
	case "technology":
		return readerFor(module.Technologies()), nil
	case "business_goal":
		return readerFor(module.BusinessGoals()), nil
	default:
		return entityReader{}, fmt.Errorf("unknown entity %q (want one of %s)", raw, strings.Join(entityNames(), ", "))
	}
}
