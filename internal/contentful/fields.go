package contentful

import (
	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/internal/products"
	"github.com/goliatone/go-vendcms/internal/technologies"
	"github.com/goliatone/go-vendcms/internal/transform"
)

// Field builders for the management API. Asset link fields (gallery images,
// technology hero image) are left untouched because assets are managed in
// Contentful directly.

func MachineFields(m *machines.Machine) map[string]any {
	specs := []map[string]any{}
	for _, s := range transform.SortByDisplayOrder(m.Specs, func(s *machines.MachineSpec) int { return s.DisplayOrder }) {
		specs = append(specs, map[string]any{"key": s.Key, "value": s.Value})
	}
	examples := []map[string]any{}
	for _, d := range transform.SortByDisplayOrder(m.DeploymentExamples, func(d *machines.MachineDeploymentExample) int { return d.DisplayOrder }) {
		examples = append(examples, map[string]any{"title": d.Title, "description": d.Description, "image": d.ImageURL})
	}
	return map[string]any{
		"title":       m.Title,
		"slug":        m.Slug,
		"type":        m.Type,
		"temperature": m.Temperature,
		"description": m.Description,
		"visible":     m.Visible,
		"specs":       specs,
		"features": transform.Project(m.Features,
			func(f *machines.MachineFeature) int { return f.DisplayOrder },
			func(f *machines.MachineFeature) string { return f.Feature },
		),
		"deploymentExamples": examples,
	}
}

func ProductTypeFields(p *products.ProductType) map[string]any {
	features := []map[string]any{}
	for _, f := range transform.SortByDisplayOrder(p.Features, func(f *products.ProductTypeFeature) int { return f.DisplayOrder }) {
		features = append(features, map[string]any{
			"title":       f.Title,
			"description": f.Description,
			"icon":        f.Icon,
			"screenshot":  f.ScreenshotURL,
		})
	}
	return map[string]any{
		"title":       p.Title,
		"slug":        p.Slug,
		"description": p.Description,
		"visible":     p.Visible,
		"benefits": transform.Project(p.Benefits,
			func(b *products.ProductTypeBenefit) int { return b.DisplayOrder },
			func(b *products.ProductTypeBenefit) string { return b.Benefit },
		),
		"features": features,
	}
}

func TechnologyFields(t *technologies.Technology) map[string]any {
	sections := transform.Project(t.Sections,
		func(s *technologies.TechnologySection) int { return s.DisplayOrder },
		func(s *technologies.TechnologySection) map[string]any {
			return map[string]any{
				"title":       s.Title,
				"description": s.Description,
				"features": transform.Project(s.Features,
					func(f *technologies.TechnologyFeature) int { return f.DisplayOrder },
					func(f *technologies.TechnologyFeature) map[string]any {
						return map[string]any{
							"title":       f.Title,
							"description": f.Description,
							"icon":        f.Icon,
							"items": transform.Project(f.Items,
								func(i *technologies.TechnologyFeatureItem) int { return i.DisplayOrder },
								func(i *technologies.TechnologyFeatureItem) string { return i.Item },
							),
						}
					},
				),
				"images": transform.Project(s.Images,
					func(i *technologies.TechnologySectionImage) int { return i.DisplayOrder },
					func(i *technologies.TechnologySectionImage) map[string]any {
						return map[string]any{"url": i.URL, "alt": i.Alt}
					},
				),
			}
		},
	)
	return map[string]any{
		"title":       t.Title,
		"slug":        t.Slug,
		"description": t.Description,
		"visible":     t.Visible,
		"sections":    sections,
	}
}
