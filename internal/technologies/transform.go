package technologies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/transform"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

type TechnologyView struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url,omitempty"`
	Image       transform.Image `json:"image"`
	Sections    []SectionView   `json:"sections"`
}

type SectionView struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Features    []FeatureView     `json:"features"`
	Images      []transform.Image `json:"images"`
}

type FeatureView struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Items       []string `json:"items"`
}

var errMalformed = errors.New("malformed technology row")

// TransformTechnologyData maps technology rows to view models, dropping rows
// that fail.
func TransformTechnologyData(rows []*Technology) []TechnologyView {
	views, _ := TransformWithReport(rows, nil)
	return views
}

func TransformWithReport(rows []*Technology, logger interfaces.Logger) ([]TechnologyView, transform.Report) {
	if logger == nil {
		logger = logging.NoOp()
	}
	return transform.MapRows(transform.Batch{Entity: Entity, Logger: logger}, rows, transformTechnology, func(t *Technology) string {
		if t == nil {
			return ""
		}
		return t.Slug
	})
}

func transformTechnology(t *Technology) (TechnologyView, error) {
	if err := validate(t); err != nil {
		return TechnologyView{}, err
	}

	image := transform.Image{}
	if strings.TrimSpace(t.ImageURL) != "" {
		image = transform.NewImage(t.ImageURL, t.ImageAlt, t.Title)
	}

	sections := transform.Project(t.Sections,
		func(s *TechnologySection) int { return s.DisplayOrder },
		func(s *TechnologySection) SectionView { return projectSection(t, s) },
	)

	return TechnologyView{
		ID:          t.ID.String(),
		Slug:        t.Slug,
		Title:       t.Title,
		Description: t.Description,
		Image:       image,
		Sections:    sections,
	}, nil
}

func projectSection(t *Technology, s *TechnologySection) SectionView {
	alt := s.Title
	if strings.TrimSpace(alt) == "" {
		alt = t.Title
	}
	return SectionView{
		Title:       s.Title,
		Description: s.Description,
		Features: transform.Project(s.Features,
			func(f *TechnologyFeature) int { return f.DisplayOrder },
			func(f *TechnologyFeature) FeatureView {
				return FeatureView{
					Title:       f.Title,
					Description: f.Description,
					Icon:        transform.Icon(f.Icon),
					Items: transform.Project(f.Items,
						func(i *TechnologyFeatureItem) int { return i.DisplayOrder },
						func(i *TechnologyFeatureItem) string { return i.Item },
					),
				}
			},
		),
		Images: transform.Project(s.Images,
			func(i *TechnologySectionImage) int { return i.DisplayOrder },
			func(i *TechnologySectionImage) transform.Image { return transform.NewImage(i.URL, i.Alt, alt) },
		),
	}
}

func validate(t *Technology) error {
	if t == nil {
		return fmt.Errorf("%w: nil row", errMalformed)
	}
	if strings.TrimSpace(t.Slug) == "" {
		return fmt.Errorf("%w: missing slug", errMalformed)
	}
	for i, s := range t.Sections {
		if s == nil {
			return fmt.Errorf("%w: sections[%d] is nil", errMalformed, i)
		}
		for j, f := range s.Features {
			if f == nil {
				return fmt.Errorf("%w: sections[%d].features[%d] is nil", errMalformed, i, j)
			}
			for k, item := range f.Items {
				if item == nil {
					return fmt.Errorf("%w: sections[%d].features[%d].items[%d] is nil", errMalformed, i, j, k)
				}
			}
		}
		for j, img := range s.Images {
			if img == nil {
				return fmt.Errorf("%w: sections[%d].images[%d] is nil", errMalformed, i, j)
			}
		}
	}
	return nil
}
