package products

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/transform"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

type ProductTypeView struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	URL         string            `json:"url,omitempty"`
	Image       transform.Image   `json:"image"`
	Images      []transform.Image `json:"images"`
	Benefits    []string          `json:"benefits"`
	Features    []FeatureView     `json:"features"`
}

type FeatureView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Screenshot  string `json:"screenshot,omitempty"`
}

var errMalformed = errors.New("malformed product type row")

// TransformProductTypeData maps product type rows to view models. Rows that
// fail are dropped.
func TransformProductTypeData(rows []*ProductType) []ProductTypeView {
	views, _ := TransformWithReport(rows, nil)
	return views
}

// TransformWithReport is TransformProductTypeData with the batch report.
func TransformWithReport(rows []*ProductType, logger interfaces.Logger) ([]ProductTypeView, transform.Report) {
	if logger == nil {
		logger = logging.NoOp()
	}
	return transform.MapRows(transform.Batch{Entity: Entity, Logger: logger}, rows, transformProductType, func(p *ProductType) string {
		if p == nil {
			return ""
		}
		return p.Slug
	})
}

func transformProductType(p *ProductType) (ProductTypeView, error) {
	if err := validate(p); err != nil {
		return ProductTypeView{}, err
	}

	images := transform.Project(p.Images,
		func(i *ProductTypeImage) int { return i.DisplayOrder },
		func(i *ProductTypeImage) transform.Image { return transform.NewImage(i.URL, i.Alt, p.Title) },
	)
	benefits := transform.Project(p.Benefits,
		func(b *ProductTypeBenefit) int { return b.DisplayOrder },
		func(b *ProductTypeBenefit) string { return b.Benefit },
	)
	features := transform.Project(p.Features,
		func(f *ProductTypeFeature) int { return f.DisplayOrder },
		func(f *ProductTypeFeature) FeatureView {
			return FeatureView{
				Title:       f.Title,
				Description: f.Description,
				Icon:        transform.Icon(f.Icon),
				Screenshot:  f.ScreenshotURL,
			}
		},
	)

	return ProductTypeView{
		ID:          p.ID.String(),
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Image:       transform.Primary(images),
		Images:      images,
		Benefits:    benefits,
		Features:    features,
	}, nil
}

func validate(p *ProductType) error {
	switch {
	case p == nil:
		return fmt.Errorf("%w: nil row", errMalformed)
	case strings.TrimSpace(p.Slug) == "":
		return fmt.Errorf("%w: missing slug", errMalformed)
	}
	for i, img := range p.Images {
		if img == nil {
			return fmt.Errorf("%w: images[%d] is nil", errMalformed, i)
		}
	}
	for i, b := range p.Benefits {
		if b == nil {
			return fmt.Errorf("%w: benefits[%d] is nil", errMalformed, i)
		}
	}
	for i, f := range p.Features {
		if f == nil {
			return fmt.Errorf("%w: features[%d] is nil", errMalformed, i)
		}
	}
	return nil
}
