package machines

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/transform"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// MachineView is the shape the marketing pages render.
type MachineView struct {
	ID                 string                  `json:"id"`
	Slug               string                  `json:"slug"`
	Title              string                  `json:"title"`
	Type               string                  `json:"type"`
	Temperature        string                  `json:"temperature"`
	Description        string                  `json:"description"`
	URL                string                  `json:"url,omitempty"`
	Image              transform.Image         `json:"image"`
	Images             []transform.Image       `json:"images"`
	Specs              map[string]any          `json:"specs"`
	Features           []string                `json:"features"`
	DeploymentExamples []DeploymentExampleView `json:"deploymentExamples"`
}

// DeploymentExampleView is one deployment example card.
type DeploymentExampleView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

var (
	errNilRow      = errors.New("nil machine row")
	errMissingSlug = errors.New("machine row has no slug")
	errNilChildRow = errors.New("nil child row")
)

// TransformMachineData maps machine rows to view models, dropping rows that
// cannot be transformed.
func TransformMachineData(rows []*Machine) []MachineView {
	views, _ := TransformWithReport(rows, nil)
	return views
}

// TransformWithReport is TransformMachineData with the batch report.
func TransformWithReport(rows []*Machine, logger interfaces.Logger) ([]MachineView, transform.Report) {
	if logger == nil {
		logger = logging.NoOp()
	}
	return transform.MapRows(transform.Batch{Entity: Entity, Logger: logger}, rows, transformMachine, machineID)
}

func machineID(m *Machine) string {
	if m == nil {
		return ""
	}
	return m.Slug
}

func transformMachine(m *Machine) (MachineView, error) {
	if m == nil {
		return MachineView{}, errNilRow
	}
	if strings.TrimSpace(m.Slug) == "" {
		return MachineView{}, errMissingSlug
	}
	if err := checkChildren(m); err != nil {
		return MachineView{}, err
	}

	images := transform.Project(m.Images,
		func(i *MachineImage) int { return i.DisplayOrder },
		func(i *MachineImage) transform.Image { return transform.NewImage(i.URL, i.Alt, m.Title) },
	)

	specs := make(map[string]any, len(m.Specs))
	for _, spec := range transform.SortByDisplayOrder(m.Specs, func(s *MachineSpec) int { return s.DisplayOrder }) {
		specs[spec.Key] = transform.ParseSpecValue(spec.Value).Resolved()
	}

	features := transform.Project(m.Features,
		func(f *MachineFeature) int { return f.DisplayOrder },
		func(f *MachineFeature) string { return f.Feature },
	)

	examples := transform.Project(m.DeploymentExamples,
		func(d *MachineDeploymentExample) int { return d.DisplayOrder },
		func(d *MachineDeploymentExample) DeploymentExampleView {
			return DeploymentExampleView{Title: d.Title, Description: d.Description, Image: d.ImageURL}
		},
	)

	return MachineView{
		ID:                 m.ID.String(),
		Slug:               m.Slug,
		Title:              m.Title,
		Type:               m.Type,
		Temperature:        m.Temperature,
		Description:        m.Description,
		Image:              transform.Primary(images),
		Images:             images,
		Specs:              specs,
		Features:           features,
		DeploymentExamples: examples,
	}, nil
}

func checkChildren(m *Machine) error {
	for i, img := range m.Images {
		if img == nil {
			return fmt.Errorf("images[%d]: %w", i, errNilChildRow)
		}
	}
	for i, spec := range m.Specs {
		if spec == nil {
			return fmt.Errorf("specs[%d]: %w", i, errNilChildRow)
		}
	}
	for i, f := range m.Features {
		if f == nil {
			return fmt.Errorf("features[%d]: %w", i, errNilChildRow)
		}
	}
	for i, d := range m.DeploymentExamples {
		if d == nil {
			return fmt.Errorf("deployment_examples[%d]: %w", i, errNilChildRow)
		}
	}
	return nil
}
