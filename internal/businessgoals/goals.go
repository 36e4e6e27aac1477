// Package businessgoals serves the static business goal pages. Goals are
// markdown files with YAML frontmatter, embedded in the binary.
package businessgoals

import (
	"cmp"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/identity"
	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/internal/markdown"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/internal/transform"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

const Entity = "business_goal"

//go:embed content/*.md
var embedded embed.FS

// Pattern selects goal files inside a filesystem.
const Pattern = "**/*.md"

// BusinessGoal is one goal as authored.
type BusinessGoal struct {
	ID           uuid.UUID
	Slug         string      `yaml:"slug"`
	Title        string      `yaml:"title"`
	Description  string      `yaml:"description"`
	Icon         string      `yaml:"icon"`
	Order        int         `yaml:"order"`
	HeroImage    imageMatter `yaml:"hero_image"`
	Features     []Feature   `yaml:"features"`
	CaseStudies  []CaseStudy `yaml:"case_studies"`
	Integrations []string    `yaml:"integrations"`
	Hidden       bool        `yaml:"hidden"`
	Body         string      `yaml:"-"`
	BodyHTML     string      `yaml:"-"`
	Source       string      `yaml:"-"`
}

func (g *BusinessGoal) GetID() uuid.UUID { return g.ID }
func (g *BusinessGoal) GetSlug() string  { return g.Slug }
func (g *BusinessGoal) IsVisible() bool  { return !g.Hidden }

type imageMatter struct {
	URL string `yaml:"url"`
	Alt string `yaml:"alt"`
}

type Feature struct {
	Title       string `yaml:"title"       json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon"        json:"icon"`
}

type CaseStudy struct {
	Title       string `yaml:"title"       json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image"       json:"image"`
	URL         string `yaml:"url"         json:"url,omitempty"`
}

// Load parses every goal file in fsys. Goals without a slug get one derived
// from the file name.
func Load(fsys fs.FS) ([]*BusinessGoal, error) {
	files, err := markdown.ReadFiles(fsys, Pattern)
	if err != nil {
		return nil, fmt.Errorf("businessgoals: %w", err)
	}

	md := markdown.NewGoldmarkParser(markdown.ParseOptions{})
	goals := make([]*BusinessGoal, 0, len(files))
	seen := map[string]string{}
	for _, file := range files {
		goal, err := parse(md, file)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[goal.Slug]; dup {
			return nil, fmt.Errorf("businessgoals: slug %q used by %s and %s", goal.Slug, other, file.Path)
		}
		seen[goal.Slug] = file.Path
		goals = append(goals, goal)
	}
	slices.SortStableFunc(goals, func(a, b *BusinessGoal) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	return goals, nil
}

func parse(md *markdown.GoldmarkParser, file markdown.File) (*BusinessGoal, error) {
	goal := &BusinessGoal{Source: file.Path}
	body, err := markdown.ParseFrontMatter(file.Source, goal)
	if err != nil {
		return nil, fmt.Errorf("businessgoals: %s: %w", file.Path, err)
	}
	if strings.TrimSpace(goal.Title) == "" {
		return nil, fmt.Errorf("businessgoals: %s: title is required", file.Path)
	}
	if strings.TrimSpace(goal.Slug) == "" {
		goal.Slug = strings.TrimSuffix(path.Base(file.Path), path.Ext(file.Path))
	}
	goal.ID = identity.BusinessGoalUUID(goal.Slug)
	goal.Body = strings.TrimSpace(string(body))
	if goal.BodyHTML, err = md.Render(goal.Body); err != nil {
		return nil, fmt.Errorf("businessgoals: render %s: %w", file.Path, err)
	}
	return goal, nil
}

// Service is the business goal read service.
type Service = catalog.Service[*BusinessGoal, BusinessGoalView]

type Option func(*catalog.ServiceConfig[BusinessGoalView])

func WithLogger(logger interfaces.Logger) Option {
	return func(cfg *catalog.ServiceConfig[BusinessGoalView]) { cfg.Logger = logger }
}

func WithResolverOptions(opts ...slugs.Option) Option {
	return func(cfg *catalog.ServiceConfig[BusinessGoalView]) {
		cfg.Resolver = append(cfg.Resolver, opts...)
	}
}

func WithURL(fn func(slug string) string) Option {
	return func(cfg *catalog.ServiceConfig[BusinessGoalView]) {
		if fn != nil {
			cfg.Decorate = func(v *BusinessGoalView) { v.URL = fn(v.Slug) }
		}
	}
}

// NewService serves goals. Listing keeps the authored order.
func NewService(goals []*BusinessGoal, opts ...Option) *Service {
	cfg := catalog.ServiceConfig[BusinessGoalView]{Entity: Entity}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return catalog.NewService[*BusinessGoal, BusinessGoalView](newRepository(goals), TransformWithReport, cfg)
}

// NewDefaultService serves the embedded goals.
func NewDefaultService(opts ...Option) (*Service, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, err
	}
	goals, err := Load(sub)
	if err != nil {
		return nil, err
	}
	return NewService(goals, opts...), nil
}

// repository keeps goals in authored order, unlike the slug ordered
// catalog.MemoryRepository.
type repository struct {
	*slugs.MemorySource[*BusinessGoal]
}

func newRepository(goals []*BusinessGoal) repository {
	return repository{MemorySource: slugs.NewMemorySource(slugs.Fields[*BusinessGoal]{
		ID:      func(g *BusinessGoal) string { return g.ID.String() },
		Slug:    func(g *BusinessGoal) string { return g.Slug },
		Visible: func(g *BusinessGoal) bool { return g.IsVisible() },
	}, goals...)}
}

func (r repository) List(context.Context) ([]*BusinessGoal, error) {
	return r.All(), nil
}

// BusinessGoalView is the page model.
type BusinessGoalView struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Icon         string          `json:"icon"`
	URL          string          `json:"url,omitempty"`
	HeroImage    transform.Image `json:"heroImage"`
	Features     []Feature       `json:"features"`
	CaseStudies  []CaseStudy     `json:"caseStudies"`
	Integrations []string        `json:"integrations"`
	BodyHTML     string          `json:"bodyHtml,omitempty"`
}

func TransformWithReport(goals []*BusinessGoal, logger interfaces.Logger) ([]BusinessGoalView, transform.Report) {
	if logger == nil {
		logger = logging.NoOp()
	}
	return transform.MapRows(transform.Batch{Entity: Entity, Logger: logger}, goals, toView, func(g *BusinessGoal) string {
		if g == nil {
			return ""
		}
		return g.Slug
	})
}

func toView(g *BusinessGoal) (BusinessGoalView, error) {
	if g == nil {
		return BusinessGoalView{}, fmt.Errorf("businessgoals: nil goal")
	}
	features := make([]Feature, 0, len(g.Features))
	for _, f := range g.Features {
		f.Icon = transform.Icon(f.Icon)
		features = append(features, f)
	}
	hero := transform.Image{}
	if strings.TrimSpace(g.HeroImage.URL) != "" {
		hero = transform.NewImage(g.HeroImage.URL, g.HeroImage.Alt, g.Title)
	}
	return BusinessGoalView{
		ID:           g.ID.String(),
		Slug:         g.Slug,
		Title:        g.Title,
		Description:  g.Description,
		Icon:         transform.Icon(g.Icon),
		HeroImage:    hero,
		Features:     features,
		CaseStudies:  append([]CaseStudy{}, g.CaseStudies...),
		Integrations: append([]string{}, g.Integrations...),
		BodyHTML:     g.BodyHTML,
	}, nil
}
