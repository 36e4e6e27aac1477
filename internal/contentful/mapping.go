package contentful

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-vendcms/internal/identity"
	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/internal/products"
	"github.com/goliatone/go-vendcms/internal/technologies"
	"github.com/goliatone/go-vendcms/internal/validation"
)

// Mapper turns a delivery entry into a relational record. assets holds the
// included assets of the page the entry came from.
type Mapper[T any] func(entry Entry, assets map[string]Asset) (T, error)

type machineFields struct {
	Title              string            `json:"title"`
	Slug               string            `json:"slug"`
	Type               string            `json:"type"`
	Temperature        string            `json:"temperature"`
	Description        string            `json:"description"`
	Visible            *bool             `json:"visible"`
	Images             []Link            `json:"images"`
	Specs              []specField       `json:"specs"`
	Features           []string          `json:"features"`
	DeploymentExamples []deploymentField `json:"deploymentExamples"`
}

type specField struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type deploymentField struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type productTypeFields struct {
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Visible     *bool          `json:"visible"`
	Images      []Link         `json:"images"`
	Benefits    []string       `json:"benefits"`
	Features    []featureField `json:"features"`
}

type featureField struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Screenshot  string `json:"screenshot"`
}

type technologyFields struct {
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Visible     *bool          `json:"visible"`
	Image       *Link          `json:"image"`
	Sections    []sectionField `json:"sections"`
}

type sectionField struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Features    []technologyFeatureField `json:"features"`
	Images      []imageField             `json:"images"`
}

type technologyFeatureField struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Items       []string `json:"items"`
}

type imageField struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// decodeFields validates the entry against schema and decodes it into F.
func decodeFields[F any](entry Entry, schema string) (F, error) {
	var fields F
	raw, err := json.Marshal(entry.Fields)
	if err != nil {
		return fields, fmt.Errorf("contentful: entry %s: %w", entry.Sys.ID, err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fields, fmt.Errorf("contentful: entry %s: %w", entry.Sys.ID, err)
	}
	if err := validation.ValidateEntry(schema, generic); err != nil {
		return fields, fmt.Errorf("contentful: entry %s: %w", entry.Sys.ID, err)
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fields, fmt.Errorf("contentful: entry %s: %w", entry.Sys.ID, err)
	}
	return fields, nil
}

// entrySlug keeps an authored slug verbatim and derives one from the title
// when it is blank.
func entrySlug(value, title string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	derived, err := slug.Normalize(title)
	if err != nil || derived == "" {
		return "", fmt.Errorf("contentful: cannot derive slug from %q", title)
	}
	return derived, nil
}

func visible(flag *bool) bool {
	return flag == nil || *flag
}

func resolveAsset(link Link, assets map[string]Asset) (Asset, bool) {
	if link.Sys.LinkType != "" && link.Sys.LinkType != "Asset" {
		return Asset{}, false
	}
	asset, ok := assets[link.Sys.ID]
	return asset, ok && asset.URL() != ""
}

// specValue stores string values as authored and any other JSON value as its
// encoded text, so {"value": ...} documents are unwrapped by the transformer.
func specValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// MapMachine maps a machine entry.
func MapMachine(entry Entry, assets map[string]Asset) (*machines.Machine, error) {
	f, err := decodeFields[machineFields](entry, validation.ContentTypeMachine)
	if err != nil {
		return nil, err
	}
	s, err := entrySlug(f.Slug, f.Title)
	if err != nil {
		return nil, err
	}
	m := &machines.Machine{
		ID:          identity.EntryUUID(entry.Sys.ID),
		Slug:        s,
		Title:       f.Title,
		Type:        f.Type,
		Temperature: f.Temperature,
		Description: f.Description,
		Visible:     visible(f.Visible),
		CreatedAt:   entry.Sys.CreatedAt,
		UpdatedAt:   entry.Sys.UpdatedAt,
	}
	for _, link := range f.Images {
		if asset, ok := resolveAsset(link, assets); ok {
			m.Images = append(m.Images, &machines.MachineImage{
				URL:          asset.URL(),
				Alt:          asset.Fields.Title,
				DisplayOrder: len(m.Images),
			})
		}
	}
	for i, spec := range f.Specs {
		m.Specs = append(m.Specs, &machines.MachineSpec{Key: spec.Key, Value: specValue(spec.Value), DisplayOrder: i})
	}
	for i, feature := range f.Features {
		m.Features = append(m.Features, &machines.MachineFeature{Feature: feature, DisplayOrder: i})
	}
	for i, example := range f.DeploymentExamples {
		m.DeploymentExamples = append(m.DeploymentExamples, &machines.MachineDeploymentExample{
			Title:        example.Title,
			Description:  example.Description,
			ImageURL:     example.Image,
			DisplayOrder: i,
		})
	}
	return m, nil
}

// MapProductType maps a product type entry.
func MapProductType(entry Entry, assets map[string]Asset) (*products.ProductType, error) {
	f, err := decodeFields[productTypeFields](entry, validation.ContentTypeProductType)
	if err != nil {
		return nil, err
	}
	s, err := entrySlug(f.Slug, f.Title)
	if err != nil {
		return nil, err
	}
	p := &products.ProductType{
		ID:          identity.EntryUUID(entry.Sys.ID),
		Slug:        s,
		Title:       f.Title,
		Description: f.Description,
		Visible:     visible(f.Visible),
		CreatedAt:   entry.Sys.CreatedAt,
		UpdatedAt:   entry.Sys.UpdatedAt,
	}
	for _, link := range f.Images {
		if asset, ok := resolveAsset(link, assets); ok {
			p.Images = append(p.Images, &products.ProductTypeImage{
				URL:          asset.URL(),
				Alt:          asset.Fields.Title,
				DisplayOrder: len(p.Images),
			})
		}
	}
	for i, benefit := range f.Benefits {
		p.Benefits = append(p.Benefits, &products.ProductTypeBenefit{Benefit: benefit, DisplayOrder: i})
	}
	for i, feature := range f.Features {
		p.Features = append(p.Features, &products.ProductTypeFeature{
			Title:         feature.Title,
			Description:   feature.Description,
			Icon:          feature.Icon,
			ScreenshotURL: feature.Screenshot,
			DisplayOrder:  i,
		})
	}
	return p, nil
}

// MapTechnology maps a technology entry.
func MapTechnology(entry Entry, assets map[string]Asset) (*technologies.Technology, error) {
	f, err := decodeFields[technologyFields](entry, validation.ContentTypeTechnology)
	if err != nil {
		return nil, err
	}
	s, err := entrySlug(f.Slug, f.Title)
	if err != nil {
		return nil, err
	}
	t := &technologies.Technology{
		ID:          identity.EntryUUID(entry.Sys.ID),
		Slug:        s,
		Title:       f.Title,
		Description: f.Description,
		Visible:     visible(f.Visible),
		CreatedAt:   entry.Sys.CreatedAt,
		UpdatedAt:   entry.Sys.UpdatedAt,
	}
	if f.Image != nil {
		if asset, ok := resolveAsset(*f.Image, assets); ok {
			t.ImageURL = asset.URL()
			t.ImageAlt = asset.Fields.Title
		}
	}
	for i, section := range f.Sections {
		ts := &technologies.TechnologySection{
			Title:        section.Title,
			Description:  section.Description,
			DisplayOrder: i,
		}
		for j, feature := range section.Features {
			tf := &technologies.TechnologyFeature{
				Title:        feature.Title,
				Description:  feature.Description,
				Icon:         feature.Icon,
				DisplayOrder: j,
			}
			for k, item := range feature.Items {
				tf.Items = append(tf.Items, &technologies.TechnologyFeatureItem{Item: item, DisplayOrder: k})
			}
			ts.Features = append(ts.Features, tf)
		}
		for j, img := range section.Images {
			ts.Images = append(ts.Images, &technologies.TechnologySectionImage{URL: img.URL, Alt: img.Alt, DisplayOrder: j})
		}
		t.Sections = append(t.Sections, ts)
	}
	return t, nil
}
