package technologies

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const Entity = "technology"

// Technology is a technology page (cashless payments, telemetry, ...) made of
// ordered sections.
type Technology struct {
	bun.BaseModel `bun:"table:technologies,alias:t"`

	ID          uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Title       string    `bun:"title,notnull"       json:"title"`
	Description string    `bun:"description"         json:"description"`
	ImageURL    string    `bun:"image_url"           json:"image_url"`
	ImageAlt    string    `bun:"image_alt"           json:"image_alt"`
	Visible     bool      `bun:"visible,notnull"     json:"visible"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Sections []*TechnologySection `bun:"rel:has-many,join:id=technology_id" json:"sections,omitempty"`
}

func (t *Technology) GetID() uuid.UUID { return t.ID }
func (t *Technology) GetSlug() string  { return t.Slug }
func (t *Technology) IsVisible() bool  { return t.Visible }

type TechnologySection struct {
	bun.BaseModel `bun:"table:technology_sections,alias:ts"`

	ID           uuid.UUID `bun:",pk,type:uuid"                  json:"id"`
	TechnologyID uuid.UUID `bun:"technology_id,notnull,type:uuid" json:"technology_id"`
	Title        string    `bun:"title,notnull"                   json:"title"`
	Description  string    `bun:"description"                     json:"description"`
	DisplayOrder int       `bun:"display_order,notnull"           json:"display_order"`

	Features []*TechnologyFeature      `bun:"rel:has-many,join:id=section_id" json:"features,omitempty"`
	Images   []*TechnologySectionImage `bun:"rel:has-many,join:id=section_id" json:"images,omitempty"`
}

type TechnologyFeature struct {
	bun.BaseModel `bun:"table:technology_features,alias:tf"`

	ID           uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	SectionID    uuid.UUID `bun:"section_id,notnull,type:uuid" json:"section_id"`
	Title        string    `bun:"title,notnull"                json:"title"`
	Description  string    `bun:"description"                  json:"description"`
	Icon         string    `bun:"icon"                         json:"icon"`
	DisplayOrder int       `bun:"display_order,notnull"        json:"display_order"`

	Items []*TechnologyFeatureItem `bun:"rel:has-many,join:id=feature_id" json:"items,omitempty"`
}

type TechnologyFeatureItem struct {
	bun.BaseModel `bun:"table:technology_feature_items,alias:tfi"`

	ID           uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	FeatureID    uuid.UUID `bun:"feature_id,notnull,type:uuid" json:"feature_id"`
	Item         string    `bun:"item,notnull"                 json:"item"`
	DisplayOrder int       `bun:"display_order,notnull"        json:"display_order"`
}

type TechnologySectionImage struct {
	bun.BaseModel `bun:"table:technology_section_images,alias:tsi"`

	ID           uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	SectionID    uuid.UUID `bun:"section_id,notnull,type:uuid" json:"section_id"`
	URL          string    `bun:"url,notnull"                  json:"url"`
	Alt          string    `bun:"alt"                          json:"alt"`
	DisplayOrder int       `bun:"display_order,notnull"        json:"display_order"`
}

// Models lists every table of the package in creation order.
func Models() []any {
	return []any{
		(*Technology)(nil),
		(*TechnologySection)(nil),
		(*TechnologyFeature)(nil),
		(*TechnologyFeatureItem)(nil),
		(*TechnologySectionImage)(nil),
	}
}
