package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entity is the name used in logs, errors and deprecation telemetry.
const Entity = "product_type"

// ProductType is a product category (snacks, beverages, fresh food, ...)
// promoted on the site.
type ProductType struct {
	bun.BaseModel `bun:"table:product_types,alias:pt"`

	ID          uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Title       string    `bun:"title,notnull"       json:"title"`
	Description string    `bun:"description"         json:"description"`
	Visible     bool      `bun:"visible,notnull"     json:"visible"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Images   []*ProductTypeImage   `bun:"rel:has-many,join:id=product_type_id" json:"images,omitempty"`
	Benefits []*ProductTypeBenefit `bun:"rel:has-many,join:id=product_type_id" json:"benefits,omitempty"`
	Features []*ProductTypeFeature `bun:"rel:has-many,join:id=product_type_id" json:"features,omitempty"`
}

func (p *ProductType) GetID() uuid.UUID { return p.ID }
func (p *ProductType) GetSlug() string  { return p.Slug }
func (p *ProductType) IsVisible() bool  { return p.Visible }

type ProductTypeImage struct {
	bun.BaseModel `bun:"table:product_type_images,alias:pti"`

	ID            uuid.UUID `bun:",pk,type:uuid"                    json:"id"`
	ProductTypeID uuid.UUID `bun:"product_type_id,notnull,type:uuid" json:"product_type_id"`
	URL           string    `bun:"url,notnull"                       json:"url"`
	Alt           string    `bun:"alt"                               json:"alt"`
	DisplayOrder  int       `bun:"display_order,notnull"             json:"display_order"`
}

type ProductTypeBenefit struct {
	bun.BaseModel `bun:"table:product_type_benefits,alias:ptb"`

	ID            uuid.UUID `bun:",pk,type:uuid"                    json:"id"`
	ProductTypeID uuid.UUID `bun:"product_type_id,notnull,type:uuid" json:"product_type_id"`
	Benefit       string    `bun:"benefit,notnull"                   json:"benefit"`
	DisplayOrder  int       `bun:"display_order,notnull"             json:"display_order"`
}

type ProductTypeFeature struct {
	bun.BaseModel `bun:"table:product_type_features,alias:ptf"`

	ID            uuid.UUID `bun:",pk,type:uuid"                    json:"id"`
	ProductTypeID uuid.UUID `bun:"product_type_id,notnull,type:uuid" json:"product_type_id"`
	Title         string    `bun:"title,notnull"                     json:"title"`
	Description   string    `bun:"description"                       json:"description"`
	Icon          string    `bun:"icon"                              json:"icon"`
	ScreenshotURL string    `bun:"screenshot_url"                    json:"screenshot_url"`
	DisplayOrder  int       `bun:"display_order,notnull"             json:"display_order"`
}

// Models lists every table of the package in creation order.
func Models() []any {
	return []any{
		(*ProductType)(nil),
		(*ProductTypeImage)(nil),
		(*ProductTypeBenefit)(nil),
		(*ProductTypeFeature)(nil),
	}
}
