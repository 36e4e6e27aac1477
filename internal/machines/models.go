package machines

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entity is the name used in logs, errors and deprecation telemetry.
const Entity = "machine"

// Machine is a vending machine model shown on the marketing site.
type Machine struct {
	bun.BaseModel `bun:"table:machines,alias:m"`

	ID          uuid.UUID `bun:",pk,type:uuid"             json:"id"`
	Slug        string    `bun:"slug,notnull,unique"        json:"slug"`
	Title       string    `bun:"title,notnull"              json:"title"`
	Type        string    `bun:"type"                       json:"type"`
	Temperature string    `bun:"temperature"                json:"temperature"`
	Description string    `bun:"description"                json:"description"`
	Visible     bool      `bun:"visible,notnull"            json:"visible"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Images             []*MachineImage             `bun:"rel:has-many,join:id=machine_id" json:"images,omitempty"`
	Specs              []*MachineSpec              `bun:"rel:has-many,join:id=machine_id" json:"specs,omitempty"`
	Features           []*MachineFeature           `bun:"rel:has-many,join:id=machine_id" json:"features,omitempty"`
	DeploymentExamples []*MachineDeploymentExample `bun:"rel:has-many,join:id=machine_id" json:"deployment_examples,omitempty"`
}

func (m *Machine) GetID() uuid.UUID { return m.ID }
func (m *Machine) GetSlug() string  { return m.Slug }
func (m *Machine) IsVisible() bool  { return m.Visible }

// MachineImage is an ordered gallery image.
type MachineImage struct {
	bun.BaseModel `bun:"table:machine_images,alias:mi"`

	ID           uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	MachineID    uuid.UUID `bun:"machine_id,notnull,type:uuid" json:"machine_id"`
	URL          string    `bun:"url,notnull"                  json:"url"`
	Alt          string    `bun:"alt"                          json:"alt"`
	DisplayOrder int       `bun:"display_order,notnull"        json:"display_order"`
}

// MachineSpec is a free form key/value specification. Value may hold a JSON
// document of the shape {"value": ...}.
type MachineSpec struct {
	bun.BaseModel `bun:"table:machine_specs,alias:ms"`

	ID           uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	MachineID    uuid.UUID `bun:"machine_id,notnull,type:uuid" json:"machine_id"`
	Key          string    `bun:"spec_key,notnull"             json:"key"`
	Value        string    `bun:"spec_value"                   json:"value"`
	DisplayOrder int       `bun:"display_order,notnull"        json:"display_order"`
}

// MachineFeature is a bullet point on the machine page.
type MachineFeature struct {
	bun.BaseModel `bun:"table:machine_features,alias:mf"`

	ID           uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	MachineID    uuid.UUID `bun:"machine_id,notnull,type:uuid" json:"machine_id"`
	Feature      string    `bun:"feature,notnull"              json:"feature"`
	DisplayOrder int       `bun:"display_order,notnull"        json:"display_order"`
}

// MachineDeploymentExample describes a place the machine is installed.
type MachineDeploymentExample struct {
	bun.BaseModel `bun:"table:machine_deployment_examples,alias:mde"`

	ID           uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	MachineID    uuid.UUID `bun:"machine_id,notnull,type:uuid" json:"machine_id"`
	Title        string    `bun:"title,notnull"                json:"title"`
	Description  string    `bun:"description"                  json:"description"`
	ImageURL     string    `bun:"image_url"                    json:"image_url"`
	DisplayOrder int       `bun:"display_order,notnull"        json:"display_order"`
}

// Models lists every table of the package in creation order.
func Models() []any {
	return []any{
		(*Machine)(nil),
		(*MachineImage)(nil),
		(*MachineSpec)(nil),
		(*MachineFeature)(nil),
		(*MachineDeploymentExample)(nil),
	}
}
