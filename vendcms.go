// Package vendcms is the content core of the vending machine marketing site:
// slug resolution, view model transformation and the read-only legacy
// adapters that point editors to the external CMS.
package vendcms

import (
	"github.com/goliatone/go-vendcms/internal/adapters"
	"github.com/goliatone/go-vendcms/internal/businessgoals"
	"github.com/goliatone/go-vendcms/internal/deprecation"
	"github.com/goliatone/go-vendcms/internal/di"
	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/internal/migration"
	"github.com/goliatone/go-vendcms/internal/products"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/internal/technologies"
	"github.com/goliatone/go-vendcms/internal/transform"
)

type (
	MachineView      = machines.MachineView
	ProductTypeView  = products.ProductTypeView
	TechnologyView   = technologies.TechnologyView
	BusinessGoalView = businessgoals.BusinessGoalView
	Image            = transform.Image
	TransformReport  = transform.Report

	MachineService      = machines.Service
	ProductTypeService  = products.Service
	TechnologyService   = technologies.Service
	BusinessGoalService = businessgoals.Service

	// SlugRequest carries a slug, an optional id and ExactMatchOnly.
	SlugRequest = slugs.Request

	DeprecatedOperationError = deprecation.DeprecatedOperationError
	DeprecationUsage         = deprecation.Usage
	DeprecationRegistry      = deprecation.Registry

	SyncJob    = migration.Job
	SyncReport = migration.Report
)

var ErrDeprecatedOperation = deprecation.ErrDeprecatedOperation

// IsDeprecated reports whether err came from a blocked legacy write.
func IsDeprecated(err error) bool { return deprecation.IsDeprecated(err) }

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container { return m.container }

// Close releases database and redis connections opened by New.
func (m *Module) Close() error { return m.container.Close() }

func (m *Module) Machines() *MachineService { return m.container.MachineService() }

func (m *Module) ProductTypes() *ProductTypeService { return m.container.ProductTypeService() }

func (m *Module) Technologies() *TechnologyService { return m.container.TechnologyService() }

func (m *Module) BusinessGoals() *BusinessGoalService { return m.container.BusinessGoalService() }

// MachineAdapter is the legacy read/write surface. Writes are rejected with
// a DeprecatedOperationError.
func (m *Module) MachineAdapter() adapters.ContentAdapter[MachineView] {
	return m.container.MachineAdapter()
}

func (m *Module) ProductTypeAdapter() adapters.ContentAdapter[ProductTypeView] {
	return m.container.ProductTypeAdapter()
}

func (m *Module) TechnologyAdapter() adapters.ContentAdapter[TechnologyView] {
	return m.container.TechnologyAdapter()
}

func (m *Module) Deprecations() *DeprecationRegistry { return m.container.DeprecationRegistry() }

// SyncJobs is empty unless Features.Migration is enabled.
func (m *Module) SyncJobs() []SyncJob { return m.container.SyncJobs() }
