// Package storage opens the relational store behind the content repositories
// and creates its schema.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/internal/products"
	"github.com/goliatone/go-vendcms/internal/runtimeconfig"
	"github.com/goliatone/go-vendcms/internal/technologies"
)

var ErrDriverUnsupported = errors.New("storage: driver unsupported")

// pgx registers itself as "pgx" with database/sql.
const pgxDriverName = "pgx"

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)
	switch driver {
	case runtimeconfig.DriverSQLite:
		sqlDB, err = sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	case runtimeconfig.DriverPostgres:
		sqlDB, err = sql.Open(pgxDriverName, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnsupported, cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", driver, err)
	}
	return db, nil
}

// Models lists every table in creation order.
func Models() []any {
	var out []any
	out = append(out, products.Models()...)
	out = append(out, machines.Models()...)
	out = append(out, technologies.Models()...)
	return out
}

type index struct {
	model  any
	name   string
	column string
}

// Lookup indexes on the parent columns of child tables.
var indexes = []index{
	{(*products.ProductTypeImage)(nil), "idx_product_type_images_parent", "product_type_id"},
	{(*products.ProductTypeBenefit)(nil), "idx_product_type_benefits_parent", "product_type_id"},
	{(*products.ProductTypeFeature)(nil), "idx_product_type_features_parent", "product_type_id"},
	{(*machines.MachineImage)(nil), "idx_machine_images_parent", "machine_id"},
	{(*machines.MachineSpec)(nil), "idx_machine_specs_parent", "machine_id"},
	{(*machines.MachineFeature)(nil), "idx_machine_features_parent", "machine_id"},
	{(*machines.MachineDeploymentExample)(nil), "idx_machine_deployment_examples_parent", "machine_id"},
	{(*technologies.TechnologySection)(nil), "idx_technology_sections_parent", "technology_id"},
	{(*technologies.TechnologyFeature)(nil), "idx_technology_features_parent", "section_id"},
	{(*technologies.TechnologyFeatureItem)(nil), "idx_technology_feature_items_parent", "feature_id"},
	{(*technologies.TechnologySectionImage)(nil), "idx_technology_section_images_parent", "section_id"},
}

// CreateSchema creates every table and index that does not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.column).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("storage: create index %s: %w", idx.name, err)
		}
	}
	return nil
}
