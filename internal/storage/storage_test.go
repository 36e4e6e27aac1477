package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/internal/runtimeconfig"
	"github.com/goliatone/go-vendcms/internal/storage"
)

func TestOpenSQLiteAndCreateSchema(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, runtimeconfig.StorageConfig{
		Driver: runtimeconfig.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	for range 2 {
		if err := storage.CreateSchema(ctx, db); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	repo := machines.NewBunRepository(db)
	if _, err := repo.Save(ctx, &machines.Machine{Slug: "snack", Title: "Snack", Visible: true}); err != nil {
		t.Fatalf("save after schema creation: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), runtimeconfig.StorageConfig{Driver: "mysql", DSN: "x"})
	if !errors.Is(err, storage.ErrDriverUnsupported) {
		t.Fatalf("expected ErrDriverUnsupported, got %v", err)
	}
}

func TestModelsCoverEveryTable(t *testing.T) {
	if got := len(storage.Models()); got != 14 {
		t.Fatalf("expected 14 models, got %d", got)
	}
}
