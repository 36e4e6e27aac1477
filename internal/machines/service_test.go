package machines_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/identity"
	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/pkg/testsupport"
)

func seed() []*machines.Machine {
	return []*machines.Machine{
		{
			Slug: "snack-pro-vending", Title: "Snack Pro", Visible: true,
			Images: []*machines.MachineImage{{URL: "/snack.jpg", DisplayOrder: 0}},
			Specs:  []*machines.MachineSpec{{Key: "Power", Value: `{"value":"120V"}`}},
		},
		{Slug: "Coffee-Max", Title: "Coffee Max", Visible: true},
		{Slug: "hidden-fridge", Title: "Hidden", Visible: false},
	}
}

func TestServiceResolvesAcrossStagesInMemory(t *testing.T) {
	ctx := context.Background()
	svc := machines.NewService(machines.NewMemoryRepository(seed()...),
		machines.WithURL(func(slug string) string { return "/machines/" + slug }),
	)

	view, err := svc.FetchBySlug(ctx, "snack-pro")
	if err != nil || view == nil {
		t.Fatalf("expected suffix variant hit, got %v err=%v", view, err)
	}
	if view.URL != "/machines/snack-pro-vending" {
		t.Fatalf("expected decorated url, got %q", view.URL)
	}
	if view.Specs["Power"] != "120V" {
		t.Fatalf("expected unwrapped spec, got %v", view.Specs)
	}

	view, err = svc.FetchBySlug(ctx, "coffee-max")
	if err != nil || view == nil || view.Title != "Coffee Max" {
		t.Fatalf("expected case-insensitive hit, got %v err=%v", view, err)
	}

	view, err = svc.FetchBySlug(ctx, "hidden-fridge")
	if err != nil || view != nil {
		t.Fatalf("hidden rows must not resolve, got %v err=%v", view, err)
	}

	all, err := svc.FetchAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 visible machines, got %d err=%v", len(all), err)
	}
}

func TestServiceExactMatchOnly(t *testing.T) {
	svc := machines.NewService(machines.NewMemoryRepository(seed()...))
	got, err := svc.Search(context.Background(), slugs.Request{Slug: "snack-pro", ExactMatchOnly: true})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no exact match, got %+v err=%v", got, err)
	}
}

func TestServiceFetchByIDAcceptsEntryIDs(t *testing.T) {
	ctx := context.Background()
	m := &machines.Machine{ID: identity.EntryUUID("4BqrajvA8E6qwgGieoA2n"), Slug: "combo", Title: "Combo", Visible: true}
	svc := machines.NewService(machines.NewMemoryRepository(m))

	byEntry, err := svc.FetchByID(ctx, "4BqrajvA8E6qwgGieoA2n")
	if err != nil || byEntry == nil || byEntry.Slug != "combo" {
		t.Fatalf("expected entry id lookup to resolve, got %v err=%v", byEntry, err)
	}
	byUUID, err := svc.FetchByID(ctx, m.ID.String())
	if err != nil || byUUID == nil {
		t.Fatalf("expected uuid lookup to resolve, got %v err=%v", byUUID, err)
	}
	missing, err := svc.FetchByID(ctx, uuid.NewString())
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown id, got %v err=%v", missing, err)
	}
}

func TestBunRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, machines.Models()...)
	repo := machines.NewBunRepository(db)

	for _, m := range seed() {
		if _, err := repo.Save(ctx, m); err != nil {
			t.Fatalf("save %s: %v", m.Slug, err)
		}
	}

	svc := machines.NewService(repo)

	view, err := svc.FetchBySlug(ctx, "SNACK-PRO")
	if err != nil || view == nil {
		t.Fatalf("expected machine, got %v err=%v", view, err)
	}
	if len(view.Images) != 1 || view.Image.Alt != "Snack Pro" {
		t.Fatalf("expected image with title alt, got %+v", view.Images)
	}

	view, err = svc.FetchBySlug(ctx, "offee")
	if err != nil || view == nil || view.Slug != "Coffee-Max" {
		t.Fatalf("expected contains hit, got %v err=%v", view, err)
	}

	all, err := svc.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != 2 || all[0].Title != "Coffee Max" {
		t.Fatalf("expected visible machines ordered by title, got %+v", all)
	}
}

func TestBunRepositorySaveReplacesChildren(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, machines.Models()...)
	repo := machines.NewBunRepository(db)

	m := &machines.Machine{
		Slug: "combo", Title: "Combo", Visible: true,
		Features: []*machines.MachineFeature{{Feature: "A"}, {Feature: "B", DisplayOrder: 1}},
	}
	if _, err := repo.Save(ctx, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	m.Features = []*machines.MachineFeature{{Feature: "C"}}
	m.Title = "Combo 2"
	if _, err := repo.Save(ctx, m); err != nil {
		t.Fatalf("resave: %v", err)
	}

	rows, err := repo.Match(ctx, slugs.Lookup{Field: slugs.FieldSlug, Match: slugs.MatchExact, Value: "combo"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected one row, got %d err=%v", len(rows), err)
	}
	if rows[0].Title != "Combo 2" || len(rows[0].Features) != 1 || rows[0].Features[0].Feature != "C" {
		t.Fatalf("expected replaced children, got %+v", rows[0])
	}
}

func TestBunRepositoryRejectsNilChildren(t *testing.T) {
	db := testsupport.NewBunDB(t, machines.Models()...)
	repo := machines.NewBunRepository(db)

	_, err := repo.Save(context.Background(), &machines.Machine{Slug: "x", Images: []*machines.MachineImage{nil}})
	if err == nil {
		t.Fatalf("expected error for nil child")
	}
	if _, err := repo.Match(context.Background(), slugs.Lookup{Field: "title"}); !errors.Is(err, slugs.ErrUnsupportedField) {
		t.Fatalf("expected ErrUnsupportedField, got %v", err)
	}
}
