package technologies_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-vendcms/internal/technologies"
	"github.com/goliatone/go-vendcms/pkg/testsupport"
)

func cashless() *technologies.Technology {
	return &technologies.Technology{
		Slug:    "cashless-payments",
		Title:   "Cashless Payments",
		Visible: true,
		Sections: []*technologies.TechnologySection{
			{Title: "Second", DisplayOrder: 1},
			{
				Title:        "First",
				DisplayOrder: 0,
				Features: []*technologies.TechnologyFeature{{
					Title: "Cards",
					Items: []*technologies.TechnologyFeatureItem{
						{Item: "Amex", DisplayOrder: 2},
						{Item: "Visa", DisplayOrder: 0},
						{Item: "Mastercard", DisplayOrder: 1},
					},
				}},
				Images: []*technologies.TechnologySectionImage{{URL: "/reader.jpg"}},
			},
		},
	}
}

func TestTechnologySaveAndLoadSectionTree(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, technologies.Models()...)
	repo := technologies.NewBunRepository(db)

	if _, err := repo.Save(ctx, cashless()); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc := technologies.NewService(repo)
	view, err := svc.FetchBySlug(ctx, "cashless")
	if err != nil || view == nil {
		t.Fatalf("expected contains hit, got %v err=%v", view, err)
	}
	if len(view.Sections) != 2 || view.Sections[0].Title != "First" {
		t.Fatalf("expected ordered sections, got %+v", view.Sections)
	}
	items := view.Sections[0].Features[0].Items
	if len(items) != 3 || items[0] != "Visa" || items[2] != "Amex" {
		t.Fatalf("expected ordered items, got %v", items)
	}
	if img := view.Sections[0].Images[0]; img.Alt != "First" {
		t.Fatalf("expected section title alt, got %+v", img)
	}
}

func TestTechnologySaveReplacesNestedChildren(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, technologies.Models()...)
	repo := technologies.NewBunRepository(db)

	saved, err := repo.Save(ctx, cashless())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	update := &technologies.Technology{
		ID:      saved.ID,
		Slug:    saved.Slug,
		Title:   "Cashless",
		Visible: true,
		Sections: []*technologies.TechnologySection{{
			Title:    "Only",
			Features: []*technologies.TechnologyFeature{{Title: "NFC", Items: []*technologies.TechnologyFeatureItem{{Item: "Phones"}}}},
		}},
	}
	if _, err := repo.Save(ctx, update); err != nil {
		t.Fatalf("resave: %v", err)
	}

	for model, want := range map[any]int{
		(*technologies.TechnologySection)(nil):      1,
		(*technologies.TechnologyFeature)(nil):      1,
		(*technologies.TechnologyFeatureItem)(nil):  1,
		(*technologies.TechnologySectionImage)(nil): 0,
	} {
		count, err := db.NewSelect().Model(model).Count(ctx)
		if err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if count != want {
			t.Fatalf("%T: expected %d rows, got %d", model, want, count)
		}
	}

	view, err := technologies.NewService(repo).FetchBySlug(ctx, "cashless-payments")
	if err != nil || view == nil || view.Title != "Cashless" {
		t.Fatalf("expected updated technology, got %+v err=%v", view, err)
	}
}

func TestTechnologyMemoryRepositoryRejectsBlankSlug(t *testing.T) {
	repo := technologies.NewMemoryRepository()
	if _, err := repo.Save(context.Background(), &technologies.Technology{Title: "No slug"}); err == nil {
		t.Fatalf("expected error for blank slug")
	}
}
