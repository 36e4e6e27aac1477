package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/slugs"
	"github.com/goliatone/go-vendcms/internal/transform"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
	"github.com/goliatone/go-vendcms/pkg/testsupport"
)

type item struct {
	ID     uuid.UUID
	Slug   string
	Title  string
	Hidden bool
}

func (i *item) GetID() uuid.UUID { return i.ID }
func (i *item) GetSlug() string  { return i.Slug }
func (i *item) IsVisible() bool  { return !i.Hidden }

type itemView struct {
	Slug  string
	Title string
	URL   string
}

func toViews(rows []*item, logger interfaces.Logger) ([]itemView, transform.Report) {
	return transform.MapRows(transform.Batch{Entity: "item", Logger: logger}, rows,
		func(r *item) (itemView, error) {
			if strings.TrimSpace(r.Title) == "" {
				return itemView{}, errors.New("title missing")
			}
			return itemView{Slug: r.Slug, Title: r.Title}, nil
		},
		func(r *item) string { return r.Slug },
	)
}

func newItem(slug, title string) *item {
	return &item{ID: uuid.New(), Slug: slug, Title: title}
}

func TestMemoryRepositoryListsVisibleBySlug(t *testing.T) {
	ctx := context.Background()
	hidden := newItem("aaa-hidden", "Hidden")
	hidden.Hidden = true
	repo := catalog.NewMemoryRepository(newItem("snack-vending", "Snack"), hidden, newItem("coffee-vending", "Coffee"))

	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, r := range rows {
		got = append(got, r.Slug)
	}
	if diff := cmp.Diff([]string{"coffee-vending", "snack-vending"}, got); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryRepositorySaveReplacesByID(t *testing.T) {
	ctx := context.Background()
	original := newItem("snack-vending", "Snack")
	repo := catalog.NewMemoryRepository(original)

	updated := &item{ID: original.ID, Slug: "snack-vending", Title: "Snack Pro"}
	if _, err := repo.Save(ctx, updated); err != nil {
		t.Fatalf("save: %v", err)
	}
	rows, _ := repo.List(ctx)
	if len(rows) != 1 || rows[0].Title != "Snack Pro" {
		t.Fatalf("expected replaced row, got %+v", rows)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := repo.Save(cancelled, newItem("other", "Other")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestServiceReportsDroppedRows(t *testing.T) {
	logger := testsupport.NewRecordingLogger()
	repo := catalog.NewMemoryRepository(newItem("coffee-vending", "Coffee"), newItem("broken", ""))
	svc := catalog.NewService(repo, toViews, catalog.ServiceConfig[itemView]{Entity: "item", Logger: logger})

	views, report, err := svc.FetchAllWithReport(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(views) != 1 || views[0].Slug != "coffee-vending" {
		t.Fatalf("expected the valid row only, got %+v", views)
	}
	if !report.Partial() || report.Total != 2 || report.Kept != 1 || report.Dropped[0].ID != "broken" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(logger.Find("transform.batch_partial")) != 1 {
		t.Fatalf("expected a partial batch warning")
	}
	if svc.Entity() != "item" {
		t.Fatalf("unexpected entity %q", svc.Entity())
	}
}

func TestServiceResolvesAndDecorates(t *testing.T) {
	ctx := context.Background()
	coffee := newItem("coffee-vending", "Coffee")
	repo := catalog.NewMemoryRepository(coffee, newItem("snack-vending", "Snack"))
	svc := catalog.NewService(repo, toViews, catalog.ServiceConfig[itemView]{
		Entity:   "item",
		Decorate: func(v *itemView) { v.URL = "/items/" + v.Slug },
	})

	view, err := svc.FetchBySlug(ctx, "Coffee")
	if err != nil || view == nil {
		t.Fatalf("expected suffix variant hit, got %v err=%v", view, err)
	}
	if diff := cmp.Diff(itemView{Slug: "coffee-vending", Title: "Coffee", URL: "/items/coffee-vending"}, *view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}

	byID, err := svc.FetchByID(ctx, coffee.ID.String())
	if err != nil || byID == nil || byID.Slug != "coffee-vending" {
		t.Fatalf("expected id lookup, got %v err=%v", byID, err)
	}
	if missing, err := svc.FetchByID(ctx, ""); missing != nil || err != nil {
		t.Fatalf("blank id should answer nil, got %v err=%v", missing, err)
	}

	exact, err := svc.Search(ctx, slugs.Request{Slug: "coffee", ExactMatchOnly: true})
	if err != nil || len(exact) != 0 {
		t.Fatalf("exact only must skip the later stages, got %v err=%v", exact, err)
	}
}

type failingSource struct{}

func (failingSource) Match(context.Context, slugs.Lookup) ([]*item, error) {
	return nil, errors.New("connection reset")
}

func (failingSource) Sample(context.Context, int) ([]*item, error) {
	return nil, errors.New("connection reset")
}

func (failingSource) List(context.Context) ([]*item, error) {
	return nil, errors.New("connection reset")
}

func TestServiceSurfacesStoreErrors(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService[*item, itemView](failingSource{}, toViews, catalog.ServiceConfig[itemView]{Entity: "item"})

	views, err := svc.Search(ctx, slugs.Request{Slug: "coffee"})
	var storeErr *slugs.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty non-nil views, got %#v", views)
	}

	all, err := svc.FetchAll(ctx)
	if err == nil || all == nil {
		t.Fatalf("expected list error with empty slice, got %#v err=%v", all, err)
	}
}
