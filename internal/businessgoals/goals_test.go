package businessgoals_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-vendcms/internal/businessgoals"
	"github.com/goliatone/go-vendcms/internal/identity"
	"github.com/goliatone/go-vendcms/internal/transform"
)

func TestDefaultServiceListsEmbeddedGoalsInOrder(t *testing.T) {
	svc, err := businessgoals.NewDefaultService()
	if err != nil {
		t.Fatalf("load embedded goals: %v", err)
	}
	goals, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	var slugs []string
	for _, goal := range goals {
		slugs = append(slugs, goal.Slug)
	}
	want := []string{"increase-revenue", "employee-satisfaction", "healthy-options-vending"}
	if diff := cmp.Diff(want, slugs); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestDefaultServiceAppliesDefaults(t *testing.T) {
	svc, err := businessgoals.NewDefaultService(businessgoals.WithURL(func(slug string) string {
		return "/business-goals/" + slug
	}))
	if err != nil {
		t.Fatalf("load embedded goals: %v", err)
	}
	goal, err := svc.FetchBySlug(context.Background(), "employee-satisfaction")
	if err != nil || goal == nil {
		t.Fatalf("expected goal, got %v err=%v", goal, err)
	}
	if goal.HeroImage != (transform.Image{URL: "/images/goals/employees.jpg", Alt: "Employee Satisfaction"}) {
		t.Fatalf("hero alt should fall back to the title, got %+v", goal.HeroImage)
	}
	if goal.Features[1].Icon != transform.DefaultIcon {
		t.Fatalf("expected default feature icon, got %q", goal.Features[1].Icon)
	}
	if goal.URL != "/business-goals/employee-satisfaction" {
		t.Fatalf("unexpected url %q", goal.URL)
	}
	if !strings.Contains(goal.BodyHTML, "<strong>healthy, varied</strong>") {
		t.Fatalf("expected rendered markdown, got %q", goal.BodyHTML)
	}

	healthy, err := svc.FetchBySlug(context.Background(), "healthy-options")
	if err != nil || healthy == nil {
		t.Fatalf("expected suffix variant to resolve, got %v err=%v", healthy, err)
	}
	if healthy.Icon != transform.DefaultIcon || healthy.Integrations == nil || healthy.CaseStudies == nil {
		t.Fatalf("expected defaults on sparse goal, got %+v", healthy)
	}
}

func TestFetchByIDUsesSlugDerivedIdentity(t *testing.T) {
	svc, err := businessgoals.NewDefaultService()
	if err != nil {
		t.Fatalf("load embedded goals: %v", err)
	}
	id := identity.BusinessGoalUUID("increase-revenue").String()
	goal, err := svc.FetchByID(context.Background(), id)
	if err != nil || goal == nil || goal.Title != "Increase Revenue" {
		t.Fatalf("expected goal by id, got %v err=%v", goal, err)
	}
}

func TestLoadDerivesSlugAndRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"goals/nested/quiet-floors.md": {Data: []byte("---\ntitle: Quiet Floors\n---\nBody\n")},
		"goals/hidden.md":              {Data: []byte("---\ntitle: Hidden\nhidden: true\norder: 1\n---\n")},
	}
	goals, err := businessgoals.Load(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(goals) != 2 || goals[0].Slug != "quiet-floors" || goals[0].BodyHTML != "<p>Body</p>\n" {
		t.Fatalf("unexpected goals %+v", goals)
	}

	svc := businessgoals.NewService(goals)
	all, _ := svc.FetchAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("hidden goals must not be listed, got %+v", all)
	}

	fsys["other/quiet-floors.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Again\n---\n")}
	if _, err := businessgoals.Load(fsys); err == nil || !strings.Contains(err.Error(), "quiet-floors") {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}
}

func TestLoadRequiresTitle(t *testing.T) {
	fsys := fstest.MapFS{"broken.md": {Data: []byte("---\nslug: broken\n---\n")}}
	if _, err := businessgoals.Load(fsys); err == nil {
		t.Fatalf("expected missing title error")
	}
}
