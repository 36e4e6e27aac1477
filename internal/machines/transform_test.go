package machines

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/transform"
)

func sampleMachine() *Machine {
	return &Machine{
		ID:          uuid.MustParse("6f1f7d0e-5b0a-4f5e-9f53-0d6a2f1b7c11"),
		Slug:        "snack-pro",
		Title:       "Snack Pro",
		Type:        "snack",
		Temperature: "ambient",
		Visible:     true,
		Images: []*MachineImage{
			{URL: "/img/b.jpg", Alt: "", DisplayOrder: 1},
			{URL: "/img/a.jpg", Alt: "Front", DisplayOrder: 0},
		},
		Specs: []*MachineSpec{
			{Key: "Power", Value: "120V", DisplayOrder: 0},
			{Key: " Capacity (items) ", Value: `{"value":"42"}`, DisplayOrder: 1},
			{Key: "weight_kg", Value: `{"value":180}`, DisplayOrder: 2},
		},
		Features: []*MachineFeature{
			{Feature: "Cashless", DisplayOrder: 2},
			{Feature: "Telemetry", DisplayOrder: 0},
			{Feature: "LED lighting", DisplayOrder: 1},
		},
		DeploymentExamples: []*MachineDeploymentExample{
			{Title: "Office", Description: "Break room", ImageURL: "/img/office.jpg", DisplayOrder: 0},
		},
	}
}

func TestTransformMachineData(t *testing.T) {
	got := TransformMachineData([]*Machine{sampleMachine()})

	want := []MachineView{{
		ID:          "6f1f7d0e-5b0a-4f5e-9f53-0d6a2f1b7c11",
		Slug:        "snack-pro",
		Title:       "Snack Pro",
		Type:        "snack",
		Temperature: "ambient",
		Image:       transform.Image{URL: "/img/a.jpg", Alt: "Front"},
		Images: []transform.Image{
			{URL: "/img/a.jpg", Alt: "Front"},
			{URL: "/img/b.jpg", Alt: "Snack Pro"},
		},
		Specs: map[string]any{
			"Power":              "120V",
			" Capacity (items) ": "42",
			"weight_kg":          int64(180),
		},
		Features: []string{"Telemetry", "LED lighting", "Cashless"},
		DeploymentExamples: []DeploymentExampleView{
			{Title: "Office", Description: "Break room", Image: "/img/office.jpg"},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected view (-want +got):\n%s", diff)
	}
}

func TestTransformPreservesSpecKeysVerbatim(t *testing.T) {
	m := &Machine{Slug: "x", Specs: []*MachineSpec{{Key: "Power", Value: "120V"}}}
	got := TransformMachineData([]*Machine{m})
	if diff := cmp.Diff(map[string]any{"Power": "120V"}, got[0].Specs); diff != "" {
		t.Fatalf("unexpected specs (-want +got):\n%s", diff)
	}
}

func TestTransformDefaultsForMissingRelations(t *testing.T) {
	got := TransformMachineData([]*Machine{{Slug: "bare", Title: "Bare"}})
	if len(got) != 1 {
		t.Fatalf("expected one view, got %d", len(got))
	}
	v := got[0]
	if v.Images == nil || len(v.Images) != 0 {
		t.Fatalf("expected empty images, got %#v", v.Images)
	}
	if v.Image != (transform.Image{}) {
		t.Fatalf("expected empty primary image, got %+v", v.Image)
	}
	if v.Features == nil || v.DeploymentExamples == nil || v.Specs == nil {
		t.Fatalf("collections must never be nil: %+v", v)
	}
}

func TestTransformDropsMalformedRows(t *testing.T) {
	bad := sampleMachine()
	bad.Slug = "broken"
	bad.Specs = append(bad.Specs, nil)

	first := sampleMachine()
	third := sampleMachine()
	third.Slug = "snack-lite"

	views, report := TransformWithReport([]*Machine{first, bad, third}, nil)
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Slug != "snack-pro" || views[1].Slug != "snack-lite" {
		t.Fatalf("unexpected survivors %s, %s", views[0].Slug, views[1].Slug)
	}
	if !report.Partial() || report.Dropped[0].Index != 1 || report.Dropped[0].ID != "broken" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestTransformDropsNilAndSluglessRows(t *testing.T) {
	views := TransformMachineData([]*Machine{nil, {Slug: "  "}, {Slug: "ok"}})
	if len(views) != 1 || views[0].Slug != "ok" {
		t.Fatalf("expected only the valid row, got %+v", views)
	}
}

func TestFormatSpecLabel(t *testing.T) {
	cases := map[string]string{
		"power_supply": "Power Supply",
		"maxCapacity":  "Max Capacity",
		"LED-count":    "LED Count",
		"  weight  ":   "Weight",
	}
	for in, want := range cases {
		if got := FormatSpecLabel(in); got != want {
			t.Fatalf("FormatSpecLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
