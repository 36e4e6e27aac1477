package technologies

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/transform"
)

func TestTransformTechnologyData(t *testing.T) {
	id := uuid.New()
	rows := []*Technology{{
		ID:          id,
		Slug:        "cashless-payments",
		Title:       "Cashless Payments",
		Description: "Tap and go",
		ImageURL:    "/cashless.jpg",
		Sections: []*TechnologySection{
			{
				Title:        "Reporting",
				DisplayOrder: 2,
				Images:       []*TechnologySectionImage{{URL: "/dash.png", DisplayOrder: 0}},
			},
			{
				Title:        "Payments",
				Description:  "Every card",
				DisplayOrder: 1,
				Features: []*TechnologyFeature{
					{Title: "Mobile wallets", Icon: "phone", DisplayOrder: 2},
					{
						Title:        "Cards",
						DisplayOrder: 1,
						Items: []*TechnologyFeatureItem{
							{Item: "Mastercard", DisplayOrder: 1},
							{Item: "Visa", DisplayOrder: 0},
						},
					},
				},
				Images: []*TechnologySectionImage{
					{URL: "/reader-2.jpg", Alt: "Side", DisplayOrder: 1},
					{URL: "/reader-1.jpg", DisplayOrder: 0},
				},
			},
		},
	}}

	want := []TechnologyView{{
		ID:          id.String(),
		Slug:        "cashless-payments",
		Title:       "Cashless Payments",
		Description: "Tap and go",
		Image:       transform.Image{URL: "/cashless.jpg", Alt: "Cashless Payments"},
		Sections: []SectionView{
			{
				Title:       "Payments",
				Description: "Every card",
				Features: []FeatureView{
					{Title: "Cards", Icon: "check", Items: []string{"Visa", "Mastercard"}},
					{Title: "Mobile wallets", Icon: "phone", Items: []string{}},
				},
				Images: []transform.Image{
					{URL: "/reader-1.jpg", Alt: "Payments"},
					{URL: "/reader-2.jpg", Alt: "Side"},
				},
			},
			{
				Title:    "Reporting",
				Features: []FeatureView{},
				Images:   []transform.Image{{URL: "/dash.png", Alt: "Reporting"}},
			},
		},
	}}

	if diff := cmp.Diff(want, TransformTechnologyData(rows)); diff != "" {
		t.Fatalf("unexpected views (-want +got):\n%s", diff)
	}
}

func TestTransformTechnologyDefaults(t *testing.T) {
	got := TransformTechnologyData([]*Technology{{
		Slug:     "telemetry",
		Title:    "Telemetry",
		Sections: []*TechnologySection{{Images: []*TechnologySectionImage{{URL: "/t.png"}}}},
	}})
	if len(got) != 1 {
		t.Fatalf("expected one view, got %d", len(got))
	}
	if got[0].Image != (transform.Image{}) {
		t.Fatalf("expected empty primary image, got %+v", got[0].Image)
	}
	if alt := got[0].Sections[0].Images[0].Alt; alt != "Telemetry" {
		t.Fatalf("untitled section should fall back to technology title, got %q", alt)
	}

	bare := TransformTechnologyData([]*Technology{{Slug: "bare"}})
	if bare[0].Sections == nil || len(bare[0].Sections) != 0 {
		t.Fatalf("expected empty non-nil sections, got %#v", bare[0].Sections)
	}
}

func TestTransformTechnologyIsolatesMalformedRows(t *testing.T) {
	rows := []*Technology{
		{Slug: "good", Title: "Good"},
		{Slug: "broken", Sections: []*TechnologySection{{Features: []*TechnologyFeature{{Items: []*TechnologyFeatureItem{nil}}}}}},
		nil,
		{Slug: "also-good"},
	}
	views, report := TransformWithReport(rows, nil)
	if len(views) != 2 || views[0].Slug != "good" || views[1].Slug != "also-good" {
		t.Fatalf("expected only the well formed rows, got %+v", views)
	}
	if report.Total != 4 || report.Kept != 2 || len(report.Dropped) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Dropped[0].Index != 1 || report.Dropped[0].ID != "broken" {
		t.Fatalf("unexpected first drop %+v", report.Dropped[0])
	}
}
