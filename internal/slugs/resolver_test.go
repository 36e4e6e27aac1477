package slugs

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type row struct {
	ID      uuid.UUID
	Slug    string
	Visible bool
}

func (r row) GetSlug() string { return r.Slug }

var rowFields = Fields[row]{
	ID:      func(r row) string { return r.ID.String() },
	Slug:    func(r row) string { return r.Slug },
	Visible: func(r row) bool { return r.Visible },
}

func newRows(slugs ...string) []row {
	out := make([]row, 0, len(slugs))
	for _, s := range slugs {
		out = append(out, row{ID: uuid.New(), Slug: s, Visible: true})
	}
	return out
}

func TestResolveExactMatchIgnoresRequestCase(t *testing.T) {
	rows := newRows("snack-machine", "snack-machine-pro")
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "  Snack-Machine "})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 1 || got[0].ID != rows[0].ID {
		t.Fatalf("expected only the exact row, got %+v", got)
	}
}

func TestResolveSuffixVariantBothDirections(t *testing.T) {
	rows := newRows("healthy-vending", "combo")
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "healthy"})
	if err != nil || len(got) != 1 || got[0].Slug != "healthy-vending" {
		t.Fatalf("expected suffix to be appended, got %+v err=%v", got, err)
	}

	got, err = resolver.Resolve(context.Background(), Request{Slug: "combo-vending"})
	if err != nil || len(got) != 1 || got[0].Slug != "combo" {
		t.Fatalf("expected suffix to be stripped, got %+v err=%v", got, err)
	}
}

func TestResolveCaseInsensitiveStage(t *testing.T) {
	rows := newRows("Coffee-Bar")
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "coffee-bar"})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected case-insensitive hit, got %+v err=%v", got, err)
	}
}

func TestResolveContainsIsLastResort(t *testing.T) {
	rows := newRows("smart-fridge-kiosk")
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "fridge"})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected contains hit, got %+v err=%v", got, err)
	}
}

func TestResolveNoMatchReturnsEmpty(t *testing.T) {
	resolver := NewResolver[row](NewMemorySource(rowFields, newRows("snack")...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "laundry"})
	if err != nil {
		t.Fatalf("not found must not error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestResolveBlankSlugReturnsEmpty(t *testing.T) {
	resolver := NewResolver[row](NewMemorySource(rowFields, newRows("snack")...))
	got, err := resolver.Resolve(context.Background(), Request{Slug: " / "})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %+v err=%v", got, err)
	}
}

func TestResolveExactMatchOnlySkipsFuzzyStages(t *testing.T) {
	rows := newRows("Snack-Pro", "snack-vending")
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack", ExactMatchOnly: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no result with ExactMatchOnly, got %+v", got)
	}

	got, _ = resolver.Resolve(context.Background(), Request{Slug: "snack"})
	if len(got) == 0 {
		t.Fatalf("fuzzy stages should match without ExactMatchOnly")
	}
}

func TestResolveIDTakesPrecedence(t *testing.T) {
	rows := newRows("snack", "coffee")
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack", ID: rows[1].ID})
	if err != nil || len(got) != 1 || got[0].Slug != "coffee" {
		t.Fatalf("expected id lookup to win, got %+v err=%v", got, err)
	}

	got, err = resolver.Resolve(context.Background(), Request{Slug: "snack", ID: uuid.New()})
	if err != nil || len(got) != 1 || got[0].Slug != "snack" {
		t.Fatalf("expected slug fallback on id miss, got %+v err=%v", got, err)
	}
}

func TestResolveHidesInvisibleRows(t *testing.T) {
	rows := newRows("snack")
	rows[0].Visible = false
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack"})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected invisible row to be filtered, got %+v err=%v", got, err)
	}
}

type scriptedSource struct {
	rows       []row
	failStages map[MatchKind]error
	failIDs    error
	sampleErr  error
	lookups    []Lookup
	samples    int
}

func (s *scriptedSource) Match(_ context.Context, lookup Lookup) ([]row, error) {
	s.lookups = append(s.lookups, lookup)
	if lookup.Field == FieldID && s.failIDs != nil {
		return nil, s.failIDs
	}
	if err := s.failStages[lookup.Match]; err != nil && lookup.Field == FieldSlug {
		return nil, err
	}
	var out []row
	for _, r := range s.rows {
		value := r.Slug
		if lookup.Field == FieldID {
			value = r.ID.String()
		}
		if Matches(lookup.Match, value, lookup.Value) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *scriptedSource) Sample(context.Context, int) ([]row, error) {
	s.samples++
	return s.rows, s.sampleErr
}

func TestResolveToleratesNonFinalStageErrors(t *testing.T) {
	source := &scriptedSource{
		rows:       newRows("Snack"),
		failStages: map[MatchKind]error{MatchExact: errors.New("timeout")},
	}
	resolver := NewResolver[row](source)

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack"})
	if err != nil {
		t.Fatalf("non-final errors must be swallowed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected case-insensitive stage to match, got %+v", got)
	}
}

func TestResolveFinalStageErrorAborts(t *testing.T) {
	boom := errors.New("connection reset")
	source := &scriptedSource{
		rows:       newRows("coffee"),
		failStages: map[MatchKind]error{MatchContains: boom},
	}
	resolver := NewResolver[row](source, WithEntity("machine"))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack"})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *StoreError, got %T %v", err, err)
	}
	if storeErr.Stage != StageContains || storeErr.Entity != "machine" || !errors.Is(err, boom) {
		t.Fatalf("unexpected store error %+v", storeErr)
	}
}

func TestResolveExactMatchOnlyErrorIsFinal(t *testing.T) {
	source := &scriptedSource{failStages: map[MatchKind]error{MatchExact: errors.New("down")}}
	resolver := NewResolver[row](source)

	_, err := resolver.Resolve(context.Background(), Request{Slug: "snack", ExactMatchOnly: true})
	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Stage != StageExact {
		t.Fatalf("expected exact stage StoreError, got %v", err)
	}
}

func TestResolveIDErrorFallsBackToSlug(t *testing.T) {
	source := &scriptedSource{rows: newRows("snack"), failIDs: errors.New("bad id")}
	resolver := NewResolver[row](source)

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack", ID: uuid.New()})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected slug fallback, got %+v err=%v", got, err)
	}
}

func TestResolveDiagnosticRunsOnceAndNeverAffectsResult(t *testing.T) {
	source := &scriptedSource{rows: newRows("snack-vending"), sampleErr: errors.New("rls denied")}
	resolver := NewResolver[row](source)

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack"})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected suffix hit, got %+v err=%v", got, err)
	}
	if source.samples != 1 {
		t.Fatalf("expected one diagnostic sample, got %d", source.samples)
	}

	source.samples = 0
	if _, err := resolver.Resolve(context.Background(), Request{Slug: "snack-vending"}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if source.samples != 0 {
		t.Fatalf("diagnostic must not run after an exact hit")
	}
}

func TestResolveDiagnosticCanBeDisabled(t *testing.T) {
	source := &scriptedSource{}
	resolver := NewResolver[row](source, WithDiagnosticLimit(0))
	_, _ = resolver.Resolve(context.Background(), Request{Slug: "x"})
	if source.samples != 0 {
		t.Fatalf("expected diagnostics disabled")
	}
}

func TestResolveCustomSuffixes(t *testing.T) {
	source := &scriptedSource{rows: newRows("snack-kiosk")}
	resolver := NewResolver[row](source, WithSuffixes("-kiosk"))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "snack"})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected custom suffix hit, got %+v err=%v", got, err)
	}
	if last := source.lookups[len(source.lookups)-1]; last.Value != "snack-kiosk" {
		t.Fatalf("expected suffix lookup to be last, got %+v", last)
	}
}

func TestMemorySourceRejectsUnknownField(t *testing.T) {
	source := NewMemorySource(rowFields)
	if _, err := source.Match(context.Background(), Lookup{Field: "title"}); !errors.Is(err, ErrUnsupportedField) {
		t.Fatalf("expected ErrUnsupportedField, got %v", err)
	}
}

func TestMemorySourcePutReplacesByID(t *testing.T) {
	rows := newRows("snack")
	source := NewMemorySource(rowFields, rows...)
	updated := rows[0]
	updated.Slug = "snack-v2"
	source.Put(updated)

	if all := source.All(); len(all) != 1 || all[0].Slug != "snack-v2" {
		t.Fatalf("expected replacement, got %+v", all)
	}
}

func TestResolveMixedCaseStoredSlugLosesToSuffixVariant(t *testing.T) {
	rows := newRows("Snack-Box", "snack-box-vending")
	resolver := NewResolver[row](NewMemorySource(rowFields, rows...))

	got, err := resolver.Resolve(context.Background(), Request{Slug: "Snack-Box"})
	if err != nil || len(got) != 1 || got[0].Slug != "snack-box-vending" {
		t.Fatalf("expected the suffix variant stage to answer first, got %+v err=%v", got, err)
	}

	got, err = resolver.Resolve(context.Background(), Request{Slug: "snack-box", ExactMatchOnly: true})
	if err != nil || len(got) != 0 {
		t.Fatalf("exact stage compares stored slugs byte for byte, got %+v err=%v", got, err)
	}
}
