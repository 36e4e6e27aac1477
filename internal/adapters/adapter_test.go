package adapters_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-vendcms/internal/adapters"
	"github.com/goliatone/go-vendcms/internal/deprecation"
	"github.com/goliatone/go-vendcms/internal/machines"
	"github.com/goliatone/go-vendcms/pkg/testsupport"
)

type record struct {
	Slug string
}

// legacyStore exposes the old method names plus writes that must never run.
type legacyStore struct {
	rows   []record
	writes int
}

func (s *legacyStore) GetAll(context.Context) ([]record, error) {
	return s.rows, nil
}

func (s *legacyStore) GetBySlug(_ context.Context, slug string) (*record, error) {
	for i := range s.rows {
		if s.rows[i].Slug == slug {
			return &s.rows[i], nil
		}
	}
	return nil, nil
}

func (s *legacyStore) Create(_ context.Context, r record) (*record, error) {
	s.writes++
	s.rows = append(s.rows, r)
	return &r, nil
}

func TestNormalizeMapsLegacyGetters(t *testing.T) {
	ctx := context.Background()
	reader := adapters.Normalize[record](&legacyStore{rows: []record{{Slug: "a"}, {Slug: "b"}}})

	all, err := reader.FetchAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 rows, got %v err=%v", all, err)
	}
	one, err := reader.FetchBySlug(ctx, "b")
	if err != nil || one == nil || one.Slug != "b" {
		t.Fatalf("expected slug b, got %v err=%v", one, err)
	}
	byID, err := reader.FetchByID(ctx, "whatever")
	if err != nil || byID != nil {
		t.Fatalf("missing capability should answer nil, got %v err=%v", byID, err)
	}
}

func TestNormalizeDefaultsWhenNothingIsImplemented(t *testing.T) {
	ctx := context.Background()
	reader := adapters.Normalize[record](struct{}{})

	all, err := reader.FetchAll(ctx)
	if err != nil || all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v err=%v", all, err)
	}
	if got, err := reader.FetchBySlug(ctx, "x"); got != nil || err != nil {
		t.Fatalf("expected nil, got %v err=%v", got, err)
	}

	reader = adapters.Normalize[record](nil)
	if all, _ := reader.FetchAll(ctx); all == nil {
		t.Fatalf("nil source must still answer with an empty slice")
	}
}

func TestNormalizePassesThroughReaders(t *testing.T) {
	svc := machines.NewService(machines.NewMemoryRepository(&machines.Machine{Slug: "snack-vending", Title: "Snack", Visible: true}))
	reader := adapters.Normalize[machines.MachineView](svc)

	view, err := reader.FetchBySlug(context.Background(), "snack")
	if err != nil || view == nil || view.Slug != "snack-vending" {
		t.Fatalf("expected the service to resolve through suffix variants, got %v err=%v", view, err)
	}
}

func TestReadOnlyRejectsWritesWithoutReachingTheStore(t *testing.T) {
	ctx := context.Background()
	store := &legacyStore{}
	registry := deprecation.NewRegistry()
	notifier := &deprecation.RecordingNotifier{}
	logger := testsupport.NewRecordingLogger()
	adapter := adapters.ReadOnly[record]("machine", store, deprecation.NewGate(registry, notifier, logger))

	calls := []struct {
		op   string
		call func() error
	}{
		{adapters.OpCreate, func() error { _, err := adapter.Create(ctx, record{Slug: "new"}); return err }},
		{adapters.OpUpdate, func() error { _, err := adapter.Update(ctx, "1", record{}); return err }},
		{adapters.OpDelete, func() error { return adapter.Delete(ctx, "1") }},
		{adapters.OpClone, func() error { _, err := adapter.Clone(ctx, "1"); return err }},
	}
	for _, tc := range calls {
		err := tc.call()
		if !errors.Is(err, deprecation.ErrDeprecatedOperation) {
			t.Fatalf("%s: expected deprecated error, got %v", tc.op, err)
		}
		if !strings.Contains(err.Error(), tc.op) || !strings.Contains(err.Error(), "machine") {
			t.Fatalf("%s: error should name operation and entity: %q", tc.op, err.Error())
		}
	}

	if store.writes != 0 || len(store.rows) != 0 {
		t.Fatalf("writes reached the store: %d", store.writes)
	}
	if len(notifier.Notifications()) != 4 {
		t.Fatalf("expected one notification per write, got %d", len(notifier.Notifications()))
	}
	if len(logger.Find("deprecation.write_blocked")) != 4 {
		t.Fatalf("expected a warning per write")
	}

	if _, err := adapter.Create(ctx, record{}); err == nil {
		t.Fatalf("expected second create to fail")
	}
	usage, ok, err := registry.Usage(ctx, "adapters.machine", adapters.OpCreate)
	if err != nil || !ok || usage.Count != 2 {
		t.Fatalf("expected create count 2, got %+v ok=%v err=%v", usage, ok, err)
	}
}

func TestReadOnlyKeepsReads(t *testing.T) {
	adapter := adapters.ReadOnly[record]("machine", &legacyStore{rows: []record{{Slug: "a"}}}, nil)
	all, err := adapter.FetchAll(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("expected reads to pass through, got %v err=%v", all, err)
	}
	if err := adapter.Delete(context.Background(), "a"); !deprecation.IsDeprecated(err) {
		t.Fatalf("expected delete to be rejected without a gate configured")
	}
}

func TestWithLoggingDelegates(t *testing.T) {
	ctx := context.Background()
	logger := testsupport.NewRecordingLogger()
	inner := adapters.ReadOnly[record]("product_type", &legacyStore{rows: []record{{Slug: "a"}}}, nil)
	adapter := adapters.WithLogging(inner, "product_type", logger)

	one, err := adapter.FetchBySlug(ctx, "a")
	if err != nil || one == nil {
		t.Fatalf("expected delegated read, got %v err=%v", one, err)
	}
	if _, err := adapter.Clone(ctx, "a"); !deprecation.IsDeprecated(err) {
		t.Fatalf("expected wrapped error to be preserved, got %v", err)
	}

	entries := logger.Find("adapters.call")
	if len(entries) != 2 {
		t.Fatalf("expected two call entries, got %+v", entries)
	}
	if slug, _ := entries[0].Arg("slug"); slug != "a" {
		t.Fatalf("expected slug arg, got %v", slug)
	}
	if entries[1].Fields["operation"] != adapters.OpClone {
		t.Fatalf("expected clone operation field, got %+v", entries[1].Fields)
	}
	if _, ok := entries[1].Arg("error"); !ok {
		t.Fatalf("expected error arg on failed call")
	}
}
