// Package migration moves content between Contentful and the relational
// store. Items are processed one at a time and a failing item never aborts
// the batch.
package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-vendcms/internal/catalog"
	"github.com/goliatone/go-vendcms/internal/contentful"
	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

var (
	ErrNoRemote = errors.New("migration: contentful source not configured")
	ErrNoLocal  = errors.New("migration: local store not configured")
)

// Remote lists every mapped Contentful entry for one content type.
type Remote[T any] interface {
	Entries(ctx context.Context) ([]T, []error, error)
}

// Local is a relational store that can be listed and written.
type Local[T any] interface {
	List(ctx context.Context) ([]T, error)
	catalog.Writer[T]
}

// Management is the subset of the Contentful client used by Push.
type Management interface {
	GetEntries(ctx context.Context, q contentful.EntriesQuery) (*contentful.EntryCollection, error)
	GetEntry(ctx context.Context, id string) (*contentful.ManagementEntry, error)
	UpsertEntry(ctx context.Context, contentType, id string, version int, fields map[string]any) (*contentful.ManagementEntry, error)
	PublishEntry(ctx context.Context, id string, version int) error
}

var _ Management = (*contentful.Client)(nil)

// Binding ties one entity to its Contentful content type and stores.
type Binding[T catalog.Entity] struct {
	Entity      string
	ContentType string
	Remote      Remote[T]
	Local       Local[T]
	// Fields builds the management payload for Push.
	Fields func(T) map[string]any
}

// Options tune a sync run.
type Options struct {
	DryRun bool
	// Publish publishes pushed entries after saving them.
	Publish bool
}

// Syncer runs pull and push for one binding.
type Syncer[T catalog.Entity] struct {
	binding Binding[T]
	client  Management
	logger  interfaces.Logger
}

func NewSyncer[T catalog.Entity](binding Binding[T], client Management, logger interfaces.Logger) *Syncer[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Syncer[T]{
		binding: binding,
		client:  client,
		logger:  logging.WithEntity(logger, binding.Entity, ""),
	}
}

func (s *Syncer[T]) Entity() string { return s.binding.Entity }

// Pull saves every Contentful entry into the local store, hidden entries
// included. Entries that fail to map are reported as failures.
func (s *Syncer[T]) Pull(ctx context.Context, opts Options) (Report, error) {
	report := Report{Entity: s.binding.Entity, Direction: DirectionPull}
	if s.binding.Remote == nil {
		return report, ErrNoRemote
	}
	if s.binding.Local == nil {
		return report, ErrNoLocal
	}

	records, failures, err := s.binding.Remote.Entries(ctx)
	if err != nil {
		return report, fmt.Errorf("migration: list %s entries: %w", s.binding.Entity, err)
	}
	for _, failure := range failures {
		s.logger.Warn("migration.pull.unmapped", "error", failure)
		report.add(Outcome{Action: ActionFailed, Err: failure})
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome := Outcome{Slug: record.GetSlug(), EntryID: record.GetID().String(), Action: ActionSaved}
		if opts.DryRun {
			outcome.Action = ActionPlanned
		} else if _, err := s.binding.Local.Save(ctx, record); err != nil {
			outcome.Action = ActionFailed
			outcome.Err = err
			s.logger.Error("migration.pull.failed", "slug", outcome.Slug, "error", err)
		}
		report.add(outcome)
	}
	s.logger.Info("migration.pull.done", "saved", report.Count(ActionSaved), "failed", report.Count(ActionFailed))
	return report, nil
}

// Push writes every local record to Contentful. Records that already exist
// remotely, found by slug, are updated in place; the rest are created with
// the row UUID as entry id.
func (s *Syncer[T]) Push(ctx context.Context, opts Options) (Report, error) {
	report := Report{Entity: s.binding.Entity, Direction: DirectionPush}
	if s.client == nil || s.binding.Fields == nil {
		return report, ErrNoRemote
	}
	if s.binding.Local == nil {
		return report, ErrNoLocal
	}

	records, err := s.binding.Local.List(ctx)
	if err != nil {
		return report, fmt.Errorf("migration: list %s rows: %w", s.binding.Entity, err)
	}
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome := s.pushOne(ctx, record, opts)
		if outcome.Err != nil {
			s.logger.Error("migration.push.failed", "slug", outcome.Slug, "entry_id", outcome.EntryID, "error", outcome.Err)
		}
		report.add(outcome)
	}
	s.logger.Info("migration.push.done",
		"created", report.Count(ActionCreated),
		"updated", report.Count(ActionUpdated),
		"failed", report.Count(ActionFailed),
	)
	return report, nil
}

func (s *Syncer[T]) pushOne(ctx context.Context, record T, opts Options) Outcome {
	outcome := Outcome{Slug: record.GetSlug()}
	id, version, err := s.remoteVersion(ctx, record)
	outcome.EntryID = id
	if err != nil {
		outcome.Action, outcome.Err = ActionFailed, err
		return outcome
	}
	outcome.Action = ActionUpdated
	if version == 0 {
		outcome.Action = ActionCreated
	}
	if opts.DryRun {
		outcome.Action = ActionPlanned
		return outcome
	}

	saved, err := s.client.UpsertEntry(ctx, s.binding.ContentType, id, version, s.binding.Fields(record))
	if err != nil {
		outcome.Action, outcome.Err = ActionFailed, err
		return outcome
	}
	if opts.Publish {
		if err := s.client.PublishEntry(ctx, id, saved.Sys.Version); err != nil {
			outcome.Action, outcome.Err = ActionFailed, fmt.Errorf("publish: %w", err)
		}
	}
	return outcome
}

// remoteVersion finds the entry id for record and its current version. A zero
// version means the entry does not exist yet.
func (s *Syncer[T]) remoteVersion(ctx context.Context, record T) (string, int, error) {
	id := record.GetID().String()
	existing, err := s.client.GetEntries(ctx, contentful.EntriesQuery{
		ContentType: s.binding.ContentType,
		Fields:      map[string]string{"slug": record.GetSlug()},
		Limit:       1,
	})
	if err != nil {
		return id, 0, fmt.Errorf("lookup: %w", err)
	}
	if len(existing.Items) > 0 {
		id = existing.Items[0].Sys.ID
	}

	entry, err := s.client.GetEntry(ctx, id)
	if contentful.IsNotFound(err) {
		return id, 0, nil
	}
	if err != nil {
		return id, 0, fmt.Errorf("load entry: %w", err)
	}
	return id, entry.Sys.Version, nil
}

// Job is a type erased Syncer so callers can run every entity in one pass.
type Job interface {
	Entity() string
	Pull(ctx context.Context, opts Options) (Report, error)
	Push(ctx context.Context, opts Options) (Report, error)
}

// Run executes direction for each job in order. A job level error stops the
// run; item failures stay inside the returned reports.
func Run(ctx context.Context, jobs []Job, direction Direction, opts Options) ([]Report, error) {
	reports := make([]Report, 0, len(jobs))
	for _, job := range jobs {
		var (
			report Report
			err    error
		)
		switch direction {
		case DirectionPull:
			report, err = job.Pull(ctx, opts)
		case DirectionPush:
			report, err = job.Push(ctx, opts)
		default:
			return reports, fmt.Errorf("migration: unknown direction %q", direction)
		}
		reports = append(reports, report)
		if err != nil {
			return reports, fmt.Errorf("migration: %s %s: %w", direction, job.Entity(), err)
		}
	}
	return reports, nil
}
