// Package synccmd exposes content sync runs as go-command handlers.
package synccmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-vendcms/internal/commands"
	"github.com/goliatone/go-vendcms/internal/migration"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

const syncOperation = "sync.run"

var (
	// ErrUnknownEntity is returned when a command names an entity without a
	// registered sync job.
	ErrUnknownEntity = errors.New("sync command: unknown entity")
	// ErrItemsFailed is returned when the run finished but some items failed.
	ErrItemsFailed = errors.New("sync command: some items failed")
)

var _ command.Commander[SyncCommand] = (*Handler)(nil)

// Handler runs migration jobs. Reports of the last run are passed to the
// OnReport callback.
type Handler struct {
	inner    *commands.Handler[SyncCommand]
	jobs     []migration.Job
	onReport func([]migration.Report)
}

// NewHandler binds jobs. onReport may be nil.
func NewHandler(jobs []migration.Job, logger interfaces.Logger, onReport func([]migration.Report), opts ...commands.HandlerOption[SyncCommand]) *Handler {
	h := &Handler{jobs: jobs, onReport: onReport}
	base := []commands.HandlerOption[SyncCommand]{
		commands.WithLogger[SyncCommand](logger),
		commands.WithOperation[SyncCommand](syncOperation),
		commands.WithTimeout[SyncCommand](0),
	}
	h.inner = commands.NewHandler(h.run, append(base, opts...)...)
	return h
}

// Execute satisfies command.Commander.
func (h *Handler) Execute(ctx context.Context, msg SyncCommand) error {
	return h.inner.Execute(ctx, msg)
}

func (h *Handler) run(ctx context.Context, msg SyncCommand) error {
	jobs, err := h.selectJobs(msg.Entities)
	if err != nil {
		return err
	}
	reports, err := migration.Run(ctx, jobs, msg.Direction, migration.Options{
		DryRun:  msg.DryRun,
		Publish: msg.Publish,
	})
	if h.onReport != nil {
		h.onReport(reports)
	}
	if err != nil {
		return err
	}
	var failed []error
	for _, report := range reports {
		if reportErr := report.Err(); reportErr != nil {
			failed = append(failed, reportErr)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: %w", ErrItemsFailed, errors.Join(failed...))
	}
	return nil
}

func (h *Handler) selectJobs(names []string) ([]migration.Job, error) {
	if len(names) == 0 {
		return h.jobs, nil
	}
	byName := make(map[string]migration.Job, len(h.jobs))
	for _, job := range h.jobs {
		byName[job.Entity()] = job
	}
	out := make([]migration.Job, 0, len(names))
	for _, name := range names {
		job, ok := byName[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
		}
		out = append(out, job)
	}
	return out, nil
}
