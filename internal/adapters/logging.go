package adapters

import (
	"context"
	"time"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// WithLogging logs every call on adapter with its arguments and outcome. It
// never changes results.
func WithLogging[T any](adapter ContentAdapter[T], entity string, logger interfaces.Logger) ContentAdapter[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &loggingAdapter[T]{next: adapter, entity: entity, logger: logger}
}

type loggingAdapter[T any] struct {
	next   ContentAdapter[T]
	entity string
	logger interfaces.Logger
}

func (a *loggingAdapter[T]) log(ctx context.Context, op string, started time.Time, err error, args ...any) {
	entry := logging.WithEntity(a.logger.WithContext(ctx), a.entity, op)
	args = append(args, "duration_ms", time.Since(started).Milliseconds())
	if err != nil {
		entry.Debug("adapters.call", append(args, "error", err)...)
		return
	}
	entry.Debug("adapters.call", args...)
}

func (a *loggingAdapter[T]) FetchAll(ctx context.Context) ([]T, error) {
	started := time.Now()
	out, err := a.next.FetchAll(ctx)
	a.log(ctx, OpFetchAll, started, err, "count", len(out))
	return out, err
}

func (a *loggingAdapter[T]) FetchBySlug(ctx context.Context, slug string) (*T, error) {
	started := time.Now()
	out, err := a.next.FetchBySlug(ctx, slug)
	a.log(ctx, OpFetchBySlug, started, err, "slug", slug, "found", out != nil)
	return out, err
}

func (a *loggingAdapter[T]) FetchByID(ctx context.Context, id string) (*T, error) {
	started := time.Now()
	out, err := a.next.FetchByID(ctx, id)
	a.log(ctx, OpFetchByID, started, err, "id", id, "found", out != nil)
	return out, err
}

func (a *loggingAdapter[T]) Create(ctx context.Context, record T) (*T, error) {
	started := time.Now()
	out, err := a.next.Create(ctx, record)
	a.log(ctx, OpCreate, started, err, "record", record)
	return out, err
}

func (a *loggingAdapter[T]) Update(ctx context.Context, id string, record T) (*T, error) {
	started := time.Now()
	out, err := a.next.Update(ctx, id, record)
	a.log(ctx, OpUpdate, started, err, "id", id, "record", record)
	return out, err
}

func (a *loggingAdapter[T]) Delete(ctx context.Context, id string) error {
	started := time.Now()
	err := a.next.Delete(ctx, id)
	a.log(ctx, OpDelete, started, err, "id", id)
	return err
}

func (a *loggingAdapter[T]) Clone(ctx context.Context, id string) (*T, error) {
	started := time.Now()
	out, err := a.next.Clone(ctx, id)
	a.log(ctx, OpClone, started, err, "id", id)
	return out, err
}
