package slugs

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// Source is a data handle scoped to visible rows.
type Source[T any] interface {
	// Match returns visible rows satisfying the lookup.
	Match(ctx context.Context, lookup Lookup) ([]T, error)
	// Sample lists up to limit visible rows for diagnostics.
	Sample(ctx context.Context, limit int) ([]T, error)
}

// Request describes what the caller is looking for. ID, when set, is tried
// before the slug pipeline.
type Request struct {
	Slug           string
	ID             uuid.UUID
	ExactMatchOnly bool
}

// Option configures a Resolver.
type Option func(*settings)

type settings struct {
	logger          interfaces.Logger
	strategies      []Strategy
	suffixes        []string
	diagnosticLimit int
	entity          string
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrategies replaces the default strategy list. The first strategy is
// treated as the exact stage.
func WithStrategies(strategies ...Strategy) Option {
	return func(s *settings) {
		s.strategies = append([]Strategy(nil), strategies...)
	}
}

// WithSuffixes sets the suffixes used by the default suffix-variant stage.
func WithSuffixes(suffixes ...string) Option {
	return func(s *settings) {
		s.suffixes = append([]string(nil), suffixes...)
	}
}

// WithDiagnosticLimit caps the diagnostic sample query. Zero disables it.
func WithDiagnosticLimit(limit int) Option {
	return func(s *settings) {
		if limit >= 0 {
			s.diagnosticLimit = limit
		}
	}
}

// WithEntity names the entity in logs and errors.
func WithEntity(entity string) Option {
	return func(s *settings) {
		s.entity = entity
	}
}

// Resolver runs the staged slug search against a Source.
type Resolver[T any] struct {
	source          Source[T]
	strategies      []Strategy
	logger          interfaces.Logger
	entity          string
	diagnosticLimit int
}

// NewResolver builds a resolver over source.
func NewResolver[T any](source Source[T], opts ...Option) *Resolver[T] {
	cfg := settings{
		logger:          logging.NoOp(),
		diagnosticLimit: 10,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.strategies) == 0 {
		cfg.strategies = DefaultStrategies(cfg.suffixes...)
	}
	return &Resolver[T]{
		source:          source,
		strategies:      cfg.strategies,
		logger:          logging.WithEntity(cfg.logger, cfg.entity, "resolve"),
		entity:          cfg.entity,
		diagnosticLimit: cfg.diagnosticLimit,
	}
}

// Resolve returns the rows of the first stage that matches. No match yields
// an empty slice and a nil error. A source error is tolerated in every stage
// except the last one run, which aborts with a *StoreError.
func (r *Resolver[T]) Resolve(ctx context.Context, req Request) ([]T, error) {
	logger := r.logger.WithContext(ctx)

	if req.ID != uuid.Nil {
		rows, err := r.source.Match(ctx, Lookup{Field: FieldID, Match: MatchExact, Value: req.ID.String()})
		switch {
		case err != nil:
			logger.Warn("slugs.resolve.id_failed", "id", req.ID, "error", err)
		case len(rows) > 0:
			logger.Debug("slugs.resolve.id_hit", "id", req.ID, "count", len(rows))
			return rows, nil
		default:
			logger.Debug("slugs.resolve.id_miss", "id", req.ID)
		}
	}

	slug := Normalize(req.Slug)
	if slug == "" {
		return []T{}, nil
	}

	strategies := r.strategies
	if req.ExactMatchOnly && len(strategies) > 1 {
		strategies = strategies[:1]
	}

	for i, strategy := range strategies {
		final := i == len(strategies)-1
		rows, err := r.runStage(ctx, logger, strategy, slug)
		if err != nil {
			if final {
				logger.Error("slugs.resolve.failed", logging.FieldStage, strategy.Name, logging.FieldSlug, slug, "error", err)
				return []T{}, &StoreError{Entity: r.entity, Stage: strategy.Name, Err: err}
			}
			logger.Warn("slugs.resolve.stage_failed", logging.FieldStage, strategy.Name, logging.FieldSlug, slug, "error", err)
		}
		if len(rows) > 0 {
			return rows, nil
		}
		if i == 0 {
			r.diagnose(ctx, logger, slug)
		}
	}

	logger.Info("slugs.resolve.not_found", logging.FieldSlug, slug, "raw", req.Slug)
	return []T{}, nil
}

// runStage tries the lookups of one strategy in order. The first error is
// returned only when no lookup in the stage produced rows.
func (r *Resolver[T]) runStage(ctx context.Context, logger interfaces.Logger, strategy Strategy, slug string) ([]T, error) {
	if strategy.Lookups == nil {
		return nil, nil
	}
	var firstErr error
	for _, lookup := range strategy.Lookups(slug) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := r.source.Match(ctx, lookup)
		logger.Debug("slugs.resolve.stage",
			logging.FieldStage, strategy.Name,
			"field", lookup.Field,
			"match", lookup.Match.String(),
			"value", lookup.Value,
			"count", len(rows),
		)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s %s %q: %w", lookup.Field, lookup.Match, lookup.Value, err)
			}
			continue
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, firstErr
}

func (r *Resolver[T]) diagnose(ctx context.Context, logger interfaces.Logger, slug string) {
	if r.diagnosticLimit == 0 {
		return
	}
	rows, err := r.source.Sample(ctx, r.diagnosticLimit)
	if err != nil {
		logger.Warn("slugs.resolve.diagnostic_failed", logging.FieldSlug, slug, "error", err)
		return
	}
	visible := make([]string, 0, len(rows))
	for _, row := range rows {
		if s, ok := any(row).(Slugged); ok {
			visible = append(visible, s.GetSlug())
		}
	}
	logger.Info("slugs.resolve.diagnostic",
		logging.FieldSlug, slug,
		"visible_count", len(rows),
		"visible_slugs", visible,
	)
}
