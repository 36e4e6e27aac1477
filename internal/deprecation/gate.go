package deprecation

import (
	"context"
	"fmt"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// DefaultCMSName is the system editors are pointed to.
const DefaultCMSName = "Contentful"

// Gate rejects deprecated operations. Every rejection is recorded, logged at
// warn level and announced to the user before the error is returned.
type Gate struct {
	Registry *Registry
	Notifier interfaces.Notifier
	Logger   interfaces.Logger
	CMSName  string
}

func NewGate(registry *Registry, notifier interfaces.Notifier, logger interfaces.Logger) *Gate {
	return &Gate{Registry: registry, Notifier: notifier, Logger: logger}
}

// Reject records operation on entity and returns its DeprecatedOperationError.
// Failing to record the usage is logged but never changes the result.
func (g *Gate) Reject(ctx context.Context, operation, entity string) error {
	cms := g.cmsName()
	depErr := &DeprecatedOperationError{Operation: operation, Entity: entity, CMS: cms}

	logger := g.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	logger = logging.WithEntity(logger.WithContext(ctx), entity, operation)

	component := "adapters." + entity
	message := operation
	args := []any{"component", component}
	if g.Registry != nil {
		usage, err := g.Registry.Record(ctx, component, message)
		if err != nil {
			logger.Error("deprecation.record_failed", "error", err)
		} else {
			args = append(args, "count", usage.Count, "last_used", usage.LastUsed)
		}
	}
	logger.Warn("deprecation.write_blocked", args...)

	if g.Notifier != nil {
		g.Notifier.Notify(ctx, interfaces.Notification{
			Level:     interfaces.NotificationWarning,
			Title:     "Editing moved to " + cms,
			Message:   fmt.Sprintf("%s of %s records is no longer available here. Please make this change in %s.", operation, entity, cms),
			Component: component,
			Fields: map[string]any{
				logging.FieldEntity:    entity,
				logging.FieldOperation: operation,
			},
		})
	}
	return depErr
}

func (g *Gate) cmsName() string {
	if g.CMSName == "" {
		return DefaultCMSName
	}
	return g.CMSName
}
