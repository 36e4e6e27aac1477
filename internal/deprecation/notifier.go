package deprecation

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// NoOpNotifier drops notifications.
type NoOpNotifier struct{}

func (NoOpNotifier) Notify(context.Context, interfaces.Notification) {}

// LogNotifier writes notifications to a logger, for hosts without a UI surface.
type LogNotifier struct {
	Logger interfaces.Logger
}

func NewLogNotifier(logger interfaces.Logger) LogNotifier {
	if logger == nil {
		logger = logging.NoOp()
	}
	return LogNotifier{Logger: logger}
}

func (n LogNotifier) Notify(ctx context.Context, notification interfaces.Notification) {
	logger := n.Logger
	if logger == nil {
		return
	}
	logger = logger.WithContext(ctx)
	fields := map[string]any{"title": notification.Title}
	if notification.Component != "" {
		fields["component"] = notification.Component
	}
	maps.Copy(fields, notification.Fields)
	args := logging.Args(fields)

	switch notification.Level {
	case interfaces.NotificationError:
		logger.Error(notification.Message, args...)
	case interfaces.NotificationWarning:
		logger.Warn(notification.Message, args...)
	default:
		logger.Info(notification.Message, args...)
	}
}

// RecordingNotifier keeps notifications in memory so an admin banner or a
// test can read them back.
type RecordingNotifier struct {
	mu            sync.Mutex
	notifications []interfaces.Notification
}

func (n *RecordingNotifier) Notify(_ context.Context, notification interfaces.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}

func (n *RecordingNotifier) Notifications() []interfaces.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.notifications)
}

var (
	_ interfaces.Notifier = NoOpNotifier{}
	_ interfaces.Notifier = LogNotifier{}
	_ interfaces.Notifier = (*RecordingNotifier)(nil)
)
