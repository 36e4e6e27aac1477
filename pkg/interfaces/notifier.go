package interfaces

import "context"

// NotificationLevel mirrors the severities the admin UI knows how to render.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a user-facing message raised by the content layer, for
// example when an editor attempts a write that now belongs to the external CMS.
type Notification struct {
	Level     NotificationLevel
	Title     string
	Message   string
	Component string
	Fields    map[string]any
}

// Notifier delivers notifications to whatever surface the host application
// uses (toast queue, admin banner, log stream).
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}
