package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// TelemetryStatus is the result category of one command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
	// TelemetryStatusRejected marks a run stopped by a deprecated write.
	TelemetryStatusRejected TelemetryStatus = "rejected"
)

// TelemetryInfo is handed to the telemetry callback after every run that
// got past validation.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
}

type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs one entry per run: info on success, warn when a
// deprecated write was rejected, error otherwise.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields).WithContext(ctx)
		msg := "command.execute." + string(info.Status)
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		if info.Error != nil {
			args = append(args, "error", info.Error)
		}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info(msg, args...)
		case TelemetryStatusRejected:
			entry.Warn(msg, args...)
		default:
			entry.Error(msg, args...)
		}
	}
}
