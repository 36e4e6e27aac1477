package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-vendcms/internal/deprecation"
)

// Text codes attached to command failures.
const (
	CodeInvalid  = "VENDCMS_COMMAND_INVALID"
	CodeCanceled = "VENDCMS_COMMAND_CANCELED"
	CodeTimeout  = "VENDCMS_COMMAND_TIMEOUT"
	CodeFailed   = "VENDCMS_COMMAND_FAILED"
)

func invalid(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message invalid").
		WithTextCode(CodeInvalid)
}

// outcome classifies a run error into the telemetry status and the error
// returned to the dispatcher. Errors that already carry a category pass
// through unchanged.
func outcome(err error) (TelemetryStatus, error) {
	if err == nil {
		return TelemetryStatusSuccess, nil
	}
	var blocked *deprecation.DeprecatedOperationError
	switch {
	case errors.As(err, &blocked):
		return TelemetryStatusRejected, tag(err, blocked.Error(), deprecation.TextCode)
	case errors.Is(err, context.Canceled):
		return TelemetryStatusContextError, tag(err, "command cancelled", CodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return TelemetryStatusContextError, tag(err, "command deadline exceeded", CodeTimeout)
	default:
		return TelemetryStatusFailed, tag(err, "command failed", CodeFailed)
	}
}

func tag(err error, msg, code string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}
