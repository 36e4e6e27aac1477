package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-vendcms/internal/deprecation"
	"github.com/goliatone/go-vendcms/pkg/testsupport"
)

type testMessage struct{}

func (testMessage) Type() string { return "vendcms.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "vendcms.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerReportsTelemetry(t *testing.T) {
	var got []TelemetryInfo
	record := func(_ context.Context, _ testMessage, info TelemetryInfo) {
		got = append(got, info)
	}
	ok := NewHandler[testMessage](func(context.Context, testMessage) error { return nil },
		WithOperation[testMessage]("sync.pull"), WithTelemetry[testMessage](record))
	failing := NewHandler[testMessage](func(context.Context, testMessage) error { return errors.New("boom") },
		WithTelemetry[testMessage](record))

	_ = ok.Execute(context.Background(), testMessage{})
	_ = failing.Execute(context.Background(), testMessage{})

	if len(got) != 2 {
		t.Fatalf("expected two telemetry calls, got %d", len(got))
	}
	if got[0].Status != TelemetryStatusSuccess || got[0].Operation != "sync.pull" || got[0].Command != "vendcms.test.message" {
		t.Fatalf("unexpected success telemetry %+v", got[0])
	}
	if got[1].Status != TelemetryStatusFailed || got[1].Error == nil {
		t.Fatalf("unexpected failure telemetry %+v", got[1])
	}
}

func TestDefaultTelemetryLogsOutcome(t *testing.T) {
	logger := testsupport.NewRecordingLogger()
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return errors.New("boom") },
		WithLogger[testMessage](logger))
	_ = h.Execute(context.Background(), testMessage{})

	entries := logger.Find("command.execute.failed")
	if len(entries) != 1 {
		t.Fatalf("expected failure log, got %+v", logger.Entries())
	}
	if entries[0].Fields["command"] != "vendcms.test.message" {
		t.Fatalf("expected command field, got %+v", entries[0].Fields)
	}
}

func TestHandlerTagsDeprecatedWrites(t *testing.T) {
	logger := testsupport.NewRecordingLogger()
	blocked := &deprecation.DeprecatedOperationError{Operation: "create", Entity: "machine"}
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return blocked },
		WithLogger[testMessage](logger))

	err := h.Execute(context.Background(), testMessage{})
	if !errors.Is(err, deprecation.ErrDeprecatedOperation) {
		t.Fatalf("expected deprecated error to stay reachable, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if len(logger.Find("command.execute.rejected")) != 1 {
		t.Fatalf("expected a rejected entry, got %+v", logger.Entries())
	}
}
