// Package deprecationscmd manages deprecation usage telemetry through
// go-command handlers.
package deprecationscmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-vendcms/internal/commands"
	"github.com/goliatone/go-vendcms/internal/deprecation"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

const (
	resetMessageType = "vendcms.deprecations.reset"
	resetOperation   = "deprecations.reset"
)

// ErrRegistryMissing is returned when the handler was built without a registry.
var ErrRegistryMissing = errors.New("deprecations command: registry not configured")

// ResetCommand clears recorded usage. Confirm guards against accidental runs
// from the CLI.
type ResetCommand struct {
	Confirm bool `json:"confirm"`
}

// Type implements command.Message.
func (ResetCommand) Type() string { return resetMessageType }

func (cmd ResetCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Confirm, validation.By(func(value any) error {
			if ok, _ := value.(bool); !ok {
				return validation.NewError("vendcms.deprecations.confirm_required", "reset must be confirmed")
			}
			return nil
		})),
	)
}

var _ command.Commander[ResetCommand] = (*ResetHandler)(nil)

type ResetHandler struct {
	inner *commands.Handler[ResetCommand]
}

func NewResetHandler(registry *deprecation.Registry, logger interfaces.Logger, opts ...commands.HandlerOption[ResetCommand]) *ResetHandler {
	exec := func(ctx context.Context, _ ResetCommand) error {
		if registry == nil {
			return ErrRegistryMissing
		}
		return registry.Reset(ctx)
	}
	base := []commands.HandlerOption[ResetCommand]{
		commands.WithLogger[ResetCommand](logger),
		commands.WithOperation[ResetCommand](resetOperation),
	}
	return &ResetHandler{inner: commands.NewHandler(exec, append(base, opts...)...)}
}

func (h *ResetHandler) Execute(ctx context.Context, msg ResetCommand) error {
	return h.inner.Execute(ctx, msg)
}
