package synccmd

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-vendcms/internal/migration"
)

const syncMessageType = "vendcms.sync.run"

// SyncCommand moves content between Contentful and the relational store.
type SyncCommand struct {
	// Direction is "pull" (Contentful to database) or "push".
	Direction migration.Direction `json:"direction"`
	// Entities limits the run. Empty runs every registered entity.
	Entities []string `json:"entities,omitempty"`
	DryRun   bool     `json:"dry_run,omitempty"`
	// Publish publishes pushed entries. Ignored for pulls.
	Publish bool `json:"publish,omitempty"`
}

// Type implements command.Message.
func (SyncCommand) Type() string { return syncMessageType }

// Validate checks the direction and entity names.
func (cmd SyncCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Direction, validation.Required, validation.By(func(value any) error {
			dir, _ := value.(migration.Direction)
			if dir != migration.DirectionPull && dir != migration.DirectionPush {
				return validation.NewError("vendcms.sync.direction_invalid", "direction must be pull or push")
			}
			return nil
		})),
		validation.Field(&cmd.Entities, validation.By(func(value any) error {
			names, _ := value.([]string)
			if slices.ContainsFunc(names, func(name string) bool { return strings.TrimSpace(name) == "" }) {
				return validation.NewError("vendcms.sync.entity_blank", "entity names cannot be blank")
			}
			return nil
		})),
	)
}

func (cmd SyncCommand) String() string {
	target := "all"
	if len(cmd.Entities) > 0 {
		target = strings.Join(cmd.Entities, ",")
	}
	return fmt.Sprintf("%s %s", cmd.Direction, target)
}
