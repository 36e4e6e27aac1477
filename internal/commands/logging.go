package commands

import (
	"strings"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// CommandLogger names a logger after the command group, e.g.
// "vendcms.commands.sync".
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, logging.CommandsModule+"."+group),
		map[string]any{"command_group": group},
	)
}
