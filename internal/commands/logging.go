package commands

import (
	"strings"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

const commandModuleRoot = "lingo.commands"

// CommandLogger returns the logger for one command module, namespaced under
// lingo.commands and tagged so executions are attributable to their module.
// Blank modules land in the core namespace.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, commandModuleRoot+"."+name),
		map[string]any{
			"component":      "command",
			"command_module": name,
		},
	)
}
