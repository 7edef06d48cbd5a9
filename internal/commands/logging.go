package commands

import (
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

const (
	commandModuleRoot    = "sdui.commands"
	defaultCommandModule = "editor"
)

// CommandLogger returns the logger for the command family module, named
// sdui.commands.<module>. A blank module falls back to editor.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.ToLower(strings.TrimSpace(module))
	if name == "" {
		name = defaultCommandModule
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{"command_module": name})
}

// messageFields builds the per-execution log fields: the go-command message
// type, the operation when set, then any message-specific extras.
func messageFields[T command.Message](msg T, operation string, extra func(T) map[string]any) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if operation != "" {
		fields["operation"] = operation
	}
	if extra != nil {
		for key, value := range extra(msg) {
			fields[key] = value
		}
	}
	return fields
}
