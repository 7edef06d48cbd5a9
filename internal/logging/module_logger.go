package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-sdui/pkg/interfaces"
)

const (
	rootModule     = "sdui"
	renderModule   = "sdui.render"
	actionsModule  = "sdui.actions"
	mutationModule = "sdui.mutation"
	editorModule   = "sdui.editor"
	previewModule  = "sdui.preview"
	themesModule   = "sdui.themes"
)

const (
	fieldSchemaID = "schema_id"
	fieldPageID   = "page_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RenderLogger returns the logger namespace reserved for the render engine.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// ActionsLogger returns the logger namespace reserved for action execution.
func ActionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, actionsModule)
}

// MutationLogger returns the logger namespace reserved for schema imports and edits.
func MutationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mutationModule)
}

// EditorLogger returns the logger namespace reserved for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// PreviewLogger returns the logger namespace reserved for the preview host.
func PreviewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, previewModule)
}

// ThemesLogger returns the logger namespace reserved for theme resolution.
func ThemesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, themesModule)
}

// WithFields attaches structured fields to a logger. Callers can pass nil or
// an empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return logger.WithFields(copied)
}

// WithDocument enriches the logger with the schema and page identifiers that
// most render and navigation entries carry. Empty values are ignored.
func WithDocument(logger interfaces.Logger, schemaID, pageID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(schemaID); trimmed != "" {
		fields[fieldSchemaID] = trimmed
	}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	return WithFields(logger, fields)
}

// Ensure returns logger, or a no-op logger when nil.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
