package editorcmd

import (
	"errors"
	"time"

	"github.com/goliatone/go-sdui/internal/commands"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the editor command handlers produced by RegisterEditorCommands.
type HandlerSet struct {
	SelectComponent   *EventHandler[SelectComponentCommand]
	UpdateComponent   *EventHandler[UpdateComponentCommand]
	DeleteComponent   *EventHandler[DeleteComponentCommand]
	AddComponent      *EventHandler[AddComponentCommand]
	ReorderComponents *EventHandler[ReorderComponentsCommand]
	SelectPage        *EventHandler[SelectPageCommand]
	UpdatePage        *EventHandler[UpdatePageCommand]
	AddPage           *EventHandler[AddPageCommand]
	DeletePage        *EventHandler[DeletePageCommand]
	UpdateNavigation  *EventHandler[UpdateNavigationCommand]
	BeginImport       *EventHandler[BeginImportCommand]
	CompleteImport    *EventHandler[CompleteImportCommand]
	CancelImport      *EventHandler[CancelImportCommand]
	UpdateSettings    *EventHandler[UpdateSettingsCommand]
	SelectTab         *EventHandler[SelectTabCommand]
}

// All lists every handler in registration order.
func (s *HandlerSet) All() []any {
	return []any{
		s.SelectComponent, s.UpdateComponent, s.DeleteComponent, s.AddComponent, s.ReorderComponents,
		s.SelectPage, s.UpdatePage, s.AddPage, s.DeletePage, s.UpdateNavigation,
		s.BeginImport, s.CompleteImport, s.CancelImport, s.UpdateSettings, s.SelectTab,
	}
}

// RegisterOption customises RegisterEditorCommands.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	timeout time.Duration
}

// WithCommandTimeout bounds every editor command. Zero keeps the handler default.
func WithCommandTimeout(timeout time.Duration) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.timeout = timeout
	}
}

func build[T Command](session Dispatcher, logger interfaces.Logger, cfg registerConfig) *EventHandler[T] {
	var opts []commands.HandlerOption[T]
	if cfg.timeout > 0 {
		opts = append(opts, commands.WithTimeout[T](cfg.timeout))
	}
	return NewEventHandler[T](session, logger, opts...)
}

// RegisterEditorCommands builds the editor command handlers and registers them with the provided
// registry. The HandlerSet is returned so callers can wire additional integrations (dispatcher).
func RegisterEditorCommands(reg CommandRegistry, session Dispatcher, provider interfaces.LoggerProvider, opts ...RegisterOption) (*HandlerSet, error) {
	if session == nil {
		return nil, errors.New("editor command registration: session is nil")
	}
	logger := commands.CommandLogger(provider, "editor")
	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	set := &HandlerSet{
		SelectComponent:   build[SelectComponentCommand](session, logger, cfg),
		UpdateComponent:   build[UpdateComponentCommand](session, logger, cfg),
		DeleteComponent:   build[DeleteComponentCommand](session, logger, cfg),
		AddComponent:      build[AddComponentCommand](session, logger, cfg),
		ReorderComponents: build[ReorderComponentsCommand](session, logger, cfg),
		SelectPage:        build[SelectPageCommand](session, logger, cfg),
		UpdatePage:        build[UpdatePageCommand](session, logger, cfg),
		AddPage:           build[AddPageCommand](session, logger, cfg),
		DeletePage:        build[DeletePageCommand](session, logger, cfg),
		UpdateNavigation:  build[UpdateNavigationCommand](session, logger, cfg),
		BeginImport:       build[BeginImportCommand](session, logger, cfg),
		CompleteImport:    build[CompleteImportCommand](session, logger, cfg),
		CancelImport:      build[CancelImportCommand](session, logger, cfg),
		UpdateSettings:    build[UpdateSettingsCommand](session, logger, cfg),
		SelectTab:         build[SelectTabCommand](session, logger, cfg),
	}

	if reg != nil {
		for _, handler := range set.All() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
