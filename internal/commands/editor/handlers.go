package editorcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sdui/internal/commands"
	"github.com/goliatone/go-sdui/internal/editor"
	"github.com/goliatone/go-sdui/internal/mutation"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

const (
	textCodeNotFound         = "SDUI_EDITOR_NOT_FOUND"
	textCodeImportInProgress = "SDUI_EDITOR_IMPORT_IN_PROGRESS"
	textCodeRejected         = "SDUI_EDITOR_EVENT_REJECTED"
)

// Dispatcher applies editor events. *editor.Session satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event editor.Event) (editor.State, error)
}

var _ Dispatcher = (*editor.Session)(nil)

// EventHandler executes an editor command against a session.
type EventHandler[T Command] struct {
	inner *commands.Handler[T]
}

var _ command.Commander[AddComponentCommand] = (*EventHandler[AddComponentCommand])(nil)

// NewEventHandler builds the handler for commands of type T.
func NewEventHandler[T Command](session Dispatcher, logger interfaces.Logger, opts ...commands.HandlerOption[T]) *EventHandler[T] {
	if session == nil {
		panic("editor command: session cannot be nil")
	}
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg T) error {
		state, err := session.Dispatch(ctx, msg.Event())
		if err != nil {
			return categorize(err)
		}
		commands.ReportDocument(ctx, commands.DocumentRef{
			SchemaID: state.Schema.ID,
			PageID:   state.CurrentPageID,
			Revision: state.Schema.Revision(),
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[T]{
		commands.WithLogger[T](baseLogger),
		commands.WithTelemetry(commands.DefaultTelemetry[T](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	return &EventHandler[T]{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[T].
func (h *EventHandler[T]) Execute(ctx context.Context, msg T) error {
	return h.inner.Execute(ctx, msg)
}

func categorize(err error) error {
	var importErr *mutation.ImportError
	switch {
	case errors.As(err, &importErr):
		return importErr.Categorized()
	case errors.Is(err, editor.ErrUnknownPage), errors.Is(err, editor.ErrUnknownComponent):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "editor target not found").
			WithTextCode(textCodeNotFound)
	case errors.Is(err, editor.ErrImportInProgress), errors.Is(err, editor.ErrNotImporting):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "editor import phase mismatch").
			WithTextCode(textCodeImportInProgress)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "editor event rejected").
			WithTextCode(textCodeRejected)
	}
}
