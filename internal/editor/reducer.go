package editor

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sdui/internal/mutation"
)

var (
	ErrImportInProgress = errors.New("editor: import in progress")
	ErrNotImporting     = errors.New("editor: no import in progress")
	ErrUnknownPage      = errors.New("editor: unknown page")
	ErrUnknownComponent = errors.New("editor: unknown component")
	ErrUnknownTab       = errors.New("editor: unknown tab")
	ErrUnknownEvent     = errors.New("editor: unknown event")
)

// Reducer applies events to states using a mutation model.
type Reducer struct {
	model *mutation.Model
}

// NewReducer returns a Reducer. A nil model uses mutation.New().
func NewReducer(model *mutation.Model) *Reducer {
	if model == nil {
		model = mutation.New()
	}
	return &Reducer{model: model}
}

var defaultReducer = NewReducer(nil)

// Reduce applies event with the default reducer.
func Reduce(state State, event Event) (State, error) {
	return defaultReducer.Reduce(state, event)
}

// Reduce returns the state after event. On error the returned state is the
// input state, except for a failed CompleteImport which returns to Idle with
// the previous document.
func (r *Reducer) Reduce(state State, event Event) (State, error) {
	if state.Importing() {
		switch event.(type) {
		case CompleteImport, CancelImport:
		default:
			return state, fmt.Errorf("%w: %s", ErrImportInProgress, eventName(event))
		}
	}

	next, err := r.apply(state, event)
	if err != nil {
		if _, ok := event.(CompleteImport); ok && state.Importing() {
			state.Phase = PhaseIdle
		}
		return state, err
	}
	if !next.Importing() {
		next = followNavigation(next)
	}
	return next, nil
}

func (r *Reducer) apply(state State, event Event) (State, error) {
	switch e := event.(type) {
	case SelectComponent:
		if e.ID != "" {
			if _, _, ok := state.Schema.FindComponent(e.ID); !ok {
				return state, fmt.Errorf("%w: %q", ErrUnknownComponent, e.ID)
			}
		}
		state.SelectedComponentID = e.ID
		return state, nil

	case UpdateComponent:
		if _, _, ok := state.Schema.FindComponent(e.Component.ID); !ok {
			return state, fmt.Errorf("%w: %q", ErrUnknownComponent, e.Component.ID)
		}
		state.Schema = r.model.UpdateComponent(state.Schema, e.Component)
		state.SelectedComponentID = e.Component.ID
		return state, nil

	case DeleteComponent:
		state.Schema = r.model.DeleteComponent(state.Schema, e.ID)
		if state.SelectedComponentID == e.ID {
			state.SelectedComponentID = ""
		}
		return state, nil

	case AddComponent:
		doc, id := r.model.AddComponent(state.Schema, state.CurrentPageID, e.Type)
		if id == "" {
			return state, fmt.Errorf("%w: %q", ErrUnknownPage, state.CurrentPageID)
		}
		state.Schema = doc
		return state, nil

	case ReorderComponents:
		if e.PageID == "" {
			state.Schema = r.model.ReorderComponents(state.Schema, e.Components)
			return state, nil
		}
		if !state.Schema.HasPage(e.PageID) {
			return state, fmt.Errorf("%w: %q", ErrUnknownPage, e.PageID)
		}
		state.Schema = r.model.ReorderPageComponents(state.Schema, e.PageID, e.Components)
		return state, nil

	case SelectPage:
		if !state.Schema.HasPage(e.ID) {
			return state, fmt.Errorf("%w: %q", ErrUnknownPage, e.ID)
		}
		state.CurrentPageID = e.ID
		return state, nil

	case UpdatePage:
		if !state.Schema.HasPage(e.Page.ID) {
			return state, fmt.Errorf("%w: %q", ErrUnknownPage, e.Page.ID)
		}
		state.Schema = r.model.UpdatePage(state.Schema, e.Page)
		return state, nil

	case AddPage:
		doc, id := r.model.AddPage(state.Schema)
		state.Schema = doc
		state.CurrentPageID = id
		return state, nil

	case DeletePage:
		if !state.Schema.HasPage(e.ID) {
			return state, fmt.Errorf("%w: %q", ErrUnknownPage, e.ID)
		}
		state.Schema = r.model.DeletePage(state.Schema, e.ID)
		if state.CurrentPageID == e.ID || !state.Schema.HasPage(state.CurrentPageID) {
			state.CurrentPageID = state.Schema.Pages[0].ID
		}
		if _, ok := state.SelectedComponent(); !ok {
			state.SelectedComponentID = ""
		}
		return state, nil

	case UpdateNavigation:
		doc := state.Schema.Clone()
		doc.Navigation = e.Navigation
		state.Schema = doc
		return state, nil

	case BeginImport:
		state.Phase = PhaseImporting
		return state, nil

	case CompleteImport:
		if !state.Importing() {
			return state, ErrNotImporting
		}
		imported, err := r.model.ImportSchema(e.Raw)
		if err != nil {
			return state, err
		}
		state.Schema = imported.Schema
		state.CurrentPageID = imported.InitialPageID
		state.SelectedComponentID = ""
		state.LastNavigation = imported.Schema.Navigation
		state.Phase = PhaseIdle
		return state, nil

	case CancelImport:
		if !state.Importing() {
			return state, ErrNotImporting
		}
		state.Phase = PhaseIdle
		return state, nil

	case UpdateSettings:
		doc, err := r.model.UpdateSettings(state.Schema, e.Settings)
		if err != nil {
			return state, err
		}
		state.Schema = doc
		return state, nil

	case SelectTab:
		switch e.Tab {
		case TabProperties, TabSettings:
			state.Tab = e.Tab
			return state, nil
		default:
			return state, fmt.Errorf("%w: %q", ErrUnknownTab, e.Tab)
		}

	default:
		return state, fmt.Errorf("%w: %s", ErrUnknownEvent, eventName(event))
	}
}

// followNavigation moves the current page to the landing page when the
// document's navigation differs from the one last acted on.
func followNavigation(state State) State {
	if state.Schema == nil || sameNavigation(state.Schema.Navigation, state.LastNavigation) {
		return state
	}
	state.LastNavigation = state.Schema.Navigation
	state.CurrentPageID = landingPage(state.Schema)
	return state
}

func eventName(event Event) string {
	if event == nil {
		return "<nil>"
	}
	return event.EventName()
}
