package editor

import (
	"github.com/goliatone/go-sdui/internal/mutation"
	"github.com/goliatone/go-sdui/internal/schema"
)

// Event is one user intent applied by Reduce.
type Event interface {
	EventName() string
}

// SelectComponent selects a component; an empty ID clears the selection.
type SelectComponent struct{ ID string }

// UpdateComponent replaces a component anywhere in the document and selects it.
type UpdateComponent struct{ Component schema.Component }

// DeleteComponent removes a component.
type DeleteComponent struct{ ID string }

// AddComponent appends a component of Type to the current page.
type AddComponent struct{ Type string }

// ReorderComponents replaces a page's component list. An empty PageID targets
// the first page.
type ReorderComponents struct {
	PageID     string
	Components []schema.Component
}

// SelectPage switches the page being edited.
type SelectPage struct{ ID string }

// UpdatePage replaces the page sharing Page.ID.
type UpdatePage struct{ Page schema.Page }

// AddPage appends a page and switches to it.
type AddPage struct{}

// DeletePage removes a page.
type DeletePage struct{ ID string }

// UpdateNavigation replaces the navigation block.
type UpdateNavigation struct{ Navigation schema.Navigation }

// BeginImport enters the importing phase.
type BeginImport struct{}

// CompleteImport replaces the document with Raw and leaves the importing
// phase.
type CompleteImport struct{ Raw []byte }

// CancelImport leaves the importing phase without changes.
type CancelImport struct{}

// UpdateSettings writes the document-level settings.
type UpdateSettings struct{ Settings mutation.Settings }

// SelectTab switches the side panel.
type SelectTab struct{ Tab Tab }

func (SelectComponent) EventName() string   { return "editor.component.select" }
func (UpdateComponent) EventName() string   { return "editor.component.update" }
func (DeleteComponent) EventName() string   { return "editor.component.delete" }
func (AddComponent) EventName() string      { return "editor.component.add" }
func (ReorderComponents) EventName() string { return "editor.component.reorder" }
func (SelectPage) EventName() string        { return "editor.page.select" }
func (UpdatePage) EventName() string        { return "editor.page.update" }
func (AddPage) EventName() string           { return "editor.page.add" }
func (DeletePage) EventName() string        { return "editor.page.delete" }
func (UpdateNavigation) EventName() string  { return "editor.navigation.update" }
func (BeginImport) EventName() string       { return "editor.import.begin" }
func (CompleteImport) EventName() string    { return "editor.import.complete" }
func (CancelImport) EventName() string      { return "editor.import.cancel" }
func (UpdateSettings) EventName() string    { return "editor.settings.update" }
func (SelectTab) EventName() string         { return "editor.tab.select" }
