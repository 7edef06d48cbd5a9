package editor

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/goliatone/go-sdui/internal/schema"
)

// Tab names the side panel shown next to the canvas.
type Tab string

const (
	TabProperties Tab = "properties"
	TabSettings   Tab = "settings"
)

// Phase tracks the import state machine: Idle -> Importing -> Idle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseImporting Phase = "importing"
)

// State is the complete editor state. Schema is never modified in place;
// every edit produces a new document.
type State struct {
	Schema              *schema.Schema
	CurrentPageID       string
	SelectedComponentID string
	Tab                 Tab
	Phase               Phase

	// LastNavigation is the navigation block last acted on. A change to the
	// document's navigation outside an import moves CurrentPageID.
	LastNavigation schema.Navigation
}

// NewState starts an editor on doc, or on the default document when doc is
// nil.
func NewState(doc *schema.Schema) State {
	if doc == nil {
		doc = schema.Default(time.Now())
	}
	return State{
		Schema:         doc,
		CurrentPageID:  landingPage(doc),
		Tab:            TabProperties,
		Phase:          PhaseIdle,
		LastNavigation: doc.Navigation,
	}
}

// CurrentPage returns the page being edited.
func (s State) CurrentPage() (*schema.Page, bool) {
	return s.Schema.Page(s.CurrentPageID)
}

// SelectedComponent returns the selected component, if any.
func (s State) SelectedComponent() (schema.Component, bool) {
	if s.SelectedComponentID == "" {
		return schema.Component{}, false
	}
	pageIdx, compIdx, ok := s.Schema.FindComponent(s.SelectedComponentID)
	if !ok {
		return schema.Component{}, false
	}
	return s.Schema.Pages[pageIdx].Components[compIdx], true
}

// Importing reports whether an import is in progress.
func (s State) Importing() bool {
	return s.Phase == PhaseImporting
}

// landingPage is navigation.initialPageId when it resolves, else the first
// page.
func landingPage(doc *schema.Schema) string {
	if id := doc.InitialPageID(); id != "" {
		return id
	}
	if doc != nil && len(doc.Pages) > 0 {
		return doc.Pages[0].ID
	}
	return schema.DefaultPageID
}

func sameNavigation(a, b schema.Navigation) bool {
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}
