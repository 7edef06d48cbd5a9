package editorcmd

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sdui/internal/editor"
	"github.com/goliatone/go-sdui/internal/mutation"
	"github.com/goliatone/go-sdui/internal/schema"
)

const (
	selectComponentMessageType   = "sdui.editor.select_component"
	updateComponentMessageType   = "sdui.editor.update_component"
	deleteComponentMessageType   = "sdui.editor.delete_component"
	addComponentMessageType      = "sdui.editor.add_component"
	reorderComponentsMessageType = "sdui.editor.reorder_components"
	selectPageMessageType        = "sdui.editor.select_page"
	updatePageMessageType        = "sdui.editor.update_page"
	addPageMessageType           = "sdui.editor.add_page"
	deletePageMessageType        = "sdui.editor.delete_page"
	updateNavigationMessageType  = "sdui.editor.update_navigation"
	beginImportMessageType       = "sdui.editor.begin_import"
	completeImportMessageType    = "sdui.editor.complete_import"
	cancelImportMessageType      = "sdui.editor.cancel_import"
	updateSettingsMessageType    = "sdui.editor.update_settings"
	selectTabMessageType         = "sdui.editor.select_tab"
)

// Command is a go-command message that maps onto one editor event.
type Command interface {
	command.Message
	Validate() error
	Event() editor.Event
}

func notBlank(code, message string) validation.Rule {
	return validation.By(func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	})
}

// SelectComponentCommand selects a component. An empty ComponentID clears the selection.
type SelectComponentCommand struct {
	ComponentID string `json:"component_id,omitempty"`
}

// Type implements command.Message.
func (SelectComponentCommand) Type() string { return selectComponentMessageType }

// Validate implements command.Message.
func (SelectComponentCommand) Validate() error { return nil }

// Event maps the command onto the editor event.
func (c SelectComponentCommand) Event() editor.Event {
	return editor.SelectComponent{ID: c.ComponentID}
}

// UpdateComponentCommand replaces a component wherever it lives in the document.
type UpdateComponentCommand struct {
	Component schema.Component `json:"component"`
}

// Type implements command.Message.
func (UpdateComponentCommand) Type() string { return updateComponentMessageType }

// Validate ensures the component carries an id and a type.
func (c UpdateComponentCommand) Validate() error {
	return validation.Errors{
		"component.id":   validation.Validate(c.Component.ID, notBlank("sdui.editor.component_id_required", "component id is required")),
		"component.type": validation.Validate(c.Component.Type, notBlank("sdui.editor.component_type_required", "component type is required")),
	}.Filter()
}

// Event maps the command onto the editor event.
func (c UpdateComponentCommand) Event() editor.Event {
	return editor.UpdateComponent{Component: c.Component}
}

// DeleteComponentCommand removes a component.
type DeleteComponentCommand struct {
	ComponentID string `json:"component_id"`
}

// Type implements command.Message.
func (DeleteComponentCommand) Type() string { return deleteComponentMessageType }

// Validate ensures the component id is present.
func (c DeleteComponentCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ComponentID, notBlank("sdui.editor.component_id_required", "component id is required")),
	)
}

// Event maps the command onto the editor event.
func (c DeleteComponentCommand) Event() editor.Event {
	return editor.DeleteComponent{ID: c.ComponentID}
}

// AddComponentCommand appends a component to the current page.
type AddComponentCommand struct {
	ComponentType string `json:"component_type"`
}

// Type implements command.Message.
func (AddComponentCommand) Type() string { return addComponentMessageType }

// Validate ensures a component type is named. Unknown types are accepted and
// render as unsupported.
func (c AddComponentCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ComponentType, notBlank("sdui.editor.component_type_required", "component type is required")),
	)
}

// Event maps the command onto the editor event.
func (c AddComponentCommand) Event() editor.Event {
	return editor.AddComponent{Type: c.ComponentType}
}

// ReorderComponentsCommand replaces a page's component order. An empty
// PageID targets the first page.
type ReorderComponentsCommand struct {
	PageID     string             `json:"page_id,omitempty"`
	Components []schema.Component `json:"components"`
}

// Type implements command.Message.
func (ReorderComponentsCommand) Type() string { return reorderComponentsMessageType }

// Validate rejects components without ids.
func (c ReorderComponentsCommand) Validate() error {
	errs := validation.Errors{}
	for i, comp := range c.Components {
		if strings.TrimSpace(comp.ID) == "" {
			errs["components."+strconv.Itoa(i)] = validation.NewError("sdui.editor.component_id_required", "component id is required")
		}
	}
	return errs.Filter()
}

// Event maps the command onto the editor event.
func (c ReorderComponentsCommand) Event() editor.Event {
	return editor.ReorderComponents{PageID: c.PageID, Components: c.Components}
}

// SelectPageCommand switches the page being edited.
type SelectPageCommand struct {
	PageID string `json:"page_id"`
}

// Type implements command.Message.
func (SelectPageCommand) Type() string { return selectPageMessageType }

// Validate ensures the page id is present.
func (c SelectPageCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PageID, notBlank("sdui.editor.page_id_required", "page id is required")),
	)
}

// Event maps the command onto the editor event.
func (c SelectPageCommand) Event() editor.Event {
	return editor.SelectPage{ID: c.PageID}
}

// UpdatePageCommand replaces a page.
type UpdatePageCommand struct {
	Page schema.Page `json:"page"`
}

// Type implements command.Message.
func (UpdatePageCommand) Type() string { return updatePageMessageType }

// Validate ensures the page id is present.
func (c UpdatePageCommand) Validate() error {
	return validation.Errors{
		"page.id": validation.Validate(c.Page.ID, notBlank("sdui.editor.page_id_required", "page id is required")),
	}.Filter()
}

// Event maps the command onto the editor event.
func (c UpdatePageCommand) Event() editor.Event {
	return editor.UpdatePage{Page: c.Page}
}

// AddPageCommand appends a page and switches to it.
type AddPageCommand struct{}

// Type implements command.Message.
func (AddPageCommand) Type() string { return addPageMessageType }

// Validate implements command.Message.
func (AddPageCommand) Validate() error { return nil }

// Event maps the command onto the editor event.
func (AddPageCommand) Event() editor.Event { return editor.AddPage{} }

// DeletePageCommand removes a page.
type DeletePageCommand struct {
	PageID string `json:"page_id"`
}

// Type implements command.Message.
func (DeletePageCommand) Type() string { return deletePageMessageType }

// Validate ensures the page id is present.
func (c DeletePageCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PageID, notBlank("sdui.editor.page_id_required", "page id is required")),
	)
}

// Event maps the command onto the editor event.
func (c DeletePageCommand) Event() editor.Event {
	return editor.DeletePage{ID: c.PageID}
}

// UpdateNavigationCommand replaces the navigation block.
type UpdateNavigationCommand struct {
	GuestPageID   string `json:"guest_page_id,omitempty"`
	InitialPageID string `json:"initial_page_id,omitempty"`
}

// Type implements command.Message.
func (UpdateNavigationCommand) Type() string { return updateNavigationMessageType }

// Validate implements command.Message.
func (UpdateNavigationCommand) Validate() error { return nil }

// Event maps the command onto the editor event.
func (c UpdateNavigationCommand) Event() editor.Event {
	return editor.UpdateNavigation{Navigation: schema.Navigation{
		GuestPageID:   c.GuestPageID,
		InitialPageID: c.InitialPageID,
	}}
}

// BeginImportCommand enters the importing phase.
type BeginImportCommand struct{}

// Type implements command.Message.
func (BeginImportCommand) Type() string { return beginImportMessageType }

// Validate implements command.Message.
func (BeginImportCommand) Validate() error { return nil }

// Event maps the command onto the editor event.
func (BeginImportCommand) Event() editor.Event { return editor.BeginImport{} }

// CompleteImportCommand replaces the document with Document.
type CompleteImportCommand struct {
	Document []byte `json:"document"`
}

// Type implements command.Message.
func (CompleteImportCommand) Type() string { return completeImportMessageType }

// Validate ensures a payload is present.
func (c CompleteImportCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Document, validation.Required.Error("document is required")),
	)
}

// Event maps the command onto the editor event.
func (c CompleteImportCommand) Event() editor.Event {
	return editor.CompleteImport{Raw: c.Document}
}

// CancelImportCommand leaves the importing phase.
type CancelImportCommand struct{}

// Type implements command.Message.
func (CancelImportCommand) Type() string { return cancelImportMessageType }

// Validate implements command.Message.
func (CancelImportCommand) Validate() error { return nil }

// Event maps the command onto the editor event.
func (CancelImportCommand) Event() editor.Event { return editor.CancelImport{} }

// UpdateSettingsCommand writes the document-level settings.
type UpdateSettingsCommand struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	IsPublic    bool     `json:"is_public,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Statuses    []string `json:"statuses,omitempty"`
}

// Type implements command.Message.
func (UpdateSettingsCommand) Type() string { return updateSettingsMessageType }

// Validate ensures the document id is present and bounded.
func (c UpdateSettingsCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, notBlank("sdui.editor.schema_id_required", "id is required"), validation.RuneLength(1, 128)),
		validation.Field(&c.Name, validation.RuneLength(0, 256)),
		validation.Field(&c.Slug, validation.RuneLength(0, 128)),
	)
}

// Event maps the command onto the editor event.
func (c UpdateSettingsCommand) Event() editor.Event {
	return editor.UpdateSettings{Settings: mutation.Settings{
		ID:          c.ID,
		Name:        c.Name,
		Version:     c.Version,
		Description: c.Description,
		Slug:        c.Slug,
		IsPublic:    c.IsPublic,
		Permissions: c.Permissions,
		Statuses:    c.Statuses,
	}}
}

// SelectTabCommand switches the side panel.
type SelectTabCommand struct {
	Tab string `json:"tab"`
}

// Type implements command.Message.
func (SelectTabCommand) Type() string { return selectTabMessageType }

// Validate restricts the tab to the known panels.
func (c SelectTabCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Tab, validation.Required, validation.In(string(editor.TabProperties), string(editor.TabSettings))),
	)
}

// Event maps the command onto the editor event.
func (c SelectTabCommand) Event() editor.Event {
	return editor.SelectTab{Tab: editor.Tab(c.Tab)}
}
