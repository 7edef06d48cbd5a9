package mutation

import (
	"fmt"
	"time"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// Model applies structural edits to documents. Every operation works on a
// deep copy and returns the new document; the input is never modified. A
// missing target leaves the copy unchanged.
type Model struct {
	ids    *IDGenerator
	now    func() time.Time
	logger interfaces.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock used for generated ids and import timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
			m.ids = NewIDGenerator(now)
		}
	}
}

// WithLogger sets the logger used for mutation diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New returns a Model.
func New(opts ...Option) *Model {
	m := &Model{
		ids:    NewIDGenerator(time.Now),
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// AddComponent appends a component of componentType with default props to
// the page pageID. It returns the new document and the generated id, which is
// empty when the page does not exist.
func (m *Model) AddComponent(doc *schema.Schema, pageID, componentType string) (*schema.Schema, string) {
	next := doc.Clone()
	page, ok := next.Page(pageID)
	if !ok {
		m.logger.Debug("mutation.component.add.page_missing", "page_id", pageID)
		return next, ""
	}
	id := m.ids.ComponentID(next)
	page.Components = append(page.Components, schema.Component{
		ID:      id,
		Type:    componentType,
		Props:   DefaultProps(componentType),
		GridRow: schema.Ptr(len(page.Components)),
		RowSpan: schema.Ptr(1),
	})
	if !schema.IsKnownType(componentType) {
		m.logger.Warn("mutation.component.unknown_type", "page_id", pageID, "component_id", id, "type", componentType)
	}
	m.logger.Debug("mutation.component.added", "page_id", pageID, "component_id", id, "type", componentType)
	return next, id
}

// UpdateComponent replaces the component sharing updated.ID on whichever page
// holds it.
func (m *Model) UpdateComponent(doc *schema.Schema, updated schema.Component) *schema.Schema {
	next := doc.Clone()
	pageIdx, compIdx, ok := next.FindComponent(updated.ID)
	if !ok {
		m.logger.Debug("mutation.component.update.missing", "component_id", updated.ID)
		return next
	}
	replacement := updated.Clone()
	if replacement.Props == nil {
		replacement.Props = map[string]any{}
	}
	next.Pages[pageIdx].Components[compIdx] = replacement
	return next
}

// DeleteComponent removes the component with id from whichever page holds it.
// Clearing a selection that pointed at it is the caller's job.
func (m *Model) DeleteComponent(doc *schema.Schema, id string) *schema.Schema {
	next := doc.Clone()
	pageIdx, compIdx, ok := next.FindComponent(id)
	if !ok {
		m.logger.Debug("mutation.component.delete.missing", "component_id", id)
		return next
	}
	comps := next.Pages[pageIdx].Components
	next.Pages[pageIdx].Components = append(comps[:compIdx:compIdx], comps[compIdx+1:]...)
	return next
}

// ReorderComponents replaces the component list of the first page with order
// verbatim. Only the first page is ever targeted; ReorderPageComponents takes
// an explicit page.
func (m *Model) ReorderComponents(doc *schema.Schema, order []schema.Component) *schema.Schema {
	if doc == nil || len(doc.Pages) == 0 {
		return doc.Clone()
	}
	return m.ReorderPageComponents(doc, doc.Pages[0].ID, order)
}

// ReorderPageComponents replaces the component list of pageID with order
// verbatim.
func (m *Model) ReorderPageComponents(doc *schema.Schema, pageID string, order []schema.Component) *schema.Schema {
	next := doc.Clone()
	page, ok := next.Page(pageID)
	if !ok {
		m.logger.Debug("mutation.component.reorder.page_missing", "page_id", pageID)
		return next
	}
	comps := make([]schema.Component, len(order))
	for i := range order {
		comps[i] = order[i].Clone()
	}
	page.Components = comps
	return next
}

// AddPage appends an empty page titled "Page <n+1>" and returns the new
// document and the page id.
func (m *Model) AddPage(doc *schema.Schema) (*schema.Schema, string) {
	next := doc.Clone()
	if next == nil {
		next = schema.Default(m.now())
	}
	id := m.ids.PageID(next)
	count := len(next.Pages)
	next.Pages = append(next.Pages, schema.Page{
		ID:         id,
		Order:      count,
		Title:      fmt.Sprintf("Page %d", count+1),
		Components: []schema.Component{},
	})
	m.logger.Debug("mutation.page.added", "page_id", id)
	return next, id
}

// DeletePage removes the page pageID. Deleting the only page leaves the
// default welcome page in its place.
func (m *Model) DeletePage(doc *schema.Schema, pageID string) *schema.Schema {
	next := doc.Clone()
	idx := next.PageIndex(pageID)
	if idx < 0 {
		m.logger.Debug("mutation.page.delete.missing", "page_id", pageID)
		return next
	}
	next.Pages = append(next.Pages[:idx:idx], next.Pages[idx+1:]...)
	if len(next.Pages) == 0 {
		next.Pages = []schema.Page{schema.DefaultPage()}
		m.logger.Debug("mutation.page.default_synthesized", "page_id", schema.DefaultPageID)
	}
	return next
}

// UpdatePage replaces the page sharing updated.ID.
func (m *Model) UpdatePage(doc *schema.Schema, updated schema.Page) *schema.Schema {
	next := doc.Clone()
	idx := next.PageIndex(updated.ID)
	if idx < 0 {
		m.logger.Debug("mutation.page.update.missing", "page_id", updated.ID)
		return next
	}
	replacement := updated.Clone()
	if replacement.Components == nil {
		replacement.Components = []schema.Component{}
	}
	next.Pages[idx] = replacement
	return next
}

var defaultModel = New()

// AddComponent applies Model.AddComponent with the wall clock.
func AddComponent(doc *schema.Schema, pageID, componentType string) (*schema.Schema, string) {
	return defaultModel.AddComponent(doc, pageID, componentType)
}

// UpdateComponent applies Model.UpdateComponent.
func UpdateComponent(doc *schema.Schema, updated schema.Component) *schema.Schema {
	return defaultModel.UpdateComponent(doc, updated)
}

// DeleteComponent applies Model.DeleteComponent.
func DeleteComponent(doc *schema.Schema, id string) *schema.Schema {
	return defaultModel.DeleteComponent(doc, id)
}

// ReorderComponents applies Model.ReorderComponents.
func ReorderComponents(doc *schema.Schema, order []schema.Component) *schema.Schema {
	return defaultModel.ReorderComponents(doc, order)
}

// ReorderPageComponents applies Model.ReorderPageComponents.
func ReorderPageComponents(doc *schema.Schema, pageID string, order []schema.Component) *schema.Schema {
	return defaultModel.ReorderPageComponents(doc, pageID, order)
}

// AddPage applies Model.AddPage with the wall clock.
func AddPage(doc *schema.Schema) (*schema.Schema, string) {
	return defaultModel.AddPage(doc)
}

// DeletePage applies Model.DeletePage.
func DeletePage(doc *schema.Schema, pageID string) *schema.Schema {
	return defaultModel.DeletePage(doc, pageID)
}

// UpdatePage applies Model.UpdatePage.
func UpdatePage(doc *schema.Schema, updated schema.Page) *schema.Schema {
	return defaultModel.UpdatePage(doc, updated)
}
