package schema

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Component types understood by the renderer. Any other type is retained and
// rendered as unsupported.
const (
	TypeText       = "text"
	TypeHeading    = "heading"
	TypeButton     = "button"
	TypeTextInput  = "text-input"
	TypeTextarea   = "textarea"
	TypeDatePicker = "date-picker"
	TypeImage      = "image"
	TypeSpacer     = "spacer"
)

const (
	DefaultSchemaID    = "builder-app"
	DefaultPageID      = "welcome"
	DefaultPageTitle   = "Welcome"
	DefaultSchemaName  = "Builder App"
	DefaultDescription = "SDUI Builder Application"
	DefaultVersion     = "1.0"
	DefaultAuthor      = "builder"
)

// TimestampLayout matches the millisecond ISO-8601 stamps the builder writes.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// KnownTypes lists the component vocabulary in palette order.
func KnownTypes() []string {
	return []string{TypeText, TypeHeading, TypeButton, TypeTextInput, TypeTextarea, TypeDatePicker, TypeImage, TypeSpacer}
}

// IsKnownType reports whether the renderer has a dedicated rendition for t.
func IsKnownType(t string) bool {
	return slices.Contains(KnownTypes(), t)
}

// Schema is the complete document describing a mini-app.
type Schema struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Version     string
	IsPublic    bool
	IsPublished bool
	PublishedAt *string
	Navigation  Navigation
	Pages       []Page
	Metadata    Metadata
	CreatedAt   string
	UpdatedAt   string

	// Opaque extension members, written back exactly as read.
	Permissions json.RawMessage
	Statuses    json.RawMessage
	Payment     json.RawMessage

	// Extra keeps unknown top-level members.
	Extra map[string]json.RawMessage

	present keySet
}

// Navigation holds the guest and initial page references.
type Navigation struct {
	GuestPageID   string
	InitialPageID string
	Extra         map[string]json.RawMessage

	present keySet
}

// Metadata carries the revision counter and author tag.
type Metadata struct {
	Revision  int
	CreatedBy string
	Extra     map[string]json.RawMessage

	present keySet
}

// Page is one screen.
type Page struct {
	ID         string
	Order      int
	Title      string
	Components []Component
	Extra      map[string]json.RawMessage

	present keySet
}

// Component is one typed UI element. Props is never nil on a decoded or
// constructed component.
type Component struct {
	ID         string
	Type       string
	Props      map[string]any
	Action     *Action
	Validation *Validation
	GridRow    *int
	RowSpan    *int
	GridCol    *int
	ColSpan    *int
	Extra      map[string]json.RawMessage
}

// Validation holds advisory field rules.
type Validation struct {
	Required  *bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
	Extra     map[string]json.RawMessage
}

// Default returns the starting document of a new builder session.
func Default(now time.Time) *Schema {
	stamp := now.UTC().Format(TimestampLayout)
	return &Schema{
		ID:          DefaultSchemaID,
		Slug:        DefaultSchemaID,
		Name:        DefaultSchemaName,
		Description: DefaultDescription,
		Version:     DefaultVersion,
		Navigation: Navigation{
			GuestPageID:   DefaultPageID,
			InitialPageID: DefaultPageID,
		},
		Pages:     []Page{DefaultPage()},
		Metadata:  Metadata{Revision: 1, CreatedBy: DefaultAuthor},
		CreatedAt: stamp,
		UpdatedAt: stamp,
		present:   keySet{"is_public": {}, "is_published": {}, "published_at": {}},
	}
}

// DefaultPage is the page synthesized when a document would otherwise have none.
func DefaultPage() Page {
	return Page{
		ID:         DefaultPageID,
		Order:      0,
		Title:      DefaultPageTitle,
		Components: []Component{},
		present:    keySet{"order": {}},
	}
}

// PageIndex returns the index of the page with id, or -1.
func (s *Schema) PageIndex(id string) int {
	if s == nil {
		return -1
	}
	for i := range s.Pages {
		if s.Pages[i].ID == id {
			return i
		}
	}
	return -1
}

// Page returns the page with id.
func (s *Schema) Page(id string) (*Page, bool) {
	idx := s.PageIndex(id)
	if idx < 0 {
		return nil, false
	}
	return &s.Pages[idx], true
}

// HasPage reports whether a page with id exists.
func (s *Schema) HasPage(id string) bool {
	return s.PageIndex(id) >= 0
}

// FindComponent locates a component anywhere in the document.
func (s *Schema) FindComponent(id string) (pageIdx, compIdx int, ok bool) {
	if s == nil {
		return -1, -1, false
	}
	for pi := range s.Pages {
		for ci := range s.Pages[pi].Components {
			if s.Pages[pi].Components[ci].ID == id {
				return pi, ci, true
			}
		}
	}
	return -1, -1, false
}

// ComponentIDs returns every component id in document order.
func (s *Schema) ComponentIDs() []string {
	if s == nil {
		return nil
	}
	var ids []string
	for _, page := range s.Pages {
		for _, comp := range page.Components {
			ids = append(ids, comp.ID)
		}
	}
	return ids
}

// InitialPageID returns navigation.initialPageId when it references an
// existing page, otherwise "".
func (s *Schema) InitialPageID() string {
	if s == nil {
		return ""
	}
	if id := s.Navigation.InitialPageID; id != "" && s.HasPage(id) {
		return id
	}
	return ""
}

// Revision returns the metadata revision as a string for log fields.
func (s *Schema) Revision() string {
	if s == nil {
		return ""
	}
	return strconv.Itoa(s.Metadata.Revision)
}

// Clone returns a deep copy.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.PublishedAt = clonePtr(s.PublishedAt)
	out.Navigation = s.Navigation.clone()
	out.Metadata = s.Metadata.clone()
	out.Permissions = cloneRaw(s.Permissions)
	out.Statuses = cloneRaw(s.Statuses)
	out.Payment = cloneRaw(s.Payment)
	out.Extra = cloneRawMap(s.Extra)
	out.present = cloneKeys(s.present)
	if s.Pages != nil {
		out.Pages = make([]Page, len(s.Pages))
		for i := range s.Pages {
			out.Pages[i] = s.Pages[i].Clone()
		}
	}
	return &out
}

func (n Navigation) clone() Navigation {
	n.Extra = cloneRawMap(n.Extra)
	n.present = cloneKeys(n.present)
	return n
}

func (m Metadata) clone() Metadata {
	m.Extra = cloneRawMap(m.Extra)
	m.present = cloneKeys(m.present)
	return m
}

// Clone returns a deep copy.
func (p Page) Clone() Page {
	p.Extra = cloneRawMap(p.Extra)
	p.present = cloneKeys(p.present)
	if p.Components != nil {
		comps := make([]Component, len(p.Components))
		for i := range p.Components {
			comps[i] = p.Components[i].Clone()
		}
		p.Components = comps
	}
	return p
}

// Clone returns a deep copy.
func (c Component) Clone() Component {
	c.Props = CloneProps(c.Props)
	c.Action = c.Action.Clone()
	c.Validation = c.Validation.Clone()
	c.GridRow = clonePtr(c.GridRow)
	c.RowSpan = clonePtr(c.RowSpan)
	c.GridCol = clonePtr(c.GridCol)
	c.ColSpan = clonePtr(c.ColSpan)
	c.Extra = cloneRawMap(c.Extra)
	return c
}

// Style returns the nested props.style object, or nil.
func (c Component) Style() map[string]any {
	style, _ := c.Props["style"].(map[string]any)
	return style
}

// Clone returns a deep copy.
func (v *Validation) Clone() *Validation {
	if v == nil {
		return nil
	}
	out := *v
	out.Required = clonePtr(v.Required)
	out.MinLength = clonePtr(v.MinLength)
	out.MaxLength = clonePtr(v.MaxLength)
	out.Min = clonePtr(v.Min)
	out.Max = clonePtr(v.Max)
	out.Extra = cloneRawMap(v.Extra)
	return &out
}

// IsZero reports whether no rule is set.
func (v *Validation) IsZero() bool {
	return v == nil || (v.Required == nil && v.MinLength == nil && v.MaxLength == nil && v.Min == nil && v.Max == nil && len(v.Extra) == 0)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func (s Schema) String() string {
	return fmt.Sprintf("schema(%s, %d pages)", s.ID, len(s.Pages))
}
