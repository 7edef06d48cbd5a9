package render

import (
	"fmt"
	"maps"
	"sync"

	"github.com/goliatone/go-sdui/internal/actions"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/internal/style"
	"github.com/goliatone/go-sdui/internal/themes"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

const (
	pageInset        = 16
	componentSpacing = 8
	pageBackground   = "#FFFFFF"
)

// PageRenderer renders one page of a document at a time and owns the form
// values typed into that page. Rendering a different page id than the
// previous call discards the form values.
type PageRenderer struct {
	logger interfaces.Logger
	themes *themes.Resolver

	mu       sync.Mutex
	pageID   string
	rendered bool
	formData map[string]string
}

// PageOption customises a PageRenderer.
type PageOption func(*PageRenderer)

// WithLogger sets the renderer logger.
func WithLogger(logger interfaces.Logger) PageOption {
	return func(r *PageRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithThemeResolver sets the resolver supplying button colours.
func WithThemeResolver(resolver *themes.Resolver) PageOption {
	return func(r *PageRenderer) {
		r.themes = resolver
	}
}

// NewPageRenderer builds a PageRenderer.
func NewPageRenderer(opts ...PageOption) *PageRenderer {
	r := &PageRenderer{
		logger:   logging.NoOp(),
		formData: map[string]string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders currentPageID of doc. A missing page yields a placeholder
// node rather than an error. doc must not be nil.
func (r *PageRenderer) Render(doc *schema.Schema, currentPageID string, onAction func(actions.Token)) *Node {
	if doc == nil {
		panic("render: nil schema")
	}

	r.mu.Lock()
	if !r.rendered || r.pageID != currentPageID {
		r.formData = map[string]string{}
		r.pageID = currentPageID
		r.rendered = true
	}
	r.mu.Unlock()

	logger := logging.WithDocument(r.logger, doc.ID, currentPageID)
	page, ok := doc.Page(currentPageID)
	if !ok {
		logger.Warn("render.page.not_found")
		return NotFound(currentPageID)
	}

	ctx := Context{
		FormData:         r.FormData(),
		OnFormDataChange: r.SetFormValue,
		OnAction:         onAction,
		Theme:            r.themes.ResolveOrDefault(),
		Logger:           logger,
	}

	root := &Node{
		Kind: KindPage,
		Text: page.Title,
		Style: style.Style{
			"minHeight":       "100vh",
			"padding":         pageInset,
			"backgroundColor": pageBackground,
		},
		Attrs:    map[string]string{"data-page-id": page.ID},
		Children: make([]*Node, 0, len(page.Components)),
	}

	last := len(page.Components) - 1
	for i, comp := range page.Components {
		gap := componentSpacing
		if i == last {
			gap = 0
		}
		wrapper := &Node{
			Kind:        KindWrapper,
			ComponentID: comp.ID,
			Style:       style.Style{"marginBottom": gap},
			Children:    []*Node{RenderComponent(comp, ctx)},
		}
		if comp.Type == schema.TypeImage {
			wrapper.Style = wrapper.Style.Merge(style.Style{
				"marginLeft":   fmt.Sprintf("-%dpx", pageInset),
				"marginRight":  fmt.Sprintf("-%dpx", pageInset),
				"paddingLeft":  fmt.Sprintf("%dpx", pageInset),
				"paddingRight": fmt.Sprintf("%dpx", pageInset),
			})
		}
		root.Children = append(root.Children, wrapper)
	}
	logger.Debug("render.page.rendered", "components", len(page.Components))
	return root
}

// NotFound is the placeholder rendered for a page id missing from the document.
func NotFound(pageID string) *Node {
	return &Node{
		Kind:  KindPageNotFound,
		Style: style.Style{"padding": 20, "textAlign": "center"},
		Children: []*Node{{
			Kind: KindHeading,
			Text: `Page "` + pageID + `" not found in schema`,
		}},
		Attrs: map[string]string{"data-page-id": pageID},
	}
}

// FormData returns a copy of the current form values.
func (r *PageRenderer) FormData() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.formData)
}

// SetFormValue records a value typed into the input componentID.
func (r *PageRenderer) SetFormValue(componentID, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formData[componentID] = value
}

// CurrentPageID returns the page id of the last render.
func (r *PageRenderer) CurrentPageID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pageID
}
