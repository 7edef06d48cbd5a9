// Package sdui is the public facade over the schema-driven UI engine: it
// imports and exports documents, renders pages, executes button tokens and
// hosts the editor session and preview server.
package sdui

import (
	"context"
	"io"

	"github.com/goliatone/go-sdui/internal/actions"
	editorcmd "github.com/goliatone/go-sdui/internal/commands/editor"
	"github.com/goliatone/go-sdui/internal/di"
	"github.com/goliatone/go-sdui/internal/editor"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/mutation"
	"github.com/goliatone/go-sdui/internal/navigation"
	"github.com/goliatone/go-sdui/internal/preview"
	"github.com/goliatone/go-sdui/internal/render"
	"github.com/goliatone/go-sdui/internal/render/htmlview"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// Schema exports the document model.
type Schema = schema.Schema

// Page exports the page model.
type Page = schema.Page

// Component exports the component model.
type Component = schema.Component

// Token is the canonical action string handed to executors.
type Token = actions.Token

// ActionResult describes what executing a token means for the host.
type ActionResult = actions.Result

// Node is one element of a rendered page tree.
type Node = render.Node

// Imported is the outcome of a successful import.
type Imported = mutation.Imported

// ImportError reports a document that could not be imported.
type ImportError = mutation.ImportError

// EditorSession exports the editor session.
type EditorSession = *editor.Session

// EditorCommands exports the editor command handler set.
type EditorCommands = *editorcmd.HandlerSet

// PreviewServer exports the preview host.
type PreviewServer = *preview.Server

// Module represents the top level SDUI runtime facade.
type Module struct {
	container *di.Container
	logger    interfaces.Logger
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{
		container: container,
		logger:    logging.ModuleLogger(container.LoggerProvider(), "sdui"),
	}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.logger
}

// Import normalizes a legacy-wrapped or flattened document.
func (m *Module) Import(raw []byte) (Imported, error) {
	return m.container.Mutations().ImportSchema(raw)
}

// Export serializes doc in the canonical flattened form.
func (m *Module) Export(doc *Schema) ([]byte, error) {
	return schema.Export(doc)
}

// Render renders pageID of doc. A missing page yields a placeholder node.
func (m *Module) Render(doc *Schema, pageID string, onAction func(Token)) *Node {
	return m.container.Renderer().Render(doc, pageID, onAction)
}

// RenderHTML writes a standalone HTML document for pageID of doc. An empty
// pageID renders the document's initial page; an unknown one renders the
// not-found placeholder.
func (m *Module) RenderHTML(out io.Writer, doc *Schema, pageID string) error {
	nav := navigation.NewForPreview(doc, pageID)
	if pageID == "" {
		pageID = nav.Current()
	}
	history := nav.History()
	if nav.Current() != pageID {
		history = []string{pageID}
	}
	root := m.container.NewRenderer().Render(doc, pageID, nil)
	return m.container.HTML().WriteDocument(out, htmlview.Document{
		Title:    m.container.Config.Render.Title,
		SchemaID: doc.ID,
		PageID:   pageID,
		History:  history,
		Root:     root,
	})
}

// Execute interprets token against pageID of doc with the given form values.
func (m *Module) Execute(ctx context.Context, token Token, doc *Schema, pageID string, form map[string]string) ActionResult {
	return m.container.Executor().Execute(ctx, token, actions.ActionContext{
		Schema:   doc,
		PageID:   pageID,
		FormData: form,
	})
}

// Editor returns the editor session.
func (m *Module) Editor() EditorSession {
	return m.container.Session()
}

// Commands returns the editor command handlers.
func (m *Module) Commands() EditorCommands {
	return m.container.Commands()
}

// Preview builds a preview host for doc.
func (m *Module) Preview(doc *Schema) (PreviewServer, error) {
	return m.container.NewPreviewServer(doc)
}
