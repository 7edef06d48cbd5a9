// Package htmlview writes rendered node trees as HTML for the preview host
// and the render CLI.
package htmlview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/Masterminds/sprig/v3"

	"github.com/goliatone/go-sdui/internal/render"
	"github.com/goliatone/go-sdui/internal/style"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Document is the data for a full preview page.
type Document struct {
	Title    string
	SchemaID string
	PageID   string
	History  []string
	Root     *render.Node
	// LiveReload enables the websocket reload script.
	LiveReload bool
	// ActionsURL is where button tokens are posted. Empty disables the script.
	ActionsURL string
}

// Writer renders nodes with the embedded templates.
type Writer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Writer, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["css"] = inlineCSS
	funcs["attr"] = func(n *render.Node, key string) string {
		if n == nil || n.Attrs == nil {
			return ""
		}
		return n.Attrs[key]
	}
	funcs["isKind"] = func(n *render.Node, kind string) bool {
		return n != nil && string(n.Kind) == kind
	}
	funcs["clickable"] = func(n *render.Node) bool {
		return n != nil && n.Action != ""
	}

	tmpl, err := template.New("sdui").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("htmlview: parse templates: %w", err)
	}
	return &Writer{tmpl: tmpl}, nil
}

// Must is New that panics on template errors.
func Must() *Writer {
	w, err := New()
	if err != nil {
		panic(err)
	}
	return w
}

// WriteNode writes the fragment for n.
func (w *Writer) WriteNode(out io.Writer, n *render.Node) error {
	if n == nil {
		return nil
	}
	return w.tmpl.ExecuteTemplate(out, "node", n)
}

// WriteDocument writes a complete HTML page.
func (w *Writer) WriteDocument(out io.Writer, doc Document) error {
	return w.tmpl.ExecuteTemplate(out, "document", doc)
}

// Fragment returns the HTML for n.
func (w *Writer) Fragment(n *render.Node) (string, error) {
	var buf bytes.Buffer
	if err := w.WriteNode(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// inlineCSS formats s for a style attribute. Declarations whose value could
// escape the attribute are dropped.
func inlineCSS(s style.Style) template.CSS {
	safe := style.Style{}
	for key, value := range s {
		if !unsafeCSS(key) && !unsafeCSS(s.String(key)) {
			safe[key] = value
		}
	}
	return template.CSS(safe.CSS())
}

func unsafeCSS(text string) bool {
	return strings.ContainsAny(text, ";{}<>\"'\\") || strings.Contains(strings.ToLower(text), "url(") || strings.Contains(strings.ToLower(text), "expression(")
}
