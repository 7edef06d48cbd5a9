package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-sdui"
	"github.com/goliatone/go-sdui/cmd/internal/bootstrap"
	"github.com/goliatone/go-sdui/internal/navigation"
	"github.com/goliatone/go-sdui/internal/render"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runRender(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("sdui render: %v", err)
	}
}

// runRender renders one page of a schema file as HTML, or as the node tree
// in JSON when -format=json.
func runRender(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("sdui-render", flag.ContinueOnError)
	in := fs.String("in", "", "Schema file to render (- for stdin)")
	page := fs.String("page", "", "Page id to render (defaults to the initial page)")
	out := fs.String("out", "", "Destination file (stdout when empty)")
	format := fs.String("format", "html", "Output format: html or json")
	title := fs.String("title", "", "HTML document title")
	opts := bootstrap.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	mode := strings.ToLower(strings.TrimSpace(*format))
	if mode != "html" && mode != "json" {
		return fmt.Errorf("unsupported format %q", *format)
	}

	raw, err := bootstrap.ReadInput(*in, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if *title != "" {
		opts.Configure = func(cfg *sdui.Config) {
			cfg.Render.Title = *title
		}
	}
	resources, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	module := resources.Module

	imported, err := module.Import(raw)
	if err != nil {
		return err
	}
	doc := imported.Schema
	pageID := strings.TrimSpace(*page)
	if pageID == "" {
		pageID = navigation.NewForPreview(doc, "").Current()
	}

	var buf bytes.Buffer
	node := module.Render(doc, pageID, nil)
	if render.IsPageNotFound(node) {
		resources.Logger.Warn("sdui.render.page_missing", "page_id", pageID)
	}
	switch mode {
	case "json":
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(node); err != nil {
			return fmt.Errorf("encode node tree: %w", err)
		}
	default:
		if err := module.RenderHTML(&buf, doc, pageID); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}

	if err := bootstrap.WriteOutput(*out, stdout, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	resources.Logger.Info("sdui.render.completed", "schema_id", doc.ID, "page_id", pageID, "format", mode)
	return nil
}
