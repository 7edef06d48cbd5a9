package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-sdui/cmd/internal/bootstrap"
	editorcmd "github.com/goliatone/go-sdui/internal/commands/editor"
	"github.com/goliatone/go-sdui/internal/schema"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("sdui import: %v", err)
	}
}

// runImport normalizes a legacy or flattened document through the editor
// import commands and writes the canonical export.
func runImport(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("sdui-import", flag.ContinueOnError)
	in := fs.String("in", "", "Schema file to import (- for stdin)")
	out := fs.String("out", "", "Destination for the flattened schema (stdout when empty)")
	opts := bootstrap.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := bootstrap.ReadInput(*in, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	resources, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	module := resources.Module

	ctx := context.Background()
	handlers := module.Commands()
	if err := handlers.BeginImport.Execute(ctx, editorcmd.BeginImportCommand{}); err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	if err := handlers.CompleteImport.Execute(ctx, editorcmd.CompleteImportCommand{Document: raw}); err != nil {
		return fmt.Errorf("complete import: %w", err)
	}

	state := module.Editor().State()
	data, err := schema.Export(state.Schema)
	if err != nil {
		return fmt.Errorf("export schema: %w", err)
	}
	if err := bootstrap.WriteOutput(*out, stdout, append(data, '\n')); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	resources.Logger.Info("sdui.import.completed",
		"schema_id", state.Schema.ID,
		"pages", len(state.Schema.Pages),
		"initial_page_id", state.CurrentPageID,
	)
	return nil
}
