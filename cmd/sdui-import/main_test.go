package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sdui/internal/mutation"
	"github.com/goliatone/go-sdui/internal/schema"
)

const legacy = `{"success":true,"data":{"id":"app","pages":[{"id":"home","title":"Home","components":[{"id":"t","type":"text","props":{"content":"Hi"}}]}],"custom":{"keep":true}}}`

func TestRunImportFlattensLegacyDocument(t *testing.T) {
	in := filepath.Join(t.TempDir(), "legacy.json")
	if err := os.WriteFile(in, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var stdout bytes.Buffer
	if err := runImport([]string{"-in", in, "-log-provider", "noop"}, nil, &stdout); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}

	doc, format, err := schema.Parse(stdout.Bytes())
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if format != schema.FormatFlattened {
		t.Fatalf("expected flattened output, got %v", format)
	}
	if doc.ID != "app" || len(doc.Pages) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if !strings.Contains(stdout.String(), `"custom"`) {
		t.Fatalf("expected unknown members to survive, got %s", stdout.String())
	}
}

func TestRunImportWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "schema.json")

	err := runImport([]string{"-in", "-", "-out", out, "-log-provider", "noop"}, strings.NewReader(legacy), nil)
	if err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  ") {
		t.Fatalf("expected indented JSON, got %s", data)
	}
}

func TestRunImportReportsImportErrors(t *testing.T) {
	err := runImport([]string{"-in", "-", "-log-provider", "noop"}, strings.NewReader(`{"id":"x"}`), &bytes.Buffer{})
	if !mutation.IsImportError(err) {
		t.Fatalf("expected import error, got %v", err)
	}
}

func TestRunImportRequiresInput(t *testing.T) {
	if err := runImport([]string{"-log-provider", "noop"}, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected missing -in to fail")
	}
}
