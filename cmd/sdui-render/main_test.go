package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const document = `{
  "id": "app",
  "navigation": {"initialPageId": "second"},
  "pages": [
    {"id": "first", "title": "First", "components": []},
    {"id": "second", "title": "Second", "components": [
      {"id": "hello", "type": "heading", "props": {"text": "Hello there"}},
      {"id": "mystery", "type": "carousel", "props": {}}
    ]}
  ]
}`

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return path
}

func TestRunRenderDefaultsToInitialPage(t *testing.T) {
	var stdout bytes.Buffer
	err := runRender([]string{"-in", writeDocument(t), "-title", "Rendered", "-log-provider", "noop"}, nil, &stdout)
	if err != nil {
		t.Fatalf("runRender returned error: %v", err)
	}
	html := stdout.String()
	if !strings.Contains(html, `data-page-id="second"`) {
		t.Fatalf("expected initial page to be rendered, got %s", html)
	}
	if !strings.Contains(html, "<title>Rendered</title>") {
		t.Fatalf("expected title override in output")
	}
	if !strings.Contains(html, "Hello there") {
		t.Fatalf("expected heading text in output")
	}
}

func TestRunRenderMissingPageRendersPlaceholder(t *testing.T) {
	var stdout bytes.Buffer
	err := runRender([]string{"-in", writeDocument(t), "-page", "nowhere", "-log-provider", "noop"}, nil, &stdout)
	if err != nil {
		t.Fatalf("runRender returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), `Page &#34;nowhere&#34; not found in schema`) {
		t.Fatalf("expected not-found placeholder, got %s", stdout.String())
	}
}

func TestRunRenderJSONTree(t *testing.T) {
	out := filepath.Join(t.TempDir(), "page.json")
	err := runRender([]string{"-in", writeDocument(t), "-page", "second", "-format", "json", "-out", out, "-log-provider", "noop"}, nil, nil)
	if err != nil {
		t.Fatalf("runRender returned error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var node struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string `json:"kind"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		t.Fatalf("decode node tree: %v", err)
	}
	if node.Kind != "page" {
		t.Fatalf("expected page root, got %q", node.Kind)
	}
	if len(node.Children) != 2 {
		t.Fatalf("expected two component wrappers, got %d", len(node.Children))
	}
}

func TestRunRenderRejectsUnknownFormat(t *testing.T) {
	if err := runRender([]string{"-in", writeDocument(t), "-format", "pdf"}, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected unsupported format to fail")
	}
}
