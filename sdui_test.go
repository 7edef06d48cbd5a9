package sdui_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-sdui"
	editorcmd "github.com/goliatone/go-sdui/internal/commands/editor"
)

const legacyDocument = `{
  "success": true,
  "data": {
    "id": "shop",
    "name": "Shop",
    "navigation": {"initialPageId": "cart"},
    "pages": [
      {"id": "home", "title": "Home", "components": [
        {"id": "go", "type": "button", "props": {"title": "Cart"}, "action": "@pushPage:cart"}
      ]},
      {"id": "cart", "title": "Cart", "components": []}
    ]
  }
}`

func newModule(t *testing.T) *sdui.Module {
	t.Helper()
	cfg := sdui.DefaultConfig()
	cfg.Logging.Provider = "noop"
	module, err := sdui.New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return module
}

func TestConfigValidateRejectsBadColour(t *testing.T) {
	cfg := sdui.DefaultConfig()
	cfg.Theme.PrimaryColor = "red"
	if err := cfg.Validate(); !errors.Is(err, sdui.ErrThemeColorInvalid) {
		t.Fatalf("expected ErrThemeColorInvalid, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := sdui.DefaultConfig()
	cfg.Preview.CacheSize = 0
	if _, err := sdui.New(cfg); !errors.Is(err, sdui.ErrPreviewCacheSizeInvalid) {
		t.Fatalf("expected ErrPreviewCacheSizeInvalid, got %v", err)
	}
}

func TestModuleImportExport(t *testing.T) {
	module := newModule(t)

	imported, err := module.Import([]byte(legacyDocument))
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if imported.InitialPageID != "home" {
		t.Fatalf("expected initial page home, got %q", imported.InitialPageID)
	}

	out, err := module.Export(imported.Schema)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if strings.Contains(string(out), `"success"`) {
		t.Fatalf("expected flattened export, got %s", out)
	}
	if !strings.Contains(string(out), `"initialPageId": "cart"`) {
		t.Fatalf("expected navigation to survive export, got %s", out)
	}
}

func TestModuleImportRejectsGarbage(t *testing.T) {
	module := newModule(t)

	_, err := module.Import([]byte("not json"))
	var importErr *sdui.ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
}

func TestModuleRenderHTMLUsesInitialPage(t *testing.T) {
	module := newModule(t)
	imported, err := module.Import([]byte(legacyDocument))
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := module.RenderHTML(&buf, imported.Schema, ""); err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `data-page-id="cart"`) {
		t.Fatalf("expected navigation.initialPageId to be rendered")
	}
	if !strings.Contains(html, `data-history="home,cart"`) {
		t.Fatalf("expected history seeded from the first page")
	}
	if strings.Contains(html, "WebSocket") {
		t.Fatalf("standalone render must not include live reload")
	}
}

func TestModuleExecuteNavigation(t *testing.T) {
	module := newModule(t)
	imported, err := module.Import([]byte(legacyDocument))
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	var tokens []sdui.Token
	node := module.Render(imported.Schema, "home", func(token sdui.Token) { tokens = append(tokens, token) })
	if node == nil || len(node.Children) == 0 {
		t.Fatalf("expected rendered children")
	}

	result := module.Execute(context.Background(), "@pushPage:cart", imported.Schema, "home", nil)
	if result.Navigate == nil || result.Navigate.PageID != "cart" {
		t.Fatalf("expected push to cart, got %#v", result.Navigate)
	}
}

func TestModuleCommandsDriveEditor(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	if err := module.Commands().AddPage.Execute(ctx, editorcmd.AddPageCommand{}); err != nil {
		t.Fatalf("AddPage returned error: %v", err)
	}
	state := module.Editor().State()
	if len(state.Schema.Pages) != 2 {
		t.Fatalf("expected two pages, got %d", len(state.Schema.Pages))
	}
	if state.CurrentPageID != state.Schema.Pages[1].ID {
		t.Fatalf("expected the new page to be current, got %q", state.CurrentPageID)
	}
}

func TestModulePreviewServesDocument(t *testing.T) {
	module := newModule(t)
	srv, err := module.Preview(nil)
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}
	if srv.State().PageID != "welcome" {
		t.Fatalf("expected default welcome page, got %q", srv.State().PageID)
	}
}
