// Package themes resolves the primary and secondary colours the renderer
// paints buttons with. Colours come from explicit overrides, then from a
// go-theme manifest selection, then from built-in defaults.
package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

const (
	DefaultPrimaryColor   = "#030213"
	DefaultSecondaryColor = "#468B97"
)

// Theme is the resolved colour pair handed to the component renderer.
type Theme struct {
	Name           string
	Variant        string
	PrimaryColor   string
	SecondaryColor string
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{PrimaryColor: DefaultPrimaryColor, SecondaryColor: DefaultSecondaryColor}
}

// Config configures a Resolver.
type Config struct {
	PrimaryColor   string
	SecondaryColor string
	ManifestDir    string
	Name           string
	Variant        string
}

// ManifestLoader reads a go-theme manifest from a directory.
type ManifestLoader interface {
	Load(dir string) (*gotheme.Manifest, error)
}

type fsManifestLoader struct{}

func (fsManifestLoader) Load(dir string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(dir))
	if cleaned == "" || cleaned == "." {
		return nil, fmt.Errorf("themes: manifest directory required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// Token names consulted, in order, for each colour.
var (
	primaryTokens   = []string{"primary", "color.primary", "colors.primary", "primaryColor", "primary-color"}
	secondaryTokens = []string{"secondary", "color.secondary", "colors.secondary", "secondaryColor", "secondary-color"}
)

// Resolver produces the Theme for a render. It is safe for concurrent use.
type Resolver struct {
	cfg      Config
	loader   ManifestLoader
	registry *gotheme.MemoryRegistry
	logger   interfaces.Logger

	mu       sync.Mutex
	resolved *Theme
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithManifestLoader swaps the filesystem manifest loader.
func WithManifestLoader(loader ManifestLoader) Option {
	return func(r *Resolver) {
		if loader != nil {
			r.loader = loader
		}
	}
}

// WithLogger sets the logger that reports manifest failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a Resolver from cfg.
func NewResolver(cfg Config, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:      cfg,
		loader:   fsManifestLoader{},
		registry: gotheme.NewRegistry(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the theme, loading and selecting the manifest once.
func (r *Resolver) Resolve() (Theme, error) {
	if r == nil {
		return Default(), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved != nil {
		return *r.resolved, nil
	}

	theme := Default()
	if strings.TrimSpace(r.cfg.ManifestDir) != "" {
		selection, err := r.selectManifest()
		if err != nil {
			return Default(), err
		}
		applySelection(&theme, selection)
	}
	if c := strings.TrimSpace(r.cfg.PrimaryColor); c != "" {
		theme.PrimaryColor = c
	}
	if c := strings.TrimSpace(r.cfg.SecondaryColor); c != "" {
		theme.SecondaryColor = c
	}
	r.resolved = &theme
	return theme, nil
}

// ResolveOrDefault returns the resolved theme. A manifest failure is logged
// and the defaults are returned.
func (r *Resolver) ResolveOrDefault() Theme {
	theme, err := r.Resolve()
	if err != nil {
		r.logger.Warn("themes.resolve.failed", "manifest_dir", r.cfg.ManifestDir, "error", err)
		return Default()
	}
	return theme
}

func (r *Resolver) selectManifest() (*gotheme.Selection, error) {
	manifest, err := r.loader.Load(r.cfg.ManifestDir)
	if err != nil {
		return nil, fmt.Errorf("themes: load manifest from %s: %w", r.cfg.ManifestDir, err)
	}

	normalized := *manifest
	if name := strings.TrimSpace(r.cfg.Name); name != "" {
		normalized.Name = name
	}
	if strings.TrimSpace(normalized.Name) == "" {
		return nil, fmt.Errorf("themes: manifest name required")
	}
	if err := r.registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("themes: register manifest: %w", err)
	}

	selector := gotheme.Selector{
		Registry:       r.registry,
		DefaultTheme:   normalized.Name,
		DefaultVariant: strings.TrimSpace(r.cfg.Variant),
	}
	selection, err := selector.Select(normalized.Name, strings.TrimSpace(r.cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("themes: select %s: %w", normalized.Name, err)
	}
	return selection, nil
}

func applySelection(theme *Theme, selection *gotheme.Selection) {
	if selection == nil {
		return
	}
	theme.Name = selection.Theme
	theme.Variant = selection.Variant
	tokens := selection.Tokens()
	if value := firstToken(tokens, primaryTokens); value != "" {
		theme.PrimaryColor = value
	}
	if value := firstToken(tokens, secondaryTokens); value != "" {
		theme.SecondaryColor = value
	}
}

func firstToken(tokens map[string]string, names []string) string {
	for _, name := range names {
		if value := strings.TrimSpace(tokens[name]); value != "" {
			return value
		}
	}
	return ""
}
