package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrLoggingProviderUnknown = errors.New("sdui config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sdui config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sdui config: logging format is invalid")

// ErrThemeColorInvalid rejects colours that are not #rgb or #rrggbb hex values.
var ErrThemeColorInvalid = errors.New("sdui config: theme colour must be a hex value")
var ErrPreviewAddrRequired = errors.New("sdui config: preview address is required")
var ErrPreviewCacheSizeInvalid = errors.New("sdui config: preview cache size must be positive")
var ErrCommandTimeoutInvalid = errors.New("sdui config: command timeout must be zero or positive")

// Config aggregates runtime options for the SDUI module and its tools.
type Config struct {
	Logging LoggingConfig
	Theme   ThemeConfig
	Render  RenderConfig
	Preview PreviewConfig
	Editor  EditorConfig
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ThemeConfig feeds the theme resolver. Explicit colours win over manifest
// tokens.
type ThemeConfig struct {
	PrimaryColor   string
	SecondaryColor string
	ManifestDir    string
	Name           string
	Variant        string
}

// RenderConfig controls HTML output.
type RenderConfig struct {
	Title string
}

// PreviewConfig controls the preview host.
type PreviewConfig struct {
	Addr          string
	Watch         bool
	LiveReload    bool
	CacheSize     int
	WatchDebounce time.Duration
	// StoredPageID is the page a preview resumes on when it still exists.
	StoredPageID string
}

// EditorConfig controls command execution.
type EditorConfig struct {
	CommandTimeout time.Duration
}

// DefaultConfig returns the defaults used by the CLIs.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		Theme: ThemeConfig{},
		Render: RenderConfig{
			Title: "SDUI Preview",
		},
		Preview: PreviewConfig{
			Addr:          ":8090",
			LiveReload:    true,
			CacheSize:     128,
			WatchDebounce: 100 * time.Millisecond,
		},
		Editor: EditorConfig{
			CommandTimeout: 30 * time.Second,
		},
	}
}

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	for _, colour := range []string{cfg.Theme.PrimaryColor, cfg.Theme.SecondaryColor} {
		if colour = strings.TrimSpace(colour); colour != "" && !hexColour.MatchString(colour) {
			return fmt.Errorf("%w: %s", ErrThemeColorInvalid, colour)
		}
	}
	if strings.TrimSpace(cfg.Preview.Addr) == "" {
		return ErrPreviewAddrRequired
	}
	if cfg.Preview.CacheSize <= 0 {
		return fmt.Errorf("%w: %d", ErrPreviewCacheSizeInvalid, cfg.Preview.CacheSize)
	}
	if cfg.Editor.CommandTimeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
