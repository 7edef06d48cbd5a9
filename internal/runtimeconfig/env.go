package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrEnvValueInvalid reports an SDUI_* variable that could not be parsed.
var ErrEnvValueInvalid = errors.New("sdui config: environment value is invalid")

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv loads the given dotenv files (".env" when none are named; missing
// files are skipped) and applies SDUI_* overrides from the process
// environment. Variables already set in the environment win over dotenv files.
func LoadEnv(cfg Config, files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("sdui config: load %s: %w", file, err)
		}
	}
	return ApplyEnv(cfg, os.LookupEnv)
}

// ApplyEnv overlays SDUI_* values read through lookup onto cfg.
func ApplyEnv(cfg Config, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return cfg, nil
	}
	str := func(key string, dst *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	str("SDUI_LOG_PROVIDER", &cfg.Logging.Provider)
	str("SDUI_LOG_LEVEL", &cfg.Logging.Level)
	str("SDUI_LOG_FORMAT", &cfg.Logging.Format)
	str("SDUI_THEME_PRIMARY", &cfg.Theme.PrimaryColor)
	str("SDUI_THEME_SECONDARY", &cfg.Theme.SecondaryColor)
	str("SDUI_THEME_DIR", &cfg.Theme.ManifestDir)
	str("SDUI_THEME_NAME", &cfg.Theme.Name)
	str("SDUI_THEME_VARIANT", &cfg.Theme.Variant)
	str("SDUI_RENDER_TITLE", &cfg.Render.Title)
	str("SDUI_PREVIEW_ADDR", &cfg.Preview.Addr)
	str("SDUI_PREVIEW_PAGE", &cfg.Preview.StoredPageID)

	if value, ok := lookup("SDUI_LOG_FOCUS"); ok && strings.TrimSpace(value) != "" {
		cfg.Logging.Focus = splitList(value)
	}
	if err := boolEnv(lookup, "SDUI_LOG_ADD_SOURCE", &cfg.Logging.AddSource); err != nil {
		return cfg, err
	}
	if err := boolEnv(lookup, "SDUI_PREVIEW_WATCH", &cfg.Preview.Watch); err != nil {
		return cfg, err
	}
	if err := boolEnv(lookup, "SDUI_PREVIEW_LIVE_RELOAD", &cfg.Preview.LiveReload); err != nil {
		return cfg, err
	}
	if value, ok := lookup("SDUI_PREVIEW_CACHE_SIZE"); ok && strings.TrimSpace(value) != "" {
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return cfg, fmt.Errorf("%w: SDUI_PREVIEW_CACHE_SIZE=%q", ErrEnvValueInvalid, value)
		}
		cfg.Preview.CacheSize = size
	}
	if err := durationEnv(lookup, "SDUI_PREVIEW_WATCH_DEBOUNCE", &cfg.Preview.WatchDebounce); err != nil {
		return cfg, err
	}
	if err := durationEnv(lookup, "SDUI_COMMAND_TIMEOUT", &cfg.Editor.CommandTimeout); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func boolEnv(lookup LookupFunc, key string, dst *bool) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrEnvValueInvalid, key, value)
	}
	*dst = parsed
	return nil
}

func durationEnv(lookup LookupFunc, key string, dst *time.Duration) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrEnvValueInvalid, key, value)
	}
	*dst = parsed
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
