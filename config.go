package sdui

import "github.com/goliatone/go-sdui/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrThemeColorInvalid       = runtimeconfig.ErrThemeColorInvalid
	ErrPreviewAddrRequired     = runtimeconfig.ErrPreviewAddrRequired
	ErrPreviewCacheSizeInvalid = runtimeconfig.ErrPreviewCacheSizeInvalid
	ErrCommandTimeoutInvalid   = runtimeconfig.ErrCommandTimeoutInvalid
	ErrEnvValueInvalid         = runtimeconfig.ErrEnvValueInvalid
)

type (
	Config        = runtimeconfig.Config
	LoggingConfig = runtimeconfig.LoggingConfig
	ThemeConfig   = runtimeconfig.ThemeConfig
	RenderConfig  = runtimeconfig.RenderConfig
	PreviewConfig = runtimeconfig.PreviewConfig
	EditorConfig  = runtimeconfig.EditorConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadEnv applies .env files and SDUI_* environment overrides to cfg.
func LoadEnv(cfg Config, files ...string) (Config, error) {
	return runtimeconfig.LoadEnv(cfg, files...)
}
