package bootstrap

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-sdui"
	"github.com/goliatone/go-sdui/internal/di"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// Options captures configuration shared by the sdui CLIs.
type Options struct {
	// EnvFile is a dotenv file applied before flags. When empty, .env is
	// loaded if present.
	EnvFile        string
	LogProvider    string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
	// Configure runs after env and log overrides, before validation.
	Configure func(*sdui.Config)
}

// Module wraps the sdui module, its effective configuration and a CLI logger.
type Module struct {
	Module *sdui.Module
	Config sdui.Config
	Logger interfaces.Logger
}

// BuildModule constructs an sdui module from defaults, dotenv files,
// SDUI_* variables and the supplied overrides, in that order.
func BuildModule(opts Options) (*Module, error) {
	var files []string
	if v := strings.TrimSpace(opts.EnvFile); v != "" {
		files = append(files, v)
	}
	cfg, err := sdui.LoadEnv(sdui.DefaultConfig(), files...)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if v := strings.TrimSpace(opts.LogProvider); v != "" {
		cfg.Logging.Provider = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(opts.LogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if opts.Configure != nil {
		opts.Configure(&cfg)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := sdui.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise sdui module: %w", err)
	}

	return &Module{
		Module: module,
		Config: cfg,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "sdui.cli"),
	}, nil
}

// RegisterFlags binds the shared logging and env flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Options {
	opts := &Options{}
	fs.StringVar(&opts.EnvFile, "env-file", "", "Dotenv file to load (defaults to .env when present)")
	fs.StringVar(&opts.LogProvider, "log-provider", "", "Logger provider: gologger or noop")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	fs.StringVar(&opts.LogFormat, "log-format", "", "Log format: console, json or pretty")
	return opts
}

// ReadInput reads path, or stdin when path is "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// WriteOutput writes data to path, or to stdout when path is empty or "-".
func WriteOutput(path string, stdout io.Writer, data []byte) error {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
