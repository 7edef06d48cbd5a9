package di

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-sdui/internal/actions"
	editorcmd "github.com/goliatone/go-sdui/internal/commands/editor"
	"github.com/goliatone/go-sdui/internal/editor"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/logging/gologger"
	"github.com/goliatone/go-sdui/internal/mutation"
	"github.com/goliatone/go-sdui/internal/preview"
	"github.com/goliatone/go-sdui/internal/render"
	"github.com/goliatone/go-sdui/internal/render/htmlview"
	"github.com/goliatone/go-sdui/internal/runtimeconfig"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/internal/themes"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	manifestLoader themes.ManifestLoader
	registry       editorcmd.CommandRegistry
	initial        *schema.Schema
	now            func() time.Time

	themes   *themes.Resolver
	model    *mutation.Model
	executor *actions.Executor
	renderer *render.PageRenderer
	view     *htmlview.Writer
	session  *editor.Session
	commands *editorcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithManifestLoader overrides how theme manifests are read.
func WithManifestLoader(loader themes.ManifestLoader) Option {
	return func(c *Container) {
		if loader != nil {
			c.manifestLoader = loader
		}
	}
}

// WithCommandRegistry registers the editor command handlers with reg.
func WithCommandRegistry(reg editorcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithSchema seeds the editor session with doc instead of the default document.
func WithSchema(doc *schema.Schema) Option {
	return func(c *Container) {
		c.initial = doc
	}
}

// WithClock overrides the clock used for generated ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and builds the services.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{
		Config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureServices()
	if err := c.configureEditor(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "", "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = noopProvider{}
	}
	return nil
}

func (c *Container) configureServices() {
	themeOpts := []themes.Option{themes.WithLogger(logging.ThemesLogger(c.loggerProvider))}
	if c.manifestLoader != nil {
		themeOpts = append(themeOpts, themes.WithManifestLoader(c.manifestLoader))
	}
	c.themes = themes.NewResolver(themes.Config{
		PrimaryColor:   c.Config.Theme.PrimaryColor,
		SecondaryColor: c.Config.Theme.SecondaryColor,
		ManifestDir:    c.Config.Theme.ManifestDir,
		Name:           c.Config.Theme.Name,
		Variant:        c.Config.Theme.Variant,
	}, themeOpts...)

	c.model = mutation.New(
		mutation.WithClock(c.now),
		mutation.WithLogger(logging.MutationLogger(c.loggerProvider)),
	)
	c.executor = actions.NewExecutor(actions.WithLogger(logging.ActionsLogger(c.loggerProvider)))
	c.renderer = c.NewRenderer()
	c.view = htmlview.Must()
}

func (c *Container) configureEditor() error {
	initial := c.initial
	if initial == nil {
		initial = schema.Default(c.now())
	}
	c.session = editor.NewSession(editor.NewState(initial),
		editor.WithReducer(editor.NewReducer(c.model)),
		editor.WithLogger(logging.EditorLogger(c.loggerProvider)),
	)
	set, err := editorcmd.RegisterEditorCommands(c.registry, c.session, c.loggerProvider,
		editorcmd.WithCommandTimeout(c.Config.Editor.CommandTimeout),
	)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

// LoggerProvider returns the provider every module logger derives from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Themes returns the theme resolver.
func (c *Container) Themes() *themes.Resolver {
	return c.themes
}

// Mutations returns the schema mutation model.
func (c *Container) Mutations() *mutation.Model {
	return c.model
}

// Executor returns the action executor.
func (c *Container) Executor() *actions.Executor {
	return c.executor
}

// Renderer returns the shared page renderer.
func (c *Container) Renderer() *render.PageRenderer {
	return c.renderer
}

// NewRenderer returns a page renderer with its own form state.
func (c *Container) NewRenderer() *render.PageRenderer {
	return render.NewPageRenderer(
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
		render.WithThemeResolver(c.themes),
	)
}

// HTML returns the HTML writer.
func (c *Container) HTML() *htmlview.Writer {
	return c.view
}

// Session returns the editor session.
func (c *Container) Session() *editor.Session {
	return c.session
}

// Commands returns the editor command handlers.
func (c *Container) Commands() *editorcmd.HandlerSet {
	return c.commands
}

// NewPreviewServer builds a preview host for doc configured from Config.Preview.
// Each server owns a renderer so form state is not shared between hosts.
func (c *Container) NewPreviewServer(doc *schema.Schema) (*preview.Server, error) {
	return preview.NewServer(doc,
		preview.WithLogger(logging.PreviewLogger(c.loggerProvider)),
		preview.WithRenderer(c.NewRenderer()),
		preview.WithExecutor(c.executor),
		preview.WithModel(c.model),
		preview.WithTitle(c.Config.Render.Title),
		preview.WithLiveReload(c.Config.Preview.LiveReload),
		preview.WithCacheSize(c.Config.Preview.CacheSize),
		preview.WithStoredPageID(c.Config.Preview.StoredPageID),
		preview.WithClock(c.now),
	)
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
