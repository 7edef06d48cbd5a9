package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-sdui"
	"github.com/goliatone/go-sdui/cmd/internal/bootstrap"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/preview"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runPreview(ctx, os.Args[1:], os.Stdin); err != nil {
		log.Fatalf("sdui preview: %v", err)
	}
}

// app is a configured preview host that has not started listening yet.
type app struct {
	addr    string
	server  *preview.Server
	watcher *preview.Watcher
	logger  interfaces.Logger
}

func (a *app) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

func newApp(args []string, stdin io.Reader) (*app, error) {
	fs := flag.NewFlagSet("sdui-preview", flag.ContinueOnError)
	in := fs.String("in", "", "Schema file to serve (- for stdin, empty for the default document)")
	addr := fs.String("addr", "", "Listen address (defaults to SDUI_PREVIEW_ADDR or :8090)")
	watch := fs.Bool("watch", false, "Reload the schema file when it changes")
	page := fs.String("page", "", "Page to resume on when it exists")
	title := fs.String("title", "", "HTML document title")
	noReload := fs.Bool("no-live-reload", false, "Disable the websocket reload script")
	opts := bootstrap.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	path := strings.TrimSpace(*in)
	if *watch && (path == "" || path == "-") {
		return nil, errors.New("-watch requires a schema file")
	}

	opts.Configure = func(cfg *sdui.Config) {
		if v := strings.TrimSpace(*addr); v != "" {
			cfg.Preview.Addr = v
		}
		if *watch {
			cfg.Preview.Watch = true
		}
		if v := strings.TrimSpace(*page); v != "" {
			cfg.Preview.StoredPageID = v
		}
		if v := strings.TrimSpace(*title); v != "" {
			cfg.Render.Title = v
		}
		if *noReload {
			cfg.Preview.LiveReload = false
		}
	}
	resources, err := moduleBuilder(*opts)
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	module := resources.Module

	var doc *sdui.Schema
	if path != "" {
		raw, err := bootstrap.ReadInput(path, stdin)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		imported, err := module.Import(raw)
		if err != nil {
			return nil, err
		}
		doc = imported.Schema
	}

	server, err := module.Preview(doc)
	if err != nil {
		return nil, fmt.Errorf("build preview server: %w", err)
	}

	a := &app{addr: resources.Config.Preview.Addr, server: server, logger: resources.Logger}
	if resources.Config.Preview.Watch && path != "" && path != "-" {
		watcher, err := preview.Watch(path, server,
			preview.WithDebounce(resources.Config.Preview.WatchDebounce),
			preview.WithWatchLogger(logging.PreviewLogger(module.Container().LoggerProvider())),
		)
		if err != nil {
			return nil, err
		}
		a.watcher = watcher
	}
	return a, nil
}

func runPreview(ctx context.Context, args []string, stdin io.Reader) error {
	a, err := newApp(args, stdin)
	if err != nil {
		return err
	}
	defer a.Close()

	httpServer := &http.Server{
		Addr:              a.addr,
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("sdui.preview.listening", "addr", a.addr, "session_id", a.server.SessionID().String())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("sdui.preview.shutdown")
	return httpServer.Shutdown(shutdownCtx)
}
