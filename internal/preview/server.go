// Package preview hosts a rendered document over HTTP, executing button
// tokens server side and pushing reload events to connected browsers.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-sdui/internal/actions"
	"github.com/goliatone/go-sdui/internal/forms"
	"github.com/goliatone/go-sdui/internal/identity"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/mutation"
	"github.com/goliatone/go-sdui/internal/navigation"
	"github.com/goliatone/go-sdui/internal/render"
	"github.com/goliatone/go-sdui/internal/render/htmlview"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

const (
	// DefaultCacheSize bounds the number of cached page documents.
	DefaultCacheSize = 128
	// DefaultTitle is the document title when none is configured.
	DefaultTitle = "SDUI Preview"

	maxSchemaBytes = 8 << 20
	maxActionBytes = 1 << 20
)

// ErrEmptyToken is returned when an action request carries no token.
var ErrEmptyToken = errors.New("preview: action token required")

// ActionRequest is the body of POST /actions.
type ActionRequest struct {
	Token string            `json:"token"`
	Form  map[string]string `json:"form,omitempty"`
}

// ActionResponse is the body returned by POST /actions.
type ActionResponse struct {
	Navigate     bool                  `json:"navigate"`
	PageID       string                `json:"page_id"`
	History      []string              `json:"history"`
	Notification *actions.Notification `json:"notification,omitempty"`
	Issues       []forms.Issue         `json:"issues,omitempty"`
}

// State is the body returned by GET /state.
type State struct {
	SessionID string     `json:"session_id"`
	SchemaID  string     `json:"schema_id"`
	PageID    string     `json:"page_id"`
	History   []string   `json:"history"`
	Clients   int        `json:"clients"`
	Cache     CacheStats `json:"cache"`
}

// Server serves one document. All document, navigation and form state is
// guarded by a single mutex.
type Server struct {
	logger       interfaces.Logger
	renderer     *render.PageRenderer
	executor     *actions.Executor
	model        *mutation.Model
	view         *htmlview.Writer
	hub          *Hub
	title        string
	liveReload   bool
	cacheSize    int
	storedPageID string
	now          func() time.Time
	sessionID    uuid.UUID

	mu          sync.Mutex
	doc         *schema.Schema
	fingerprint string
	nav         *navigation.Controller
	cache       *renderCache
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer replaces the page renderer.
func WithRenderer(renderer *render.PageRenderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithExecutor replaces the action executor.
func WithExecutor(executor *actions.Executor) Option {
	return func(s *Server) {
		if executor != nil {
			s.executor = executor
		}
	}
}

// WithModel sets the mutation model used to import uploaded documents.
func WithModel(model *mutation.Model) Option {
	return func(s *Server) {
		if model != nil {
			s.model = model
		}
	}
}

// WithTitle sets the HTML document title.
func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.title = title
		}
	}
}

// WithLiveReload toggles the websocket reload script.
func WithLiveReload(enabled bool) Option {
	return func(s *Server) {
		s.liveReload = enabled
	}
}

// WithCacheSize bounds the render cache. Zero disables caching.
func WithCacheSize(size int) Option {
	return func(s *Server) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithStoredPageID restores a previously viewed page when it still exists.
func WithStoredPageID(pageID string) Option {
	return func(s *Server) {
		s.storedPageID = pageID
	}
}

// WithClock overrides the clock used for export file names.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer builds a Server for doc. A nil doc serves the default document.
func NewServer(doc *schema.Schema, opts ...Option) (*Server, error) {
	s := &Server{
		logger:     logging.NoOp(),
		title:      DefaultTitle,
		liveReload: true,
		cacheSize:  DefaultCacheSize,
		now:        time.Now,
		sessionID:  uuid.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = render.NewPageRenderer(render.WithLogger(s.logger))
	}
	if s.executor == nil {
		s.executor = actions.NewExecutor(actions.WithLogger(s.logger))
	}
	if s.model == nil {
		s.model = mutation.New(mutation.WithLogger(s.logger))
	}
	s.logger = logging.WithFields(s.logger, map[string]any{"session_id": s.sessionID.String()})

	view, err := htmlview.New()
	if err != nil {
		return nil, err
	}
	s.view = view

	cache, err := newRenderCache(s.cacheSize)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	s.hub = NewHub(s.logger)

	if doc == nil {
		doc = schema.Default(s.now())
	}
	s.doc = doc
	s.fingerprint = s.fingerprintOf(doc)
	s.nav = navigation.NewForPreview(doc, s.storedPageID)
	return s, nil
}

// Handler returns the HTTP routes of the preview host.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /actions", s.handleAction)
	mux.HandleFunc("GET /schema", s.handleExport)
	mux.HandleFunc("POST /schema", s.handleImport)
	mux.HandleFunc("GET /state", s.handleState)
	mux.Handle("GET /ws", s.hub)
	return mux
}

// Hub returns the live reload hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// SessionID identifies this server instance in logs and state responses.
func (s *Server) SessionID() uuid.UUID {
	return s.sessionID
}

// Schema returns a copy of the served document.
func (s *Server) Schema() *schema.Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// State reports the navigation position and cache usage.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		SessionID: s.sessionID.String(),
		SchemaID:  s.doc.ID,
		PageID:    s.nav.Current(),
		History:   s.nav.History(),
		Clients:   s.hub.Clients(),
		Cache:     s.cache.stats(),
	}
}

// SetSchema replaces the served document. The current page is kept when it
// still exists; otherwise navigation restarts at the document's initial page.
// Connected browsers are told to reload.
func (s *Server) SetSchema(doc *schema.Schema) {
	if doc == nil {
		return
	}
	s.mu.Lock()
	current := s.nav.Current()
	s.doc = doc
	s.fingerprint = s.fingerprintOf(doc)
	s.cache.purge()
	s.nav = navigation.NewForPreview(doc, current)
	pageID := s.nav.Current()
	s.mu.Unlock()

	logging.WithDocument(s.logger, doc.ID, pageID).Info("preview.schema.loaded", "pages", len(doc.Pages))
	s.hub.Broadcast(Event{Type: EventReload, SchemaID: doc.ID, PageID: pageID})
}

// Load imports raw and serves the result. On failure the previous document
// stays current and the *mutation.ImportError is returned.
func (s *Server) Load(raw []byte) error {
	imported, err := s.model.ImportSchema(raw)
	if err != nil {
		return err
	}
	s.SetSchema(imported.Schema)
	return nil
}

// Render writes the HTML document for the current page.
func (s *Server) Render(out io.Writer) error {
	body, err := s.renderCurrent()
	if err != nil {
		return err
	}
	_, err = out.Write(body)
	return err
}

func (s *Server) renderCurrent() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pageID := s.nav.Current()
	root := s.renderer.Render(s.doc, pageID, nil)

	// Typed values end up in the markup, so only pristine pages are cached.
	cacheable := s.fingerprint != "" && len(s.renderer.FormData()) == 0
	history := s.nav.History()
	key := cacheKey(s.fingerprint, history)
	if cacheable {
		if body, ok := s.cache.get(key); ok {
			return body, nil
		}
	}

	var buf bytes.Buffer
	err := s.view.WriteDocument(&buf, htmlview.Document{
		Title:      s.title,
		SchemaID:   s.doc.ID,
		PageID:     pageID,
		History:    history,
		Root:       root,
		LiveReload: s.liveReload,
		ActionsURL: "/actions",
	})
	if err != nil {
		return nil, err
	}
	body := buf.Bytes()
	if cacheable {
		s.cache.add(key, body)
	}
	return body, nil
}

// Execute runs token against the current page with form merged into the
// page's form values, then applies any navigation intent.
func (s *Server) Execute(ctx context.Context, req ActionRequest) (ActionResponse, error) {
	if req.Token == "" {
		return ActionResponse{}, ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pageID := s.nav.Current()
	if s.renderer.CurrentPageID() != pageID {
		s.renderer.Render(s.doc, pageID, nil)
	}
	for id, value := range req.Form {
		s.renderer.SetFormValue(id, value)
	}

	result := s.executor.Execute(ctx, actions.Token(req.Token), actions.ActionContext{
		Schema:   s.doc,
		PageID:   pageID,
		FormData: s.renderer.FormData(),
	})
	navigated := s.nav.Navigate(result.Navigate)

	logging.WithDocument(s.logger, s.doc.ID, pageID).Debug("preview.action.executed",
		"token", req.Token,
		"navigated", navigated,
		"depth", s.nav.Depth(),
	)

	return ActionResponse{
		Navigate:     navigated,
		PageID:       s.nav.Current(),
		History:      s.nav.History(),
		Notification: result.Notification,
		Issues:       result.Issues,
	}, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body, err := s.renderCurrent()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxActionBytes))
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, r, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid action request").
			WithCode(goerrors.CodeBadRequest))
		return
	}
	resp, err := s.Execute(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc := s.Schema()
	body, err := schema.Export(doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Query().Get("download") != "" {
		name := mutation.ExportFileName(doc, s.now())
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	_, _ = w.Write(body)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSchemaBytes))
	if err != nil {
		s.writeError(w, r, goerrors.Wrap(err, goerrors.CategoryBadInput, "unreadable schema body").
			WithCode(goerrors.CodeBadRequest))
		return
	}
	if err := s.Load(raw); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.State())
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.State())
}

func (s *Server) fingerprintOf(doc *schema.Schema) string {
	id, err := identity.Fingerprint(doc)
	if err != nil {
		s.logger.Warn("preview.fingerprint.failed", "schema_id", doc.ID, "error", err)
		return ""
	}
	return id.String()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := httpError(err)
	s.logger.WithContext(r.Context()).Warn("preview.request.failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", mapped.Code,
		"error", err,
	)
	writeJSON(w, mapped.Code, mapped.ToErrorResponse(false, nil))
}

func httpError(err error) *goerrors.Error {
	var importErr *mutation.ImportError
	switch {
	case errors.As(err, &importErr):
		return importErr.Categorized().WithCode(goerrors.CodeBadRequest)
	case errors.Is(err, ErrEmptyToken):
		return goerrors.New(err.Error(), goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
	}
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	if mapped.Code == 0 {
		mapped.Code = goerrors.CodeInternal
	}
	return mapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
