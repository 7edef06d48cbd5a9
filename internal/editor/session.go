package editor

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// Listener receives every state accepted by a Session. Listeners run on the
// dispatching goroutine and must not dispatch to the same session.
type Listener func(State)

// Session serializes events against one editor state.
type Session struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int

	reducer *Reducer
	logger  interfaces.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithReducer sets the reducer used to apply events.
func WithReducer(reducer *Reducer) SessionOption {
	return func(s *Session) {
		if reducer != nil {
			s.reducer = reducer
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession starts a session on initial.
func NewSession(initial State, opts ...SessionOption) *Session {
	s := &Session{
		state:     initial,
		listeners: map[int]Listener{},
		reducer:   defaultReducer,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies event and notifies listeners of the accepted state. A
// rejected event leaves the state unchanged, except a failed import which
// returns the session to the idle phase.
func (s *Session) Dispatch(ctx context.Context, event Event) (State, error) {
	if err := ctx.Err(); err != nil {
		return s.State(), err
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	prev := s.state
	next, err := s.reducer.Reduce(prev, event)
	changed := err == nil || next.Phase != prev.Phase
	if changed {
		s.state = next
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, id := range slices.Sorted(maps.Keys(s.listeners)) {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	logger := logging.WithDocument(s.logger.WithContext(ctx), schemaID(next), next.CurrentPageID)
	if err != nil {
		logger.Warn("editor.event.rejected", "event", eventName(event), "error", err)
		if !changed {
			return next, err
		}
	} else {
		logger.Debug("editor.event.applied", "event", eventName(event))
	}

	for _, fn := range listeners {
		fn(next)
	}
	return next, err
}

// Subscribe registers fn and returns a function removing it.
func (s *Session) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func schemaID(state State) string {
	if state.Schema == nil {
		return ""
	}
	return state.Schema.ID
}
