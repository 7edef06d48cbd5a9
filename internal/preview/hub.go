package preview

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	clientBuffer   = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is pushed to every connected browser.
type Event struct {
	Type     string `json:"type"`
	SchemaID string `json:"schema_id,omitempty"`
	PageID   string `json:"page_id,omitempty"`
}

// EventReload asks clients to fetch the page again.
const EventReload = "reload"

// Hub fans events out to websocket clients.
type Hub struct {
	logger interfaces.Logger

	mu      sync.Mutex
	clients map[uuid.UUID]chan Event
}

// NewHub builds an empty hub.
func NewHub(logger interfaces.Logger) *Hub {
	return &Hub{
		logger:  logging.Ensure(logger),
		clients: map[uuid.UUID]chan Event{},
	}
}

// Broadcast queues event for every client. Slow clients whose buffer is
// full miss the event.
func (h *Hub) Broadcast(event Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	sent := 0
	for id, ch := range h.clients {
		select {
		case ch <- event:
			sent++
		default:
			h.logger.Warn("preview.ws.dropped", "client_id", id.String(), "event", event.Type)
		}
	}
	return sent
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register() (uuid.UUID, chan Event) {
	id := uuid.New()
	ch := make(chan Event, clientBuffer)
	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) unregister(id uuid.UUID) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and streams events until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("preview.ws.upgrade_failed", "error", err)
		return
	}
	defer conn.Close()

	id, events := h.register()
	defer h.unregister(id)
	logger := logging.WithFields(h.logger, map[string]any{"client_id": id.String()})
	logger.Debug("preview.ws.connected")

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Clients never send anything meaningful; the reader only notices closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			logger.Debug("preview.ws.disconnected")
			return
		case <-r.Context().Done():
			return
		case event := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				logger.Warn("preview.ws.write_failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
