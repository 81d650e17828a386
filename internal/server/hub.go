package server

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/observability"
)

var upgrader = websocket.Upgrader{
	// The SVG view is served from arbitrary origins during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Notification is the JSON message pushed to websocket subscribers
// after every editor mutation.
type Notification struct {
	Type     string `json:"type"`
	Node     int    `json:"node,omitempty"`
	Nodes    int    `json:"nodes"`
	Selected int    `json:"selected"`
}

func changeNotification(ev editor.Event, ed *editor.Editor) Notification {
	return Notification{
		Type:     string(ev.Kind),
		Node:     int(ev.Node),
		Nodes:    ed.Len(),
		Selected: int(ed.Selected()),
	}
}

// client wraps a websocket connection with a write mutex. Gorilla
// connections allow only one concurrent writer, and broadcasts can
// race with pings.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks websocket subscribers and fans change notifications out
// to all of them.
type Hub struct {
	logger *log.Logger

	mu      sync.Mutex
	clients map[string]*client
	closed  bool
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
	}
}

// HandleSubscribe upgrades the request to a websocket and registers
// the client until the connection drops.
func (h *Hub) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade", "err", err)
		return
	}

	id := uuid.NewString()
	c := &client{conn: conn}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[id] = c
	h.mu.Unlock()

	observability.Server().OnSubscribe(id)
	h.logger.Debug("ws subscribe", "client", id)

	// Clients never send application messages; the read loop exists to
	// detect disconnects and honor close frames.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(id)
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if !ok {
		return
	}
	_ = c.conn.Close()
	observability.Server().OnUnsubscribe(id)
	h.logger.Debug("ws unsubscribe", "client", id)
}

// Broadcast sends a notification to every connected client. Clients
// whose writes fail are dropped.
func (h *Hub) Broadcast(n Notification) {
	h.mu.Lock()
	targets := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		targets[id] = c
	}
	h.mu.Unlock()

	for id, c := range targets {
		if err := c.send(n); err != nil {
			h.logger.Debug("ws send failed", "client", id, "err", err)
			h.remove(id)
		}
	}
	observability.Server().OnBroadcast(len(targets))
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close drops all clients and rejects future subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for id, c := range clients {
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"))
		_ = c.conn.Close()
		observability.Server().OnUnsubscribe(id)
	}
}
