package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types published on the websocket stream.
const (
	EventTicketAnalyzed  = "ticket_analyzed"
	EventTicketAssigned  = "ticket_assigned"
	EventTicketCompleted = "ticket_completed"
	EventWebhookReceived = "webhook_received"
)

// Event is one message on the /ws/events stream.
type Event struct {
	Type        string    `json:"type"`
	TicketID    string    `json:"ticket_id,omitempty"`
	DeveloperID string    `json:"developer_id,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	At          time.Time `json:"at"`
}

// Hub fans out events to connected websocket clients. Slow clients are
// disconnected rather than allowed to block publishers.
type Hub struct {
	mu       sync.Mutex
	clients  map[*hubClient]bool
	upgrader websocket.Upgrader
	logger   *slog.Logger
	closed   bool
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a websocket event hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*hubClient]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Publish broadcasts an event to all connected clients.
func (h *Hub) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Client is not keeping up; drop it.
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ServeWS upgrades the request and streams events until the client
// disconnects or the hub closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &hubClient{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[client] = true
	h.mu.Unlock()

	h.logger.Debug("websocket client connected", "remote", conn.RemoteAddr().String())

	go h.writeLoop(client)
	h.readLoop(client)
}

// writeLoop pushes published events to one client.
func (h *Hub) writeLoop(client *hubClient) {
	for payload := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
	client.conn.Close()
}

// readLoop discards inbound messages and detects disconnects.
func (h *Hub) readLoop(client *hubClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(client)
}

func (h *Hub) remove(client *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
}

// Close disconnects all clients. The hub accepts no new connections after.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
