package sessionws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	websocket "github.com/gofiber/contrib/websocket"
)

// Hub fans session events out to every open connection of the affected
// user. All client bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan models.SessionEvent
	quit       chan struct{}
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	userID    int64
	sessionID string
	send      chan []byte
}

type Message struct {
	Type      string `json:"type"`
	UserID    int64  `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan models.SessionEvent, 64),
		quit:       make(chan struct{}),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, identity *models.Identity) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		userID:    identity.UserID,
		sessionID: identity.SessionID,
		send:      make(chan []byte, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			h.remove(client)
		case event := <-h.broadcast:
			h.deliver(event)
		case <-h.quit:
			for _, set := range h.clients {
				for client := range set {
					close(client.send)
				}
			}
			h.clients = make(map[int64]map[*Client]struct{})
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

// Register hands client to the hub. After Stop the client is closed
// instead so its write pump returns.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.quit:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// Publish queues event for delivery. It never blocks the caller; when the
// queue is full the event is dropped and logged.
func (h *Hub) Publish(event models.SessionEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("session hub: dropping %s event for user %d", event.Type, event.UserID)
	}
}

func (h *Hub) deliver(event models.SessionEvent) {
	payload, err := json.Marshal(Message{
		Type:      string(event.Type),
		UserID:    event.UserID,
		SessionID: event.SessionID,
		Timestamp: event.At.UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("session hub encode event: %v", err)
		return
	}

	set, ok := h.clients[event.UserID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- payload:
		default:
			h.remove(client)
			continue
		}
		if endsSession(event, client) {
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := set[client]; exists {
		delete(set, client)
		close(client.send)
	}
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

// endsSession reports whether the connection's own session is gone after
// event, in which case the hub hangs up once the event is written.
func endsSession(event models.SessionEvent, client *Client) bool {
	switch event.Type {
	case models.SessionPasswordReset:
		return true
	case models.SessionSignedOut:
		return event.SessionID == client.sessionID
	}
	return false
}

// ReadPump drains incoming frames until the peer goes away. The channel is
// push-only, so frame contents are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
