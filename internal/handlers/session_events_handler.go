package handlers

import (
	"github.com/dreluiss/pulseon-mobile-evolve/internal/middleware"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	sessionws "github.com/dreluiss/pulseon-mobile-evolve/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// SessionEventsHandler streams session changes of the signed-in user over a
// websocket.
type SessionEventsHandler struct {
	hub *sessionws.Hub
}

func NewSessionEventsHandler(hub *sessionws.Hub) *SessionEventsHandler {
	return &SessionEventsHandler{hub: hub}
}

// Upgrade must run after middleware.AuthRequired. It rejects plain HTTP
// requests and hands the identity to the websocket connection.
func (h *SessionEventsHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}
	if _, ok := middleware.CurrentIdentity(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.Next()
}

func (h *SessionEventsHandler) HandleWebSocket(conn *websocket.Conn) {
	identity, ok := conn.Locals(middleware.IdentityKey).(*models.Identity)
	if !ok || identity == nil {
		_ = conn.Close()
		return
	}

	client := sessionws.NewClient(h.hub, conn, identity)
	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}
