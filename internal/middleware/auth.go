package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/services"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the fiber locals key holding the caller's *models.Identity.
const IdentityKey = "identity"

type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// AuthRequired resolves the bearer token into an identity and stores it for
// later handlers. Websocket upgrades may pass the token as ?access_token=
// because browsers cannot set headers on them.
func AuthRequired(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errMessage := bearerToken(c)
		if errMessage != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": errMessage,
			})
		}

		identity, err := resolver.Resolve(c.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidSession) {
				log.Printf("auth: resolve session: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to verify session",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthRequired.
func CurrentIdentity(c *fiber.Ctx) (*models.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(*models.Identity)
	return identity, ok && identity != nil
}

// SetIdentity stores identity the same way AuthRequired does.
func SetIdentity(c *fiber.Ctx, identity *models.Identity) {
	c.Locals(IdentityKey, identity)
}

func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if authHeader == "" {
		if websocket.IsWebSocketUpgrade(c) {
			if token := strings.TrimSpace(c.Query("access_token")); token != "" {
				return token, ""
			}
		}
		return "", "Missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}
