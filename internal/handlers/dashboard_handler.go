package handlers

import (
	"context"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/middleware"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/gofiber/fiber/v2"
)

type dashboardBuilder interface {
	Build(ctx context.Context, identity *models.Identity) *models.Dashboard
}

type DashboardHandler struct {
	builder dashboardBuilder
}

func NewDashboardHandler(builder dashboardBuilder) *DashboardHandler {
	return &DashboardHandler{builder: builder}
}

// GetDashboard never fails once authenticated; missing data comes back as
// empty defaults.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(h.builder.Build(c.Context(), identity))
}
