package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
)

// AnalyticsHandler exposes read-only dashboard projections.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard GET /analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.analytics.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}
