package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/observability"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
)

// AdminHandler exposes snapshot persistence and operational counters.
type AdminHandler struct {
	service *service.HelpdeskService
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(helpdesk *service.HelpdeskService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{service: helpdesk, metrics: metrics}
}

// SaveSnapshot POST /admin/snapshot/save.
func (h *AdminHandler) SaveSnapshot(c *fiber.Ctx) error {
	if _, err := requireOperator(c); err != nil {
		return err
	}
	if err := h.service.SaveSnapshot(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"saved": true}})
}

// LoadSnapshot POST /admin/snapshot/load.
func (h *AdminHandler) LoadSnapshot(c *fiber.Ctx) error {
	if _, err := requireOperator(c); err != nil {
		return err
	}
	if err := h.service.LoadSnapshot(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"loaded": true}})
}

// Metrics GET /admin/metrics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	if _, err := requireOperator(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"operations": h.metrics.OperationCounts(),
		"failures":   h.metrics.FailureCounts(),
	}})
}
