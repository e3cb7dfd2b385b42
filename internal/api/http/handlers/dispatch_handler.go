package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/api/dto"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
)

// DispatchHandler manages queue dispatch and undo endpoints.
type DispatchHandler struct {
	service *service.HelpdeskService
}

// NewDispatchHandler constructs handler.
func NewDispatchHandler(helpdesk *service.HelpdeskService) *DispatchHandler {
	return &DispatchHandler{service: helpdesk}
}

// Next POST /dispatch/next.
func (h *DispatchHandler) Next(c *fiber.Ctx) error {
	operator, err := requireOperator(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.DispatchNext(c.UserContext(), operator)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Queues GET /dispatch/queues.
func (h *DispatchHandler) Queues(c *fiber.Ctx) error {
	status := h.service.QueueStatus()
	return c.JSON(fiber.Map{"data": dto.QueueStatusResponse{
		PriorityDepth: status.PriorityDepth,
		StandardDepth: status.StandardDepth,
		NextPriority:  status.NextPriority,
		NextStandard:  status.NextStandard,
		UndoDepth:     h.service.UndoDepth(),
	}})
}

// Undo POST /undo.
func (h *DispatchHandler) Undo(c *fiber.Ctx) error {
	operator, err := requireOperator(c)
	if err != nil {
		return err
	}
	action, err := h.service.Undo(c.UserContext(), operator)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UndoResponse{
		UndoneKind: string(action.Kind),
		TicketID:   action.TicketID,
	}})
}
