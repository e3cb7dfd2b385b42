package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/api/dto"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/auth"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/engine"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/service"
	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.HelpdeskService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(helpdesk *service.HelpdeskService) *TicketsHandler {
	return &TicketsHandler{service: helpdesk}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	operator, err := requireOperator(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), operator, engine.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Status:       req.Status,
		Assignee:     req.Assignee,
		Dependencies: req.Dependencies,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets := h.service.ListTickets()
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateStatus POST /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	operator, err := requireOperator(c)
	if err != nil {
		return err
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), operator, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdatePriority POST /tickets/:id/priority.
func (h *TicketsHandler) UpdatePriority(c *fiber.Ctx) error {
	operator, err := requireOperator(c)
	if err != nil {
		return err
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdatePriority(c.UserContext(), operator, id, req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Assign POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	operator, err := requireOperator(c)
	if err != nil {
		return err
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Assign(c.UserContext(), operator, id, req.Assignee)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AddDependency POST /tickets/:id/dependencies.
func (h *TicketsHandler) AddDependency(c *fiber.Ctx) error {
	operator, err := requireOperator(c)
	if err != nil {
		return err
	}
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.AddDependencyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.AddDependency(c.UserContext(), operator, id, req.PrerequisiteID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// CanClose GET /tickets/:id/can-close.
func (h *TicketsHandler) CanClose(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	check, err := h.service.CanClose(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CloseCheckResponse{
		TicketID: id,
		CanClose: check.CanClose,
		Blocking: check.Blocking,
	}})
}

// History GET /tickets/:id/history.
func (h *TicketsHandler) History(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	events, err := h.service.TicketHistory(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": historyResponses(events)})
}

// RecentHistory GET /history/recent.
func (h *TicketsHandler) RecentHistory(c *fiber.Ctx) error {
	n := parseQueryInt(c.Query("n"), 10)
	return c.JSON(fiber.Map{"data": historyResponses(h.service.RecentHistory(n))})
}

func requireOperator(c *fiber.Ctx) (string, error) {
	operator, ok := auth.OperatorFromContext(c)
	if !ok {
		return "", apperrors.NewUnauthorized("operator required")
	}
	return operator, nil
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid ticket id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func parseQueryInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:           ticket.ID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		Assignee:     ticket.Assignee,
		Dependencies: ticket.Dependencies,
		CreatedAt:    ticket.CreatedAt,
		ResolvedAt:   ticket.ResolvedAt,
	}
}

func historyResponses(events []domain.HistoryEvent) []dto.HistoryEventResponse {
	resp := make([]dto.HistoryEventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, dto.HistoryEventResponse{
			ID:        event.ID,
			Type:      string(event.Type),
			TicketID:  event.TicketID,
			OldValue:  event.OldValue,
			NewValue:  event.NewValue,
			CreatedAt: event.CreatedAt,
		})
	}
	return resp
}
