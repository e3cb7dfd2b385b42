package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"

	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// store owns the canonical ticket set, keyed by identifier. Every other
// engine component references tickets by id only.
type store struct {
	tickets map[int64]*domain.Ticket
	order   []int64
	nextID  int64
}

func newStore() *store {
	return &store{
		tickets: make(map[int64]*domain.Ticket),
		nextID:  1,
	}
}

// CreateInput describes ticket creation payload. Status defaults to OPEN
// when empty; Dependencies must reference existing tickets.
type CreateInput struct {
	Title        string
	Description  string
	Priority     domain.TicketPriority
	Status       domain.TicketStatus
	Assignee     *string
	Dependencies []int64
}

func (s *store) get(id int64) (*domain.Ticket, error) {
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
	}
	return ticket, nil
}

// create validates input and inserts a new ticket. Identifiers are assigned
// monotonically and never reused, even after an undone create.
func (s *store) create(input CreateInput, now time.Time) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	status := input.Status
	if status == "" {
		status = domain.TicketStatusOpen
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	deps := make([]int64, 0, len(input.Dependencies))
	seen := make(map[int64]struct{}, len(input.Dependencies))
	for _, dep := range input.Dependencies {
		if _, ok := s.tickets[dep]; !ok {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": dep})
		}
		if _, dup := seen[dep]; dup {
			continue
		}
		seen[dep] = struct{}{}
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })

	ticket := &domain.Ticket{
		ID:           s.nextID,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Priority:     input.Priority,
		Status:       status,
		Assignee:     input.Assignee,
		Dependencies: deps,
		CreatedAt:    now,
	}
	if status.Terminal() {
		resolved := now
		ticket.ResolvedAt = &resolved
	}

	s.tickets[ticket.ID] = ticket
	s.order = append(s.order, ticket.ID)
	s.nextID++
	return ticket, nil
}

// remove deletes a ticket outright. Only the undo of a create uses it; queue
// entries referencing the id go stale and are discarded lazily at dequeue.
func (s *store) remove(id int64) {
	if _, ok := s.tickets[id]; !ok {
		return
	}
	delete(s.tickets, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// checkTransition validates a forward status move without applying it.
func (s *store) checkTransition(id int64, next domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": next})
	}
	if next.Rank() <= ticket.Status.Rank() {
		return nil, apperrors.NewInvalidTransition("status may only move forward", map[string]any{
			"ticket_id": id,
			"from":      ticket.Status,
			"to":        next,
		})
	}
	return ticket, nil
}

// applyStatus sets the status and maintains the resolution timestamp. The
// caller has already validated the transition.
func (s *store) applyStatus(ticket *domain.Ticket, next domain.TicketStatus, now time.Time) {
	if next == domain.TicketStatusResolved {
		resolved := now
		ticket.ResolvedAt = &resolved
	}
	ticket.Status = next
}

// restoreStatus rewinds a status change during undo, bypassing transition
// validation.
func (s *store) restoreStatus(ticket *domain.Ticket, prev domain.TicketStatus, prevResolvedAt *time.Time) {
	ticket.Status = prev
	ticket.ResolvedAt = prevResolvedAt
}

// removeDependency drops a single edge during undo.
func (s *store) removeDependency(ticket *domain.Ticket, prereq int64) {
	for i, dep := range ticket.Dependencies {
		if dep == prereq {
			ticket.Dependencies = append(ticket.Dependencies[:i], ticket.Dependencies[i+1:]...)
			return
		}
	}
}

// list returns deep copies of all tickets in creation order.
func (s *store) list() []domain.Ticket {
	result := make([]domain.Ticket, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.tickets[id].Clone())
	}
	return result
}

func (s *store) reset() {
	s.tickets = make(map[int64]*domain.Ticket)
	s.order = nil
	s.nextID = 1
}
