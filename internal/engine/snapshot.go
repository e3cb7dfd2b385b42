package engine

import (
	"sort"
	"strings"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"

	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// Snapshot is a serializable copy of engine state: the ticket set, the id
// counter, and the full history log. The undo stack and queue entries are
// not carried; queues are rebuilt from OPEN tickets on restore.
type Snapshot struct {
	NextID  int64
	Tickets []domain.Ticket
	Events  []domain.HistoryEvent
}

// Snapshot captures the current state. The copy shares nothing with live
// engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		NextID:  e.store.nextID,
		Tickets: e.store.list(),
		Events:  e.log.all(),
	}
}

// Restore replaces all engine state with the snapshot after re-validating
// the ticket invariants: field validity, referenced prerequisites exist,
// and the dependency relation is acyclic. The undo stack starts empty.
func (e *Engine) Restore(snap Snapshot) error {
	tickets := make([]domain.Ticket, len(snap.Tickets))
	for i := range snap.Tickets {
		tickets[i] = *snap.Tickets[i].Clone()
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })

	byID := make(map[int64]*domain.Ticket, len(tickets))
	for i := range tickets {
		ticket := &tickets[i]
		if strings.TrimSpace(ticket.Title) == "" {
			return apperrors.NewValidationError("title required", map[string]any{"ticket_id": ticket.ID})
		}
		if !ticket.Priority.Valid() {
			return apperrors.NewValidationError("invalid priority", map[string]any{"ticket_id": ticket.ID})
		}
		if !ticket.Status.Valid() {
			return apperrors.NewValidationError("invalid status", map[string]any{"ticket_id": ticket.ID})
		}
		if _, dup := byID[ticket.ID]; dup {
			return apperrors.NewValidationError("duplicate ticket id", map[string]any{"ticket_id": ticket.ID})
		}
		byID[ticket.ID] = ticket
	}
	for i := range tickets {
		ticket := &tickets[i]
		for _, dep := range ticket.Dependencies {
			if dep == ticket.ID {
				return apperrors.NewSelfDependency(ticket.ID)
			}
			if _, ok := byID[dep]; !ok {
				return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": dep})
			}
		}
	}

	restored := newStore()
	for i := range tickets {
		ticket := &tickets[i]
		restored.tickets[ticket.ID] = ticket
		restored.order = append(restored.order, ticket.ID)
		if ticket.ID >= restored.nextID {
			restored.nextID = ticket.ID + 1
		}
	}
	if snap.NextID > restored.nextID {
		restored.nextID = snap.NextID
	}

	// Cycles reach themselves, so probing every ticket finds any cycle.
	for _, id := range restored.order {
		if _, err := restored.canClose(id); err != nil {
			return err
		}
	}

	e.store = restored
	e.log = &historyLog{events: append([]domain.HistoryEvent(nil), snap.Events...)}
	e.queues = newDispatchQueues()
	e.undo = newUndoStack(e.undo.maxDepth)
	for _, id := range e.store.order {
		ticket := e.store.tickets[id]
		if ticket.Status == domain.TicketStatusOpen {
			e.queues.enqueue(ticket)
		}
	}
	return nil
}
