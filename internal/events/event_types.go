package events

import (
	"time"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketDependencyAdded EventType = "ticket_dependency_added"
	EventTicketDispatched      EventType = "ticket_dispatched"
	EventActionUndone          EventType = "action_undone"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	Operator  string      `json:"operator,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
	Status   domain.TicketStatus   `json:"status"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	NewPriority domain.TicketPriority `json:"new_priority"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Assignee string `json:"assignee"`
}

// TicketDependencyAddedPayload payload.
type TicketDependencyAddedPayload struct {
	PrerequisiteID int64 `json:"prerequisite_id"`
}

// TicketDispatchedPayload payload.
type TicketDispatchedPayload struct {
	Priority domain.TicketPriority `json:"priority"`
}

// ActionUndonePayload payload.
type ActionUndonePayload struct {
	UndoneKind string `json:"undone_kind"`
}
