package dto

import (
	"time"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	Assignee     *string               `json:"assignee"`
	Dependencies []int64               `json:"dependencies"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority domain.TicketPriority `json:"priority"`
}

// AssignRequest payload.
type AssignRequest struct {
	Assignee string `json:"assignee"`
}

// AddDependencyRequest payload.
type AddDependencyRequest struct {
	PrerequisiteID int64 `json:"prerequisite_id"`
}

// TicketResponse represents a ticket on the wire.
type TicketResponse struct {
	ID           int64                 `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	Assignee     *string               `json:"assignee"`
	Dependencies []int64               `json:"dependencies"`
	CreatedAt    time.Time             `json:"created_at"`
	ResolvedAt   *time.Time            `json:"resolved_at"`
}

// HistoryEventResponse represents one append-only log entry.
type HistoryEventResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	TicketID  int64          `json:"ticket_id"`
	OldValue  map[string]any `json:"old_value,omitempty"`
	NewValue  map[string]any `json:"new_value,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// CloseCheckResponse reports dependency readiness for closing.
type CloseCheckResponse struct {
	TicketID int64   `json:"ticket_id"`
	CanClose bool    `json:"can_close"`
	Blocking []int64 `json:"blocking"`
}

// QueueStatusResponse reports live queue depths and heads.
type QueueStatusResponse struct {
	PriorityDepth int    `json:"priority_depth"`
	StandardDepth int    `json:"standard_depth"`
	NextPriority  *int64 `json:"next_priority"`
	NextStandard  *int64 `json:"next_standard"`
	UndoDepth     int    `json:"undo_depth"`
}

// UndoResponse reports which mutation was rolled back.
type UndoResponse struct {
	UndoneKind string `json:"undone_kind"`
	TicketID   int64  `json:"ticket_id"`
}
