package domain

import "time"

// HistoryEventType captures what changed in a history entry.
type HistoryEventType string

const (
	EventCreated         HistoryEventType = "CREATED"
	EventStatusChanged   HistoryEventType = "STATUS_CHANGED"
	EventPriorityChanged HistoryEventType = "PRIORITY_CHANGED"
	EventAssigned        HistoryEventType = "ASSIGNED"
	EventDependencyAdded HistoryEventType = "DEPENDENCY_ADDED"
	EventDispatched      HistoryEventType = "DISPATCHED"
	EventUndo            HistoryEventType = "UNDO"
)

// HistoryEvent is an immutable audit trail entry. Entries are appended in
// mutation order and never edited or removed.
type HistoryEvent struct {
	ID        string
	Type      HistoryEventType
	TicketID  int64
	OldValue  map[string]any
	NewValue  map[string]any
	CreatedAt time.Time
}
