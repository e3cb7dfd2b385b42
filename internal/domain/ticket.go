package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Transitions only
// move forward in the order below; CLOSED is terminal.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

var statusRank = map[TicketStatus]int{
	TicketStatusOpen:       1,
	TicketStatusInProgress: 2,
	TicketStatusResolved:   3,
	TicketStatusClosed:     4,
}

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns the position of s in the lifecycle order, 0 if unknown.
func (s TicketStatus) Rank() int {
	return statusRank[s]
}

// Terminal reports whether a ticket in status s has finished forward progress.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates dispatch severity.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

var priorityRank = map[TicketPriority]int{
	TicketPriorityLow:      1,
	TicketPriorityMedium:   2,
	TicketPriorityHigh:     3,
	TicketPriorityCritical: 4,
}

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank returns the severity of p, higher is more urgent, 0 if unknown.
func (p TicketPriority) Rank() int {
	return priorityRank[p]
}

// Urgent reports whether p routes to the priority dispatch queue.
func (p TicketPriority) Urgent() bool {
	return p == TicketPriorityHigh || p == TicketPriorityCritical
}

// Ticket is the aggregate for help-desk requests. Identity is a monotonic
// int64 assigned at creation and never reused. Dependencies hold prerequisite
// ticket ids; the engine guarantees the relation stays acyclic.
type Ticket struct {
	ID           int64
	Title        string
	Description  string
	Priority     TicketPriority
	Status       TicketStatus
	Assignee     *string
	Dependencies []int64
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}

// Clone returns a deep copy safe to hand outside the store.
func (t *Ticket) Clone() *Ticket {
	cp := *t
	if t.Assignee != nil {
		assignee := *t.Assignee
		cp.Assignee = &assignee
	}
	if t.ResolvedAt != nil {
		resolved := *t.ResolvedAt
		cp.ResolvedAt = &resolved
	}
	cp.Dependencies = append([]int64(nil), t.Dependencies...)
	return &cp
}

// DependsOn reports whether t has a direct edge to the given ticket id.
func (t *Ticket) DependsOn(id int64) bool {
	for _, dep := range t.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}
