// Package engine implements the ticket dispatch and dependency engine: the
// canonical ticket store, the dual dispatch queues, the dependency graph
// with cycle detection, the append-only history log, and the undo stack.
//
// The engine is a plain in-memory value with no I/O: it never logs, prints,
// or blocks, and it is not safe for concurrent use. Callers that serve
// multiple clients must serialize operations (see service.HelpdeskService).
// Every mutating operation either applies completely — store mutation,
// history append, undo push, queue update — or not at all; validation runs
// before the first side effect.
package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"

	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// Options tunes engine construction.
type Options struct {
	// UndoDepth caps the undo stack; zero or negative means unbounded.
	UndoDepth int
}

// Engine bundles the store, queues, history log and undo stack into one
// explicitly constructed context value.
type Engine struct {
	store  *store
	log    *historyLog
	queues *dispatchQueues
	undo   *undoStack
}

// New constructs an empty engine.
func New(opts Options) *Engine {
	return &Engine{
		store:  newStore(),
		log:    newHistoryLog(),
		queues: newDispatchQueues(),
		undo:   newUndoStack(opts.UndoDepth),
	}
}

// live reports whether a queue entry still refers to a dispatchable ticket:
// the ticket must exist, be OPEN, and carry the priority captured at
// enqueue. Anything else is a stale entry left behind by an undone create,
// a status move, or a re-prioritization.
func (e *Engine) live(entry *queueEntry) bool {
	ticket, ok := e.store.tickets[entry.ticketID]
	if !ok {
		return false
	}
	return ticket.Status == domain.TicketStatusOpen && ticket.Priority == entry.priority
}

// Create validates and inserts a new ticket, records it, and enqueues it
// for dispatch when it starts OPEN.
func (e *Engine) Create(input CreateInput) (*domain.Ticket, error) {
	now := time.Now()
	ticket, err := e.store.create(input, now)
	if err != nil {
		return nil, err
	}

	newValue := map[string]any{
		"title":    ticket.Title,
		"priority": ticket.Priority,
		"status":   ticket.Status,
	}
	if ticket.Assignee != nil {
		newValue["assignee"] = *ticket.Assignee
	}
	if len(ticket.Dependencies) > 0 {
		newValue["dependencies"] = append([]int64(nil), ticket.Dependencies...)
	}
	e.log.record(domain.EventCreated, ticket.ID, nil, newValue, now)
	e.undo.push(UndoAction{Kind: UndoCreate, TicketID: ticket.ID})
	if ticket.Status == domain.TicketStatusOpen {
		e.queues.enqueue(ticket)
	}
	return ticket.Clone(), nil
}

// UpdateStatus moves a ticket forward through its lifecycle. Transitions
// into CLOSED additionally require every transitive prerequisite to be
// RESOLVED or CLOSED.
func (e *Engine) UpdateStatus(id int64, next domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := e.store.checkTransition(id, next)
	if err != nil {
		return nil, err
	}
	if next == domain.TicketStatusClosed {
		check, err := e.store.canClose(id)
		if err != nil {
			return nil, err
		}
		if !check.CanClose {
			return nil, apperrors.NewInvalidTransition("unresolved prerequisites block closing", map[string]any{
				"ticket_id": id,
				"blocking":  check.Blocking,
			})
		}
	}

	now := time.Now()
	prevStatus := ticket.Status
	prevResolvedAt := ticket.ResolvedAt
	e.store.applyStatus(ticket, next, now)

	e.log.record(domain.EventStatusChanged, ticket.ID,
		map[string]any{"status": prevStatus},
		map[string]any{"status": next},
		now)
	e.undo.push(UndoAction{
		Kind:           UndoStatusChange,
		TicketID:       ticket.ID,
		PrevStatus:     prevStatus,
		PrevResolvedAt: prevResolvedAt,
	})
	return ticket.Clone(), nil
}

// UpdatePriority re-prioritizes a ticket. An OPEN ticket is re-enqueued
// under its new priority; the entry captured at the old priority goes stale
// and is skipped when it surfaces at dequeue.
func (e *Engine) UpdatePriority(id int64, next domain.TicketPriority) (*domain.Ticket, error) {
	ticket, err := e.store.get(id)
	if err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": next})
	}
	if next == ticket.Priority {
		return nil, apperrors.NewValidationError("priority unchanged", map[string]any{"priority": next})
	}

	now := time.Now()
	prev := ticket.Priority
	ticket.Priority = next

	e.log.record(domain.EventPriorityChanged, ticket.ID,
		map[string]any{"priority": prev},
		map[string]any{"priority": next},
		now)
	e.undo.push(UndoAction{
		Kind:         UndoPriorityChange,
		TicketID:     ticket.ID,
		PrevPriority: prev,
	})
	if ticket.Status == domain.TicketStatusOpen {
		e.queues.enqueue(ticket)
	}
	return ticket.Clone(), nil
}

// Assign sets the ticket's assignee.
func (e *Engine) Assign(id int64, assignee string) (*domain.Ticket, error) {
	ticket, err := e.store.get(id)
	if err != nil {
		return nil, err
	}
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return nil, apperrors.NewValidationError("assignee required", nil)
	}

	now := time.Now()
	prev := ticket.Assignee
	oldValue := map[string]any{}
	if prev != nil {
		oldValue["assignee"] = *prev
	}
	ticket.Assignee = &assignee

	e.log.record(domain.EventAssigned, ticket.ID, oldValue, map[string]any{"assignee": assignee}, now)
	e.undo.push(UndoAction{
		Kind:         UndoAssign,
		TicketID:     ticket.ID,
		PrevAssignee: prev,
	})
	return ticket.Clone(), nil
}

// AddDependency records that id cannot close until prereq is RESOLVED or
// CLOSED. The edge is rejected before commit when it would close a cycle.
func (e *Engine) AddDependency(id, prereq int64) (*domain.Ticket, error) {
	if id == prereq {
		return nil, apperrors.NewSelfDependency(id)
	}
	ticket, err := e.store.get(id)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.get(prereq); err != nil {
		return nil, err
	}
	if ticket.DependsOn(prereq) {
		return nil, apperrors.NewValidationError("dependency already present", map[string]any{
			"ticket_id":       id,
			"prerequisite_id": prereq,
		})
	}
	if cycle, bad := e.store.wouldCycle(id, prereq); bad {
		return nil, apperrors.NewCircularDependency(cycle)
	}

	now := time.Now()
	ticket.Dependencies = append(ticket.Dependencies, prereq)
	sort.Slice(ticket.Dependencies, func(i, j int) bool { return ticket.Dependencies[i] < ticket.Dependencies[j] })

	e.log.record(domain.EventDependencyAdded, ticket.ID, nil,
		map[string]any{"prerequisite_id": prereq}, now)
	e.undo.push(UndoAction{
		Kind:         UndoDependencyAdd,
		TicketID:     ticket.ID,
		DependencyID: prereq,
	})
	return ticket.Clone(), nil
}

// DispatchNext removes the next live entry — priority queue first, then the
// standard FIFO — and moves its ticket to IN_PROGRESS. The status change is
// logged and undoable like any other mutation; undoing it re-enqueues the
// ticket.
func (e *Engine) DispatchNext() (*domain.Ticket, error) {
	entry, ok := e.queues.popNext(e.live)
	if !ok {
		return nil, apperrors.NewEmptyQueue()
	}
	ticket := e.store.tickets[entry.ticketID]

	now := time.Now()
	prevStatus := ticket.Status
	prevResolvedAt := ticket.ResolvedAt
	e.store.applyStatus(ticket, domain.TicketStatusInProgress, now)

	e.log.record(domain.EventDispatched, ticket.ID,
		map[string]any{"status": prevStatus},
		map[string]any{"status": ticket.Status},
		now)
	e.undo.push(UndoAction{
		Kind:           UndoDispatch,
		TicketID:       ticket.ID,
		PrevStatus:     prevStatus,
		PrevResolvedAt: prevResolvedAt,
	})
	return ticket.Clone(), nil
}

// CanClose reports whether the ticket's transitive prerequisites are all
// RESOLVED or CLOSED, and lists the blocking ids when not. Read-only.
func (e *Engine) CanClose(id int64) (CloseCheck, error) {
	return e.store.canClose(id)
}

// Undo pops the most recent action and applies its inverse. The inverse is
// not itself pushed, so undo never grows the stack; a compensating
// UNDO-tagged history event records the rollback.
func (e *Engine) Undo() (UndoAction, error) {
	action, ok := e.undo.pop()
	if !ok {
		return UndoAction{}, apperrors.NewEmptyStack()
	}

	now := time.Now()
	oldValue := map[string]any{"undone": string(action.Kind)}
	newValue := map[string]any{}

	switch action.Kind {
	case UndoCreate:
		e.store.remove(action.TicketID)
	case UndoStatusChange, UndoDispatch:
		ticket, err := e.store.get(action.TicketID)
		if err != nil {
			return UndoAction{}, err
		}
		e.store.restoreStatus(ticket, action.PrevStatus, action.PrevResolvedAt)
		newValue["status"] = action.PrevStatus
		if action.Kind == UndoDispatch {
			e.queues.enqueue(ticket)
		} else if ticket.Status == domain.TicketStatusOpen && !e.queues.hasLiveFor(ticket.ID, e.live) {
			// an intervening dispatch may have discarded the entry while
			// it was stale; the reopened ticket needs a live one
			e.queues.enqueue(ticket)
		}
	case UndoPriorityChange:
		ticket, err := e.store.get(action.TicketID)
		if err != nil {
			return UndoAction{}, err
		}
		ticket.Priority = action.PrevPriority
		newValue["priority"] = action.PrevPriority
		if ticket.Status == domain.TicketStatusOpen && !e.queues.hasLiveFor(ticket.ID, e.live) {
			e.queues.enqueue(ticket)
		}
	case UndoAssign:
		ticket, err := e.store.get(action.TicketID)
		if err != nil {
			return UndoAction{}, err
		}
		ticket.Assignee = action.PrevAssignee
		if action.PrevAssignee != nil {
			newValue["assignee"] = *action.PrevAssignee
		}
	case UndoDependencyAdd:
		ticket, err := e.store.get(action.TicketID)
		if err != nil {
			return UndoAction{}, err
		}
		e.store.removeDependency(ticket, action.DependencyID)
		newValue["removed_prerequisite_id"] = action.DependencyID
	}

	e.log.record(domain.EventUndo, action.TicketID, oldValue, newValue, now)
	return action, nil
}

// Ticket returns a copy of the ticket with the given id.
func (e *Engine) Ticket(id int64) (*domain.Ticket, error) {
	ticket, err := e.store.get(id)
	if err != nil {
		return nil, err
	}
	return ticket.Clone(), nil
}

// Tickets returns copies of all tickets in creation order.
func (e *Engine) Tickets() []domain.Ticket {
	return e.store.list()
}

// EventsFor returns a restartable cursor over one ticket's events in
// chronological order.
func (e *Engine) EventsFor(ticketID int64) *HistoryCursor {
	return e.log.eventsFor(ticketID)
}

// Recent returns the last n events across all tickets, most recent first.
func (e *Engine) Recent(n int) []domain.HistoryEvent {
	return e.log.recent(n)
}

// UndoDepth returns how many actions can currently be undone.
func (e *Engine) UndoDepth() int {
	return e.undo.depth()
}

// QueueStatus summarizes both dispatch queues: live entry counts plus the
// ticket next in line for each.
type QueueStatus struct {
	PriorityDepth int
	StandardDepth int
	NextPriority  *int64
	NextStandard  *int64
}

// QueueStatus reports live queue depths and heads without dequeuing.
func (e *Engine) QueueStatus() QueueStatus {
	status := QueueStatus{}
	status.PriorityDepth, status.StandardDepth = e.queues.counts(e.live)
	if entry, ok := e.queues.peekUrgent(e.live); ok {
		id := entry.ticketID
		status.NextPriority = &id
	}
	if entry, ok := e.queues.peekStandard(e.live); ok {
		id := entry.ticketID
		status.NextStandard = &id
	}
	return status
}

// Reset clears every component, including the history log.
func (e *Engine) Reset() {
	e.store.reset()
	e.log.reset()
	e.queues.reset()
	e.undo.reset()
}
