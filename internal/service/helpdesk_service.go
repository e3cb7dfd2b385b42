package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/engine"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/events"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/observability"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/repository"
)

// HelpdeskService exposes engine operations to the transport layer. The
// engine itself is single-threaded, so every operation runs inside one
// mutex: concurrent HTTP requests observe a strict serial order.
type HelpdeskService struct {
	mu         sync.Mutex
	engine     *engine.Engine
	dispatcher events.Dispatcher
	snapshots  repository.SnapshotRepository
	metrics    *observability.Metrics
}

// HelpdeskDependencies bundles collaborators for the service.
type HelpdeskDependencies struct {
	Engine       *engine.Engine
	Dispatcher   events.Dispatcher
	SnapshotRepo repository.SnapshotRepository
	Metrics      *observability.Metrics
}

// NewHelpdeskService constructs the service.
func NewHelpdeskService(deps HelpdeskDependencies) *HelpdeskService {
	return &HelpdeskService{
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
		snapshots:  deps.SnapshotRepo,
		metrics:    deps.Metrics,
	}
}

// CreateTicket creates a ticket and announces it.
func (s *HelpdeskService) CreateTicket(ctx context.Context, operator string, input engine.CreateInput) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.engine.Create(input)
	s.mu.Unlock()
	s.metrics.RecordOperation("create_ticket", err)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Operator: operator,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
			Status:   ticket.Status,
		},
	})
	return ticket, nil
}

// UpdateStatus moves a ticket forward through its lifecycle.
func (s *HelpdeskService) UpdateStatus(ctx context.Context, operator string, id int64, next domain.TicketStatus) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.engine.UpdateStatus(id, next)
	s.mu.Unlock()
	s.metrics.RecordOperation("update_status", err)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Operator: operator,
		Payload:  events.TicketStatusChangedPayload{NewStatus: ticket.Status},
	})
	return ticket, nil
}

// UpdatePriority re-prioritizes a ticket.
func (s *HelpdeskService) UpdatePriority(ctx context.Context, operator string, id int64, next domain.TicketPriority) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.engine.UpdatePriority(id, next)
	s.mu.Unlock()
	s.metrics.RecordOperation("update_priority", err)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticket.ID,
		Operator: operator,
		Payload:  events.TicketPriorityChangedPayload{NewPriority: ticket.Priority},
	})
	return ticket, nil
}

// Assign sets a ticket's assignee.
func (s *HelpdeskService) Assign(ctx context.Context, operator string, id int64, assignee string) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.engine.Assign(id, assignee)
	s.mu.Unlock()
	s.metrics.RecordOperation("assign", err)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Operator: operator,
		Payload:  events.TicketAssignedPayload{Assignee: assignee},
	})
	return ticket, nil
}

// AddDependency records a prerequisite edge between tickets.
func (s *HelpdeskService) AddDependency(ctx context.Context, operator string, id, prereq int64) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.engine.AddDependency(id, prereq)
	s.mu.Unlock()
	s.metrics.RecordOperation("add_dependency", err)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDependencyAdded,
		TicketID: ticket.ID,
		Operator: operator,
		Payload:  events.TicketDependencyAddedPayload{PrerequisiteID: prereq},
	})
	return ticket, nil
}

// DispatchNext pulls the next queued ticket and marks it in progress.
func (s *HelpdeskService) DispatchNext(ctx context.Context, operator string) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.engine.DispatchNext()
	s.mu.Unlock()
	s.metrics.RecordOperation("dispatch_next", err)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDispatched,
		TicketID: ticket.ID,
		Operator: operator,
		Payload:  events.TicketDispatchedPayload{Priority: ticket.Priority},
	})
	return ticket, nil
}

// Undo rolls back the most recent mutation.
func (s *HelpdeskService) Undo(ctx context.Context, operator string) (engine.UndoAction, error) {
	s.mu.Lock()
	action, err := s.engine.Undo()
	s.mu.Unlock()
	s.metrics.RecordOperation("undo", err)
	if err != nil {
		return engine.UndoAction{}, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventActionUndone,
		TicketID: action.TicketID,
		Operator: operator,
		Payload:  events.ActionUndonePayload{UndoneKind: string(action.Kind)},
	})
	return action, nil
}

// CanClose reports whether all transitive prerequisites are settled.
func (s *HelpdeskService) CanClose(id int64) (engine.CloseCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CanClose(id)
}

// GetTicket returns a single ticket.
func (s *HelpdeskService) GetTicket(id int64) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Ticket(id)
}

// ListTickets returns all tickets in creation order.
func (s *HelpdeskService) ListTickets() []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Tickets()
}

// TicketHistory returns one ticket's events in chronological order.
func (s *HelpdeskService) TicketHistory(id int64) ([]domain.HistoryEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.engine.Ticket(id); err != nil {
		return nil, err
	}
	var result []domain.HistoryEvent
	cursor := s.engine.EventsFor(id)
	for {
		event, ok := cursor.Next()
		if !ok {
			break
		}
		result = append(result, event)
	}
	return result, nil
}

// RecentHistory returns the last n events across all tickets.
func (s *HelpdeskService) RecentHistory(n int) []domain.HistoryEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Recent(n)
}

// QueueStatus reports live queue depths and heads.
func (s *HelpdeskService) QueueStatus() engine.QueueStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.QueueStatus()
}

// UndoDepth reports how many actions can currently be undone.
func (s *HelpdeskService) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.UndoDepth()
}

// StateView is a read-only copy of engine state for analytics projections.
type StateView struct {
	Tickets     []domain.Ticket
	QueueStatus engine.QueueStatus
	HistorySize int
}

// StateSnapshot returns a consistent read-only view for the analytics layer.
func (s *HelpdeskService) StateSnapshot() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.engine.Snapshot()
	return StateView{
		Tickets:     snap.Tickets,
		QueueStatus: s.engine.QueueStatus(),
		HistorySize: len(snap.Events),
	}
}

// SaveSnapshot persists the full engine state.
func (s *HelpdeskService) SaveSnapshot(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	s.mu.Lock()
	snap := s.engine.Snapshot()
	s.mu.Unlock()
	err := s.snapshots.Save(ctx, snap)
	s.metrics.RecordOperation("save_snapshot", err)
	return err
}

// LoadSnapshot restores engine state from persistence.
func (s *HelpdeskService) LoadSnapshot(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		s.metrics.RecordOperation("load_snapshot", err)
		return err
	}
	s.mu.Lock()
	err = s.engine.Restore(snap)
	s.mu.Unlock()
	s.metrics.RecordOperation("load_snapshot", err)
	return err
}

func (s *HelpdeskService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
