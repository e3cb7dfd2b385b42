package service

import (
	"context"
	"sync"
	"testing"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/engine"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/events"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/observability"
	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) recorded() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}

type memorySnapshotRepo struct {
	saved *engine.Snapshot
}

func (r *memorySnapshotRepo) Save(_ context.Context, snap engine.Snapshot) error {
	r.saved = &snap
	return nil
}

func (r *memorySnapshotRepo) Load(_ context.Context) (engine.Snapshot, error) {
	if r.saved == nil {
		return engine.Snapshot{NextID: 1}, nil
	}
	return *r.saved, nil
}

func newTestService(t *testing.T, repo *memorySnapshotRepo) (*HelpdeskService, *recordingDispatcher, *observability.Metrics) {
	t.Helper()
	dispatcher := &recordingDispatcher{}
	metrics := observability.NewMetrics()
	deps := HelpdeskDependencies{
		Engine:     engine.New(engine.Options{}),
		Dispatcher: dispatcher,
		Metrics:    metrics,
	}
	if repo != nil {
		deps.SnapshotRepo = repo
	}
	return NewHelpdeskService(deps), dispatcher, metrics
}

func createTicket(t *testing.T, svc *HelpdeskService, title string, priority domain.TicketPriority) *domain.Ticket {
	t.Helper()
	ticket, err := svc.CreateTicket(context.Background(), "op", engine.CreateInput{Title: title, Priority: priority})
	if err != nil {
		t.Fatalf("CreateTicket(%q): %v", title, err)
	}
	return ticket
}

func TestCreateTicketPublishesEvent(t *testing.T) {
	svc, dispatcher, metrics := newTestService(t, nil)

	ticket := createTicket(t, svc, "printer jam", domain.TicketPriorityLow)

	recorded := dispatcher.recorded()
	if len(recorded) != 1 {
		t.Fatalf("expected 1 event, got %d", len(recorded))
	}
	event := recorded[0]
	if event.Type != events.EventTicketCreated {
		t.Errorf("event type = %s, want %s", event.Type, events.EventTicketCreated)
	}
	if event.TicketID != ticket.ID {
		t.Errorf("event ticket id = %d, want %d", event.TicketID, ticket.ID)
	}
	if event.Operator != "op" {
		t.Errorf("event operator = %q, want op", event.Operator)
	}
	if event.ID == "" || event.Timestamp.IsZero() {
		t.Error("event id and timestamp should be filled")
	}
	if got := metrics.OperationCounts()["create_ticket"]; got != 1 {
		t.Errorf("create_ticket count = %d, want 1", got)
	}
}

func TestFailedOperationPublishesNoEvent(t *testing.T) {
	svc, dispatcher, metrics := newTestService(t, nil)

	if _, err := svc.CreateTicket(context.Background(), "op", engine.CreateInput{Title: ""}); err == nil {
		t.Fatal("expected validation error")
	}
	if len(dispatcher.recorded()) != 0 {
		t.Fatal("failed create should not publish an event")
	}
	if got := metrics.FailureCounts()["create_ticket|VALIDATION_FAILED"]; got != 1 {
		t.Errorf("failure count = %d, want 1", got)
	}
}

func TestUndoPublishesActionUndone(t *testing.T) {
	svc, dispatcher, _ := newTestService(t, nil)
	ticket := createTicket(t, svc, "vpn drops", domain.TicketPriorityHigh)

	action, err := svc.Undo(context.Background(), "op")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if action.TicketID != ticket.ID {
		t.Errorf("undone ticket = %d, want %d", action.TicketID, ticket.ID)
	}

	recorded := dispatcher.recorded()
	last := recorded[len(recorded)-1]
	if last.Type != events.EventActionUndone {
		t.Errorf("last event = %s, want %s", last.Type, events.EventActionUndone)
	}
}

func TestTicketHistoryUnknownTicket(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	if _, err := svc.TicketHistory(99); !apperrors.HasCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestTicketHistoryChronological(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	ticket := createTicket(t, svc, "email outage", domain.TicketPriorityCritical)
	if _, err := svc.UpdateStatus(context.Background(), "op", ticket.ID, domain.TicketStatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	history, err := svc.TicketHistory(ticket.ID)
	if err != nil {
		t.Fatalf("TicketHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 events, got %d", len(history))
	}
	if history[0].Type != domain.EventCreated || history[1].Type != domain.EventStatusChanged {
		t.Errorf("unexpected event order: %s, %s", history[0].Type, history[1].Type)
	}
}

func TestSnapshotRoundTripThroughRepository(t *testing.T) {
	repo := &memorySnapshotRepo{}
	svc, _, _ := newTestService(t, repo)
	first := createTicket(t, svc, "db migration", domain.TicketPriorityHigh)
	second := createTicket(t, svc, "laptop setup", domain.TicketPriorityMedium)
	if _, err := svc.AddDependency(context.Background(), "op", second.ID, first.ID); err != nil {
		t.Fatalf("AddDependency: %v", err)
	}

	if err := svc.SaveSnapshot(context.Background()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	restored, _, _ := newTestService(t, repo)
	if err := restored.LoadSnapshot(context.Background()); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	tickets := restored.ListTickets()
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets after restore, got %d", len(tickets))
	}
	got, err := restored.GetTicket(second.ID)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if !got.DependsOn(first.ID) {
		t.Error("dependency lost across snapshot round trip")
	}
}

func TestNilRepositorySnapshotIsNoop(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	if err := svc.SaveSnapshot(context.Background()); err != nil {
		t.Fatalf("SaveSnapshot without repo: %v", err)
	}
	if err := svc.LoadSnapshot(context.Background()); err != nil {
		t.Fatalf("LoadSnapshot without repo: %v", err)
	}
}
