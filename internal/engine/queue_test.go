package engine

import (
	"testing"
	"time"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

func allLive(*queueEntry) bool { return true }

func ticketFixture(id int64, priority domain.TicketPriority, createdAt time.Time) *domain.Ticket {
	return &domain.Ticket{
		ID:        id,
		Title:     "t",
		Priority:  priority,
		Status:    domain.TicketStatusOpen,
		CreatedAt: createdAt,
	}
}

func TestUrgentHeapOrdering(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	q := newDispatchQueues()
	q.enqueue(ticketFixture(1, domain.TicketPriorityHigh, base))
	q.enqueue(ticketFixture(2, domain.TicketPriorityCritical, base.Add(2*time.Minute)))
	q.enqueue(ticketFixture(3, domain.TicketPriorityCritical, base.Add(time.Minute)))
	q.enqueue(ticketFixture(4, domain.TicketPriorityHigh, base.Add(-time.Minute)))

	want := []int64{3, 2, 4, 1}
	for i, id := range want {
		entry, ok := q.popNext(allLive)
		if !ok {
			t.Fatalf("pop %d: queue empty", i)
		}
		if entry.ticketID != id {
			t.Fatalf("pop %d = %d, want %d", i, entry.ticketID, id)
		}
	}
}

func TestEqualTimestampsFallBackToSequence(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	q := newDispatchQueues()
	q.enqueue(ticketFixture(1, domain.TicketPriorityCritical, now))
	q.enqueue(ticketFixture(2, domain.TicketPriorityCritical, now))

	entry, _ := q.popNext(allLive)
	if entry.ticketID != 1 {
		t.Fatalf("tie broke to %d, want first-enqueued 1", entry.ticketID)
	}
}

func TestStandardQueueFIFO(t *testing.T) {
	now := time.Now()
	q := newDispatchQueues()
	// MEDIUM and LOW share the standard queue in strict enqueue order.
	q.enqueue(ticketFixture(1, domain.TicketPriorityLow, now))
	q.enqueue(ticketFixture(2, domain.TicketPriorityMedium, now))
	q.enqueue(ticketFixture(3, domain.TicketPriorityLow, now))

	for i, want := range []int64{1, 2, 3} {
		entry, ok := q.popNext(allLive)
		if !ok || entry.ticketID != want {
			t.Fatalf("pop %d = %v, want %d", i, entry, want)
		}
	}
}

func TestPriorityQueueDrainsBeforeStandard(t *testing.T) {
	now := time.Now()
	q := newDispatchQueues()
	q.enqueue(ticketFixture(1, domain.TicketPriorityLow, now))
	q.enqueue(ticketFixture(2, domain.TicketPriorityHigh, now))

	entry, _ := q.popNext(allLive)
	if entry.ticketID != 2 {
		t.Fatalf("popped %d, want priority-queue ticket 2", entry.ticketID)
	}
	entry, _ = q.popNext(allLive)
	if entry.ticketID != 1 {
		t.Fatalf("popped %d, want standard ticket 1", entry.ticketID)
	}
	if _, ok := q.popNext(allLive); ok {
		t.Fatal("pop on drained queues succeeded")
	}
}

func TestPopDiscardsStaleEntries(t *testing.T) {
	now := time.Now()
	q := newDispatchQueues()
	q.enqueue(ticketFixture(1, domain.TicketPriorityCritical, now))
	q.enqueue(ticketFixture(2, domain.TicketPriorityCritical, now))

	stale := map[int64]bool{1: true}
	live := func(entry *queueEntry) bool { return !stale[entry.ticketID] }

	entry, ok := q.popNext(live)
	if !ok || entry.ticketID != 2 {
		t.Fatalf("pop = %v, want ticket 2 after skipping stale head", entry)
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	now := time.Now()
	q := newDispatchQueues()
	q.enqueue(ticketFixture(1, domain.TicketPriorityHigh, now))
	q.enqueue(ticketFixture(2, domain.TicketPriorityLow, now))

	if entry, ok := q.peekUrgent(allLive); !ok || entry.ticketID != 1 {
		t.Fatalf("peek urgent = %v, want ticket 1", entry)
	}
	if entry, ok := q.peekStandard(allLive); !ok || entry.ticketID != 2 {
		t.Fatalf("peek standard = %v, want ticket 2", entry)
	}

	urgent, standard := q.counts(allLive)
	if urgent != 1 || standard != 1 {
		t.Fatalf("counts after peek = %d/%d, want 1/1", urgent, standard)
	}
}

func TestCountsSkipStale(t *testing.T) {
	now := time.Now()
	q := newDispatchQueues()
	q.enqueue(ticketFixture(1, domain.TicketPriorityHigh, now))
	q.enqueue(ticketFixture(2, domain.TicketPriorityLow, now))
	q.enqueue(ticketFixture(3, domain.TicketPriorityLow, now))

	stale := map[int64]bool{1: true, 3: true}
	live := func(entry *queueEntry) bool { return !stale[entry.ticketID] }

	urgent, standard := q.counts(live)
	if urgent != 0 || standard != 1 {
		t.Fatalf("counts = %d/%d, want 0/1", urgent, standard)
	}
	if _, ok := q.peekUrgent(live); ok {
		t.Fatal("peek returned a stale urgent entry")
	}
}
