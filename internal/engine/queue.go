package engine

import (
	"container/heap"
	"time"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

// queueEntry wraps a ticket id plus the priority and creation time captured
// at enqueue. Entries are never updated in place: re-prioritizing a queued
// ticket pushes a fresh entry and the stale one is discarded lazily when it
// surfaces at dequeue.
type queueEntry struct {
	ticketID  int64
	priority  domain.TicketPriority
	createdAt time.Time
	seq       uint64
}

// urgentHeap orders HIGH/CRITICAL entries by severity descending, then
// ticket creation time ascending, then enqueue sequence as the final
// deterministic tie-break.
type urgentHeap []*queueEntry

func (h urgentHeap) Len() int { return len(h) }

func (h urgentHeap) Less(i, j int) bool { return less(h[i], h[j]) }

func (h urgentHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *urgentHeap) Push(x any) {
	*h = append(*h, x.(*queueEntry))
}

func (h *urgentHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// dispatchQueues is the dual-queue dispatch subsystem: a severity heap for
// HIGH/CRITICAL tickets and a strict FIFO for LOW/MEDIUM.
type dispatchQueues struct {
	urgent   urgentHeap
	standard []*queueEntry
	seq      uint64
}

func newDispatchQueues() *dispatchQueues {
	q := &dispatchQueues{}
	heap.Init(&q.urgent)
	return q
}

// enqueue routes a ticket to the queue matching its current priority.
func (q *dispatchQueues) enqueue(ticket *domain.Ticket) {
	entry := &queueEntry{
		ticketID:  ticket.ID,
		priority:  ticket.Priority,
		createdAt: ticket.CreatedAt,
		seq:       q.seq,
	}
	q.seq++
	if ticket.Priority.Urgent() {
		heap.Push(&q.urgent, entry)
	} else {
		q.standard = append(q.standard, entry)
	}
}

// popNext returns the next live entry, priority queue first. Stale entries
// (live reports false) are discarded as they surface.
func (q *dispatchQueues) popNext(live func(*queueEntry) bool) (*queueEntry, bool) {
	for q.urgent.Len() > 0 {
		entry := heap.Pop(&q.urgent).(*queueEntry)
		if live(entry) {
			return entry, true
		}
	}
	for len(q.standard) > 0 {
		entry := q.standard[0]
		q.standard = q.standard[1:]
		if live(entry) {
			return entry, true
		}
	}
	return nil, false
}

// hasLiveFor reports whether any queued entry for the ticket is still live.
func (q *dispatchQueues) hasLiveFor(ticketID int64, live func(*queueEntry) bool) bool {
	for _, entry := range q.urgent {
		if entry.ticketID == ticketID && live(entry) {
			return true
		}
	}
	for _, entry := range q.standard {
		if entry.ticketID == ticketID && live(entry) {
			return true
		}
	}
	return false
}

// peekUrgent returns the next live priority-queue entry without removing
// anything. Stale entries are skipped but left in place.
func (q *dispatchQueues) peekUrgent(live func(*queueEntry) bool) (*queueEntry, bool) {
	var best *queueEntry
	for _, entry := range q.urgent {
		if !live(entry) {
			continue
		}
		if best == nil || less(entry, best) {
			best = entry
		}
	}
	return best, best != nil
}

// peekStandard returns the next live FIFO entry without removing anything.
func (q *dispatchQueues) peekStandard(live func(*queueEntry) bool) (*queueEntry, bool) {
	for _, entry := range q.standard {
		if live(entry) {
			return entry, true
		}
	}
	return nil, false
}

// counts reports live entry counts for both queues.
func (q *dispatchQueues) counts(live func(*queueEntry) bool) (urgent, standard int) {
	for _, entry := range q.urgent {
		if live(entry) {
			urgent++
		}
	}
	for _, entry := range q.standard {
		if live(entry) {
			standard++
		}
	}
	return urgent, standard
}

func less(a, b *queueEntry) bool {
	if a.priority.Rank() != b.priority.Rank() {
		return a.priority.Rank() > b.priority.Rank()
	}
	if !a.createdAt.Equal(b.createdAt) {
		return a.createdAt.Before(b.createdAt)
	}
	return a.seq < b.seq
}

func (q *dispatchQueues) reset() {
	q.urgent = nil
	q.standard = nil
	q.seq = 0
}
