package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

// historyLog is the append-only event sequence. Insertion order is
// chronological order; nothing short of a full engine reset removes entries.
type historyLog struct {
	events []domain.HistoryEvent
}

func newHistoryLog() *historyLog {
	return &historyLog{}
}

func (l *historyLog) record(eventType domain.HistoryEventType, ticketID int64, oldValue, newValue map[string]any, now time.Time) domain.HistoryEvent {
	event := domain.HistoryEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		OldValue:  oldValue,
		NewValue:  newValue,
		CreatedAt: now,
	}
	l.events = append(l.events, event)
	return event
}

// recent returns the last n events across all tickets, most recent first.
func (l *historyLog) recent(n int) []domain.HistoryEvent {
	if n <= 0 || len(l.events) == 0 {
		return nil
	}
	if n > len(l.events) {
		n = len(l.events)
	}
	result := make([]domain.HistoryEvent, 0, n)
	for i := len(l.events) - 1; i >= len(l.events)-n; i-- {
		result = append(result, l.events[i])
	}
	return result
}

func (l *historyLog) all() []domain.HistoryEvent {
	return append([]domain.HistoryEvent(nil), l.events...)
}

func (l *historyLog) size() int {
	return len(l.events)
}

func (l *historyLog) reset() {
	l.events = nil
}

// HistoryCursor walks one ticket's events in chronological order without
// materializing them up front. Reset rewinds it to the beginning.
type HistoryCursor struct {
	log      *historyLog
	ticketID int64
	pos      int
}

// EventsFor returns a restartable cursor over the given ticket's events.
func (l *historyLog) eventsFor(ticketID int64) *HistoryCursor {
	return &HistoryCursor{log: l, ticketID: ticketID}
}

// Next yields the next event for the cursor's ticket, or false when the
// sequence is exhausted.
func (c *HistoryCursor) Next() (domain.HistoryEvent, bool) {
	for c.pos < len(c.log.events) {
		event := c.log.events[c.pos]
		c.pos++
		if event.TicketID == c.ticketID {
			return event, true
		}
	}
	return domain.HistoryEvent{}, false
}

// Reset rewinds the cursor to the start of the log.
func (c *HistoryCursor) Reset() {
	c.pos = 0
}
