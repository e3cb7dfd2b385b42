package engine

import (
	"testing"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"

	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

func TestCanCloseChain(t *testing.T) {
	e := newTestEngine(t)
	a := mustCreate(t, e, "a", domain.TicketPriorityLow)
	b := mustCreate(t, e, "b", domain.TicketPriorityLow)
	c := mustCreate(t, e, "c", domain.TicketPriorityLow)
	if _, err := e.AddDependency(a.ID, b.ID); err != nil {
		t.Fatalf("a -> b: %v", err)
	}
	if _, err := e.AddDependency(b.ID, c.ID); err != nil {
		t.Fatalf("b -> c: %v", err)
	}

	check, err := e.CanClose(a.ID)
	if err != nil {
		t.Fatalf("can close: %v", err)
	}
	if check.CanClose {
		t.Fatal("closable with two open prerequisites")
	}
	if len(check.Blocking) != 2 {
		t.Fatalf("blocking = %v, want b and c", check.Blocking)
	}

	if _, err := e.UpdateStatus(c.ID, domain.TicketStatusResolved); err != nil {
		t.Fatalf("resolve c: %v", err)
	}
	check, _ = e.CanClose(a.ID)
	if len(check.Blocking) != 1 || check.Blocking[0] != b.ID {
		t.Fatalf("blocking = %v, want [%d]", check.Blocking, b.ID)
	}

	if _, err := e.UpdateStatus(b.ID, domain.TicketStatusResolved); err != nil {
		t.Fatalf("resolve b: %v", err)
	}
	check, _ = e.CanClose(a.ID)
	if !check.CanClose {
		t.Fatalf("not closable with all prerequisites resolved: %+v", check)
	}
}

func TestCanCloseDiamondVisitsOnce(t *testing.T) {
	// a depends on b and c, both depend on d. The shared node must be
	// reported as blocking exactly once.
	e := newTestEngine(t)
	a := mustCreate(t, e, "a", domain.TicketPriorityLow)
	b := mustCreate(t, e, "b", domain.TicketPriorityLow)
	c := mustCreate(t, e, "c", domain.TicketPriorityLow)
	d := mustCreate(t, e, "d", domain.TicketPriorityLow)

	for _, edge := range [][2]int64{{a.ID, b.ID}, {a.ID, c.ID}, {b.ID, d.ID}, {c.ID, d.ID}} {
		if _, err := e.AddDependency(edge[0], edge[1]); err != nil {
			t.Fatalf("edge %d -> %d: %v", edge[0], edge[1], err)
		}
	}
	if _, err := e.UpdateStatus(b.ID, domain.TicketStatusResolved); err != nil {
		t.Fatalf("resolve b: %v", err)
	}
	if _, err := e.UpdateStatus(c.ID, domain.TicketStatusResolved); err != nil {
		t.Fatalf("resolve c: %v", err)
	}

	check, err := e.CanClose(a.ID)
	if err != nil {
		t.Fatalf("can close: %v", err)
	}
	if check.CanClose {
		t.Fatal("closable while d is open")
	}
	if len(check.Blocking) != 1 || check.Blocking[0] != d.ID {
		t.Fatalf("blocking = %v, want exactly [%d]", check.Blocking, d.ID)
	}
}

func TestCanCloseEmptyDependencies(t *testing.T) {
	e := newTestEngine(t)
	a := mustCreate(t, e, "a", domain.TicketPriorityLow)
	check, err := e.CanClose(a.ID)
	if err != nil {
		t.Fatalf("can close: %v", err)
	}
	if !check.CanClose || len(check.Blocking) != 0 {
		t.Fatalf("empty dependency set must be closable: %+v", check)
	}
}

func TestCanCloseUnknownTicket(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.CanClose(7); !apperrors.HasCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCanCloseDetectsStoredCycle(t *testing.T) {
	// AddDependency rejects cycles up front, so force one directly into
	// the store to exercise the defensive traversal check.
	e := newTestEngine(t)
	a := mustCreate(t, e, "a", domain.TicketPriorityLow)
	b := mustCreate(t, e, "b", domain.TicketPriorityLow)
	e.store.tickets[a.ID].Dependencies = []int64{b.ID}
	e.store.tickets[b.ID].Dependencies = []int64{a.ID}

	_, err := e.CanClose(a.ID)
	if !apperrors.HasCode(err, "CIRCULAR_DEPENDENCY") {
		t.Fatalf("expected CIRCULAR_DEPENDENCY, got %v", err)
	}
	domainErr := apperrors.ToDomainError(err)
	cycle, ok := domainErr.Details["cycle"].([]int64)
	if !ok || len(cycle) < 2 {
		t.Fatalf("cycle members missing from error details: %v", domainErr.Details)
	}
}

func TestCanCloseIsReadOnly(t *testing.T) {
	e := newTestEngine(t)
	a := mustCreate(t, e, "a", domain.TicketPriorityLow)
	b := mustCreate(t, e, "b", domain.TicketPriorityLow)
	if _, err := e.AddDependency(a.ID, b.ID); err != nil {
		t.Fatalf("a -> b: %v", err)
	}

	before := e.Recent(10)
	if _, err := e.CanClose(a.ID); err != nil {
		t.Fatalf("can close: %v", err)
	}
	after := e.Recent(10)
	if len(after) != len(before) {
		t.Fatal("can close appended history")
	}
	ticket, _ := e.Ticket(b.ID)
	if ticket.Status != domain.TicketStatusOpen {
		t.Fatal("can close mutated ticket status")
	}
}

func TestWouldCycleChain(t *testing.T) {
	e := newTestEngine(t)
	a := mustCreate(t, e, "a", domain.TicketPriorityLow)
	b := mustCreate(t, e, "b", domain.TicketPriorityLow)
	c := mustCreate(t, e, "c", domain.TicketPriorityLow)
	if _, err := e.AddDependency(a.ID, b.ID); err != nil {
		t.Fatalf("a -> b: %v", err)
	}
	if _, err := e.AddDependency(b.ID, c.ID); err != nil {
		t.Fatalf("b -> c: %v", err)
	}

	cycle, bad := e.store.wouldCycle(c.ID, a.ID)
	if !bad {
		t.Fatal("c -> a should close a cycle")
	}
	if cycle[0] != a.ID || cycle[len(cycle)-1] != c.ID {
		t.Fatalf("cycle chain = %v, want a..c", cycle)
	}

	if _, bad := e.store.wouldCycle(a.ID, c.ID); bad {
		t.Fatal("a -> c is a forward edge, not a cycle")
	}
}
