package engine

import "testing"

func TestUndoStackLIFO(t *testing.T) {
	stack := newUndoStack(0)
	stack.push(UndoAction{Kind: UndoCreate, TicketID: 1})
	stack.push(UndoAction{Kind: UndoAssign, TicketID: 2})

	action, ok := stack.pop()
	if !ok || action.TicketID != 2 {
		t.Fatalf("pop = %+v, want ticket 2", action)
	}
	action, ok = stack.pop()
	if !ok || action.TicketID != 1 {
		t.Fatalf("pop = %+v, want ticket 1", action)
	}
	if _, ok := stack.pop(); ok {
		t.Fatal("pop on empty stack succeeded")
	}
}

func TestUndoStackCapEvictsOldest(t *testing.T) {
	stack := newUndoStack(2)
	stack.push(UndoAction{Kind: UndoCreate, TicketID: 1})
	stack.push(UndoAction{Kind: UndoCreate, TicketID: 2})
	stack.push(UndoAction{Kind: UndoCreate, TicketID: 3})

	if stack.depth() != 2 {
		t.Fatalf("depth = %d, want 2", stack.depth())
	}
	action, _ := stack.pop()
	if action.TicketID != 3 {
		t.Fatalf("top = %d, want 3", action.TicketID)
	}
	action, _ = stack.pop()
	if action.TicketID != 2 {
		t.Fatalf("next = %d, want 2 (oldest evicted)", action.TicketID)
	}
	if _, ok := stack.pop(); ok {
		t.Fatal("evicted entry still on stack")
	}
}
