package engine

import (
	"time"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/domain"
)

// UndoKind identifies which mutation an UndoAction reverses.
type UndoKind string

const (
	UndoCreate         UndoKind = "CREATE"
	UndoStatusChange   UndoKind = "STATUS_CHANGE"
	UndoPriorityChange UndoKind = "PRIORITY_CHANGE"
	UndoAssign         UndoKind = "ASSIGN"
	UndoDependencyAdd  UndoKind = "DEPENDENCY_ADD"
	UndoDispatch       UndoKind = "DISPATCH"
)

// UndoAction captures the prior state needed to exactly reverse one
// mutation. Only the fields relevant to its kind are populated.
type UndoAction struct {
	Kind           UndoKind
	TicketID       int64
	PrevStatus     domain.TicketStatus
	PrevResolvedAt *time.Time
	PrevPriority   domain.TicketPriority
	PrevAssignee   *string
	DependencyID   int64
}

// undoStack is a LIFO of reversible actions, one per mutation. A positive
// maxDepth caps retained history by evicting the oldest entries.
type undoStack struct {
	actions  []UndoAction
	maxDepth int
}

func newUndoStack(maxDepth int) *undoStack {
	return &undoStack{maxDepth: maxDepth}
}

func (s *undoStack) push(action UndoAction) {
	s.actions = append(s.actions, action)
	if s.maxDepth > 0 && len(s.actions) > s.maxDepth {
		s.actions = s.actions[len(s.actions)-s.maxDepth:]
	}
}

func (s *undoStack) pop() (UndoAction, bool) {
	if len(s.actions) == 0 {
		return UndoAction{}, false
	}
	action := s.actions[len(s.actions)-1]
	s.actions = s.actions[:len(s.actions)-1]
	return action, true
}

func (s *undoStack) depth() int {
	return len(s.actions)
}

func (s *undoStack) reset() {
	s.actions = nil
}
