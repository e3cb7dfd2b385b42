package engine

import (
	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// CloseCheck is the result of a dependency resolution query.
type CloseCheck struct {
	CanClose bool
	Blocking []int64
}

// dfsFrame is one explicit traversal frame: the node plus the index of the
// next outgoing edge to follow. An explicit stack bounds traversal depth
// independent of the call stack and makes the recursion path a concrete,
// inspectable set.
type dfsFrame struct {
	id   int64
	next int
}

// canClose walks every prerequisite transitively reachable from id and
// collects those not yet RESOLVED or CLOSED. It never mutates ticket state.
// A node revisited while still on the recursion path means the stored graph
// holds a cycle; that is reported as CircularDependencyError even though
// addDependency should have rejected the closing edge up front.
func (s *store) canClose(id int64) (CloseCheck, error) {
	root, err := s.get(id)
	if err != nil {
		return CloseCheck{}, err
	}

	visited := map[int64]struct{}{root.ID: {}}
	onPath := map[int64]struct{}{root.ID: {}}
	path := []int64{root.ID}
	stack := []dfsFrame{{id: root.ID}}
	var blocking []int64

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		ticket, err := s.get(frame.id)
		if err != nil {
			return CloseCheck{}, err
		}
		if frame.next >= len(ticket.Dependencies) {
			delete(onPath, frame.id)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
			continue
		}
		dep := ticket.Dependencies[frame.next]
		frame.next++

		if _, cycling := onPath[dep]; cycling {
			return CloseCheck{}, apperrors.NewCircularDependency(cycleFrom(path, dep))
		}
		if _, seen := visited[dep]; seen {
			continue
		}
		visited[dep] = struct{}{}

		prereq, err := s.get(dep)
		if err != nil {
			return CloseCheck{}, err
		}
		if !prereq.Status.Terminal() {
			blocking = append(blocking, dep)
		}
		onPath[dep] = struct{}{}
		path = append(path, dep)
		stack = append(stack, dfsFrame{id: dep})
	}

	return CloseCheck{CanClose: len(blocking) == 0, Blocking: blocking}, nil
}

// wouldCycle reports the cycle that adding the edge id -> prereq would
// create, if any: the edge closes a cycle exactly when id is already
// reachable from prereq over existing edges.
func (s *store) wouldCycle(id, prereq int64) ([]int64, bool) {
	parent := map[int64]int64{prereq: prereq}
	queue := []int64{prereq}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == id {
			return chainTo(parent, prereq, id), true
		}
		ticket, ok := s.tickets[current]
		if !ok {
			continue
		}
		for _, dep := range ticket.Dependencies {
			if _, seen := parent[dep]; seen {
				continue
			}
			parent[dep] = current
			queue = append(queue, dep)
		}
	}
	return nil, false
}

// cycleFrom extracts the cycle members from the recursion path, starting at
// the first occurrence of the revisited node.
func cycleFrom(path []int64, repeat int64) []int64 {
	for i, id := range path {
		if id == repeat {
			return append([]int64(nil), path[i:]...)
		}
	}
	return []int64{repeat}
}

// chainTo reconstructs the dependency chain from start to end via the BFS
// parent links, in edge direction.
func chainTo(parent map[int64]int64, start, end int64) []int64 {
	chain := []int64{end}
	for current := end; current != start; {
		current = parent[current]
		chain = append(chain, current)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
