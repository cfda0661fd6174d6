package depgraph

import (
	"sort"

	"github.com/planfold/sched/internal/scherr"
)

// TopologicalOrder returns the given task ids in a total order consistent
// with every edge whose endpoints are both in the set. Edges touching tasks
// outside the set are ignored, which lets a host order one project's tasks
// without pulling in the rest of the store.
//
// The order is deterministic: when several tasks have zero in-degree at the
// same time, they are emitted in ascending task-id order (Kahn's algorithm
// with a sorted ready queue).
//
// Insertion-time cycle checking means the restricted graph is always acyclic,
// but a shortfall in the output is still detected and reported as a
// GraphInconsistency rather than silently truncating the order.
func (s *Store) TopologicalOrder(ids []TaskID) ([]TaskID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inSet := make(map[TaskID]bool, len(ids))
	for _, id := range ids {
		inSet[id] = true
	}

	inDegree := make(map[TaskID]int, len(inSet))
	for id := range inSet {
		count := 0
		for _, key := range s.reverse[id] {
			if inSet[key.pred] {
				count++
			}
		}
		inDegree[id] = count
	}

	var ready []TaskID
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]TaskID, 0, len(inSet))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		order = append(order, current)

		for _, key := range s.forward[current] {
			if !inSet[key.succ] {
				continue
			}
			inDegree[key.succ]--
			if inDegree[key.succ] == 0 {
				ready = insertSorted(ready, key.succ)
			}
		}
	}

	if len(order) != len(inSet) {
		return nil, scherr.NewGraphInconsistency(len(order), len(inSet))
	}

	return order, nil
}

// insertSorted inserts id into an ascending-sorted queue, keeping it sorted
func insertSorted(queue []TaskID, id TaskID) []TaskID {
	i := sort.SearchStrings(queue, id)
	queue = append(queue, "")
	copy(queue[i+1:], queue[i:])
	queue[i] = id
	return queue
}
