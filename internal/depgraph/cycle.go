package depgraph

// pathExists reports whether a directed path exists from the given start task
// to the target, following existing edges in the dependents direction. It is
// the cycle guard for AddEdge: a proposed edge pred -> succ closes a cycle
// exactly when succ already reaches pred.
//
// The search is an iterative depth-first walk with a visited set, so it
// terminates on any graph and costs O(V+E) in the worst case.
//
// Caller must hold s.mu.
func (s *Store) pathExists(start, target TaskID) bool {
	if start == target {
		return true
	}

	visited := make(map[TaskID]bool)
	stack := []TaskID{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, key := range s.forward[current] {
			if !visited[key.succ] {
				stack = append(stack, key.succ)
			}
		}
	}

	return false
}
