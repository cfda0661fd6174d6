package depgraph

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/planfold/sched/internal/scherr"
)

// pairKey is the ordered (predecessor, successor) pair an edge is keyed by.
// At most one edge may exist per pair.
type pairKey struct {
	pred TaskID
	succ TaskID
}

// Store owns the directed dependency edge set for a single project and keeps
// it acyclic. Lookups in both directions are O(1) amortized via adjacency
// indexes keyed by task id.
//
// A Store should be instantiated per project. Mutating operations are guarded
// by a single mutex, the minimal safe wrapper for multi-goroutine hosts;
// concurrent writers to the same project are serialized here.
type Store struct {
	mu      sync.RWMutex
	edges   map[pairKey]Edge
	forward map[TaskID][]pairKey // predecessor -> edges it heads (dependents direction)
	reverse map[TaskID][]pairKey // successor -> edges it tails (dependencies direction)
}

// NewStore creates an empty dependency store
func NewStore() *Store {
	return &Store{
		edges:   make(map[pairKey]Edge),
		forward: make(map[TaskID][]pairKey),
		reverse: make(map[TaskID][]pairKey),
	}
}

// AddEdge inserts a dependency edge after validating it keeps the graph a DAG.
// Validation order: self-edge, duplicate ordered pair, cycle. Rejection never
// leaves partial state behind. Task existence is the caller's concern; the
// store only knows ids.
func (s *Store) AddEdge(pred, succ TaskID, depType DependencyType, lagDays int) (Edge, error) {
	if pred == succ {
		return Edge{}, scherr.NewSelfDependency(pred)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{pred: pred, succ: succ}
	if _, exists := s.edges[key]; exists {
		return Edge{}, scherr.NewDuplicateEdge(pred, succ)
	}

	if s.pathExists(succ, pred) {
		return Edge{}, scherr.NewCycleDetected(pred, succ)
	}

	edge := Edge{
		ID:          uuid.NewString(),
		Predecessor: pred,
		Successor:   succ,
		Type:        depType,
		LagDays:     lagDays,
	}

	s.edges[key] = edge
	s.forward[pred] = append(s.forward[pred], key)
	s.reverse[succ] = append(s.reverse[succ], key)

	return edge, nil
}

// RemoveEdge deletes the edge for the ordered pair. It reports whether an
// edge existed.
func (s *Store) RemoveEdge(pred, succ TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{pred: pred, succ: succ}
	if _, exists := s.edges[key]; !exists {
		return false
	}

	delete(s.edges, key)
	s.forward[pred] = removeKey(s.forward[pred], key)
	s.reverse[succ] = removeKey(s.reverse[succ], key)

	if len(s.forward[pred]) == 0 {
		delete(s.forward, pred)
	}
	if len(s.reverse[succ]) == 0 {
		delete(s.reverse, succ)
	}

	return true
}

// DependenciesOf returns the edges where task is the successor, sorted by
// predecessor id for deterministic output.
func (s *Store) DependenciesOf(task TaskID) []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.reverse[task]
	edges := make([]Edge, 0, len(keys))
	for _, k := range keys {
		edges = append(edges, s.edges[k])
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Predecessor < edges[j].Predecessor
	})
	return edges
}

// DependentsOf returns the edges where task is the predecessor, sorted by
// successor id for deterministic output.
func (s *Store) DependentsOf(task TaskID) []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.forward[task]
	edges := make([]Edge, 0, len(keys))
	for _, k := range keys {
		edges = append(edges, s.edges[k])
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Successor < edges[j].Successor
	})
	return edges
}

// HasEdge reports whether an edge exists for the ordered pair
func (s *Store) HasEdge(pred, succ TaskID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.edges[pairKey{pred: pred, succ: succ}]
	return exists
}

// Edges returns every edge in the store, sorted by (predecessor, successor)
func (s *Store) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Predecessor != edges[j].Predecessor {
			return edges[i].Predecessor < edges[j].Predecessor
		}
		return edges[i].Successor < edges[j].Successor
	})
	return edges
}

// Len returns the number of edges in the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

func removeKey(keys []pairKey, key pairKey) []pairKey {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
