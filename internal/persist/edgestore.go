// Package persist provides an optional durable store for dependency edges.
// The engine itself only guarantees in-memory consistency during a session;
// hosts that want the graph to survive restarts save and reload it here.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/planfold/sched/internal/depgraph"
)

// Config holds configuration for the edge store
type Config struct {
	// Path is the directory for database files. Ignored when InMemory is true.
	Path string

	// InMemory disables disk persistence. Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability
	SyncWrites bool
}

// EdgeStore persists dependency edges per project in an embedded BadgerDB
type EdgeStore struct {
	db *badger.DB
}

// Open creates or opens an edge store with the given configuration
func Open(cfg Config) (*EdgeStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge store: %w", err)
	}
	return &EdgeStore{db: db}, nil
}

// Close releases the underlying database
func (s *EdgeStore) Close() error {
	return s.db.Close()
}

func projectKey(projectID string) []byte {
	return []byte("edges/" + projectID)
}

// SaveProject overwrites the stored edge set for a project
func (s *EdgeStore) SaveProject(projectID string, edges []depgraph.Edge) error {
	data, err := json.Marshal(edges)
	if err != nil {
		return fmt.Errorf("failed to encode edges for project %q: %w", projectID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(projectKey(projectID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to persist edges for project %q: %w", projectID, err)
	}
	return nil
}

// LoadProject returns the stored edge set for a project. A project with no
// stored edges yields an empty slice, not an error.
func (s *EdgeStore) LoadProject(projectID string) ([]depgraph.Edge, error) {
	var edges []depgraph.Edge

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(projectKey(projectID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &edges)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load edges for project %q: %w", projectID, err)
	}
	return edges, nil
}
