package project

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/planfold/sched/internal/depgraph"
	"github.com/planfold/sched/internal/scheduler"
)

// MemRepository is an in-memory scheduler.TaskRepository. It backs the CLI
// and doubles as the engine's test repository.
type MemRepository struct {
	mu        sync.RWMutex
	tasks     map[depgraph.TaskID]scheduler.TaskSnapshot
	byProject map[string][]depgraph.TaskID
}

// NewMemRepository creates an empty repository
func NewMemRepository() *MemRepository {
	return &MemRepository{
		tasks:     make(map[depgraph.TaskID]scheduler.TaskSnapshot),
		byProject: make(map[string][]depgraph.TaskID),
	}
}

// BuildRepository creates a repository holding every task of a definition
func BuildRepository(def *Definition) *MemRepository {
	repo := NewMemRepository()
	for _, t := range def.Tasks {
		repo.PutTask(t.Snapshot(def.Project))
	}
	return repo
}

// PutTask inserts or replaces a task snapshot
func (r *MemRepository) PutTask(task scheduler.TaskSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.ID]; !exists {
		r.byProject[task.ProjectID] = append(r.byProject[task.ProjectID], task.ID)
	}
	r.tasks[task.ID] = task
}

// GetTask implements scheduler.TaskRepository
func (r *MemRepository) GetTask(id depgraph.TaskID) (scheduler.TaskSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return scheduler.TaskSnapshot{}, fmt.Errorf("task %q not found", id)
	}
	return task, nil
}

// SetTaskDates implements scheduler.TaskRepository
func (r *MemRepository) SetTaskDates(id depgraph.TaskID, start, finish time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.tasks[id]
	if !exists {
		return fmt.Errorf("task %q not found", id)
	}
	task.StartDate = &start
	task.DueDate = &finish
	r.tasks[id] = task
	return nil
}

// ProjectTasks implements scheduler.TaskRepository. Ids are returned sorted
// so downstream ordering is reproducible.
func (r *MemRepository) ProjectTasks(projectID string) ([]depgraph.TaskID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, exists := r.byProject[projectID]
	if !exists {
		return nil, fmt.Errorf("project %q not found", projectID)
	}
	out := make([]depgraph.TaskID, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out, nil
}
