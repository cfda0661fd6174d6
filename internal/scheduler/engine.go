package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/planfold/sched/internal/depgraph"
	"github.com/planfold/sched/internal/logger"
	"github.com/planfold/sched/internal/scherr"
)

// Engine is the task-dependency and scheduling engine. It owns one dependency
// graph per project, partitioned internally by project id, and consumes task
// records through the TaskRepository collaborator.
//
// A full auto-schedule run is one synchronous unit of work with no internal
// suspension points; graph operations are bounded by O(V+E). Callers
// scheduling different projects may run concurrently.
type Engine struct {
	repo TaskRepository

	mu     sync.Mutex
	graphs map[string]*depgraph.Store

	// now is swappable for deterministic tests
	now func() time.Time
}

// New creates an engine backed by the given task repository
func New(repo TaskRepository) *Engine {
	return &Engine{
		repo:   repo,
		graphs: make(map[string]*depgraph.Store),
		now:    time.Now,
	}
}

// graphFor returns the project's dependency store, creating it on first use
func (e *Engine) graphFor(projectID string) *depgraph.Store {
	e.mu.Lock()
	defer e.mu.Unlock()

	store, ok := e.graphs[projectID]
	if !ok {
		store = depgraph.NewStore()
		e.graphs[projectID] = store
	}
	return store
}

// resolveTask looks a task up through the repository, mapping failures to
// UnknownTask.
func (e *Engine) resolveTask(id depgraph.TaskID, operation string) (TaskSnapshot, error) {
	task, err := e.repo.GetTask(id)
	if err != nil {
		return TaskSnapshot{}, scherr.NewUnknownTask(id, operation).WithCause(err)
	}
	return task, nil
}

// AddDependency inserts a precedence edge between two tasks. Both ids must
// resolve through the repository and belong to the same project; the edge
// must not duplicate an existing ordered pair or close a cycle.
func (e *Engine) AddDependency(pred, succ depgraph.TaskID, depType depgraph.DependencyType, lagDays int) (depgraph.Edge, error) {
	if pred == succ {
		dependencyRejections.WithLabelValues(string(scherr.KindSelfDependency)).Inc()
		return depgraph.Edge{}, scherr.NewSelfDependency(pred)
	}

	predTask, err := e.resolveTask(pred, "add_dependency")
	if err != nil {
		dependencyRejections.WithLabelValues(string(scherr.KindUnknownTask)).Inc()
		return depgraph.Edge{}, err
	}
	succTask, err := e.resolveTask(succ, "add_dependency")
	if err != nil {
		dependencyRejections.WithLabelValues(string(scherr.KindUnknownTask)).Inc()
		return depgraph.Edge{}, err
	}

	// Cross-project dependencies are out of scope; each project's graph is
	// independent. The successor is not resolvable within the predecessor's
	// project, so this surfaces as UnknownTask.
	if predTask.ProjectID != succTask.ProjectID {
		dependencyRejections.WithLabelValues(string(scherr.KindUnknownTask)).Inc()
		return depgraph.Edge{}, scherr.NewUnknownTask(succ, "add_dependency").
			WithContext("project", predTask.ProjectID).
			WithContext("reason", "task belongs to a different project")
	}

	edge, err := e.graphFor(predTask.ProjectID).AddEdge(pred, succ, depType, lagDays)
	if err != nil {
		var kind scherr.Kind
		if se, ok := err.(*scherr.SchedulingError); ok {
			kind = se.Kind
		}
		dependencyRejections.WithLabelValues(string(kind)).Inc()
		return depgraph.Edge{}, err
	}

	dependenciesAdded.Inc()
	logger.GetLogger().Debug("dependency added",
		logger.Field{Key: "project", Value: predTask.ProjectID},
		logger.Field{Key: "predecessor", Value: pred},
		logger.Field{Key: "successor", Value: succ},
		logger.Field{Key: "type", Value: depType.String()},
		logger.Field{Key: "lag_days", Value: lagDays},
	)
	return edge, nil
}

// RemoveDependency deletes the edge for the ordered pair, reporting whether
// one existed. Unknown task ids simply report false.
func (e *Engine) RemoveDependency(pred, succ depgraph.TaskID) bool {
	task, err := e.repo.GetTask(pred)
	if err != nil {
		return false
	}
	return e.graphFor(task.ProjectID).RemoveEdge(pred, succ)
}

// DependenciesOf returns the edges where the task is the successor
func (e *Engine) DependenciesOf(id depgraph.TaskID) []depgraph.Edge {
	task, err := e.repo.GetTask(id)
	if err != nil {
		return nil
	}
	return e.graphFor(task.ProjectID).DependenciesOf(id)
}

// DependentsOf returns the edges where the task is the predecessor
func (e *Engine) DependentsOf(id depgraph.TaskID) []depgraph.Edge {
	task, err := e.repo.GetTask(id)
	if err != nil {
		return nil
	}
	return e.graphFor(task.ProjectID).DependentsOf(id)
}

// BlockingTasks returns the predecessors of a task that are not yet settled
// (done or cancelled), sorted by id.
func (e *Engine) BlockingTasks(id depgraph.TaskID) ([]depgraph.TaskID, error) {
	task, err := e.resolveTask(id, "blocking_tasks")
	if err != nil {
		return nil, err
	}

	blocking := []depgraph.TaskID{}
	for _, edge := range e.graphFor(task.ProjectID).DependenciesOf(id) {
		pred, err := e.resolveTask(edge.Predecessor, "blocking_tasks")
		if err != nil {
			return nil, err
		}
		if !pred.Status.Settled() {
			blocking = append(blocking, pred.ID)
		}
	}
	sort.Strings(blocking)
	return blocking, nil
}

// CanStart reports whether every predecessor of the task is settled
func (e *Engine) CanStart(id depgraph.TaskID) (bool, error) {
	blocking, err := e.BlockingTasks(id)
	if err != nil {
		return false, err
	}
	return len(blocking) == 0, nil
}

// CriticalPath returns the set of zero-slack tasks for a project
func (e *Engine) CriticalPath(projectID string) (map[depgraph.TaskID]bool, error) {
	analysis, err := e.Analyze(projectID)
	if err != nil {
		return nil, err
	}

	critical := make(map[depgraph.TaskID]bool, len(analysis.CriticalPath))
	for _, id := range analysis.CriticalPath {
		critical[id] = true
	}
	return critical, nil
}

// Analyze runs a full critical-path pass over a project and returns per-task
// timings, slack and the critical set. It is read-only.
func (e *Engine) Analyze(projectID string) (*Analysis, error) {
	store := e.graphFor(projectID)

	ids, tasks, err := e.projectSnapshots(projectID, "critical_path")
	if err != nil {
		return nil, err
	}

	order, err := store.TopologicalOrder(ids)
	if err != nil {
		return nil, err
	}

	return analyzeCriticalPath(store, tasks, order)
}

// AutoSchedule assigns concrete start and finish dates to every task in a
// project and writes them back through the repository. The run is atomic with
// respect to resolution: a failure while resolving any task aborts the whole
// run before any date is written, so the project never holds a partial
// schedule.
func (e *Engine) AutoSchedule(projectID string) (map[depgraph.TaskID]ScheduledDates, error) {
	started := time.Now()
	schedule, err := e.autoSchedule(projectID)
	scheduleDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		scheduleRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	scheduleRuns.WithLabelValues("ok").Inc()
	scheduledTasks.Observe(float64(len(schedule)))
	return schedule, nil
}

func (e *Engine) autoSchedule(projectID string) (map[depgraph.TaskID]ScheduledDates, error) {
	store := e.graphFor(projectID)

	ids, tasks, err := e.projectSnapshots(projectID, "auto_schedule")
	if err != nil {
		return nil, err
	}

	order, err := store.TopologicalOrder(ids)
	if err != nil {
		return nil, err
	}

	today := e.now()
	schedule := make(map[depgraph.TaskID]ScheduledDates, len(order))
	for _, id := range order {
		dates, err := resolveDates(tasks[id], store.DependenciesOf(id), schedule, today)
		if err != nil {
			return nil, err
		}
		schedule[id] = dates
	}

	// All tasks resolved; only now touch the repository.
	for _, id := range order {
		dates := schedule[id]
		if err := e.repo.SetTaskDates(id, dates.Start, dates.Finish); err != nil {
			return nil, scherr.New(
				scherr.KindGraphInconsistency,
				"failed to write resolved dates",
				"auto_schedule").
				WithContext("task", id).
				WithCause(err)
		}
	}

	logger.GetLogger().Debug("project scheduled",
		logger.Field{Key: "project", Value: projectID},
		logger.Field{Key: "tasks", Value: len(order)},
		logger.Field{Key: "edges", Value: store.Len()},
	)
	return schedule, nil
}

// projectSnapshots fetches the ids and snapshots of every task in a project
func (e *Engine) projectSnapshots(projectID, operation string) ([]depgraph.TaskID, map[depgraph.TaskID]TaskSnapshot, error) {
	ids, err := e.repo.ProjectTasks(projectID)
	if err != nil {
		return nil, nil, scherr.NewUnknownTask(projectID, operation).WithCause(err)
	}

	tasks := make(map[depgraph.TaskID]TaskSnapshot, len(ids))
	for _, id := range ids {
		task, err := e.resolveTask(id, operation)
		if err != nil {
			return nil, nil, err
		}
		tasks[id] = task
	}
	return ids, tasks, nil
}

// ProjectEdges returns every dependency edge currently held for a project,
// for hosts that persist the graph between sessions.
func (e *Engine) ProjectEdges(projectID string) []depgraph.Edge {
	return e.graphFor(projectID).Edges()
}
