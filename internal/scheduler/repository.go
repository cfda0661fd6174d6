package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/planfold/sched/internal/depgraph"
)

// HoursPerWorkday is the fixed workday length used to convert hour estimates
// into whole scheduling days. Calendar and holiday awareness is out of scope;
// the engine uses simple calendar-day arithmetic throughout.
const HoursPerWorkday = 8.0

// TaskStatus is the lifecycle state of a task as reported by the repository
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusBlocked    TaskStatus = "blocked"
	StatusCancelled  TaskStatus = "cancelled"
)

// Settled reports whether the status no longer blocks dependents.
// A predecessor unblocks its successors once it is done or cancelled.
func (s TaskStatus) Settled() bool {
	return s == StatusDone || s == StatusCancelled
}

// ParseTaskStatus converts a status name into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch s {
	case "not_started", "not-started", "":
		return StatusNotStarted, nil
	case "in_progress", "in-progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	case "blocked":
		return StatusBlocked, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return StatusNotStarted, fmt.Errorf("unknown task status %q", s)
	}
}

// TaskSnapshot is the engine's read-only view of a task record. The task
// itself is owned by the external repository; the engine only references it
// by id.
type TaskSnapshot struct {
	ID            depgraph.TaskID
	ProjectID     string
	EstimateHours float64
	StartDate     *time.Time
	DueDate       *time.Time
	Status        TaskStatus
}

// DurationDays converts the hour estimate into whole workdays, rounding up
// and never below one day.
func (t TaskSnapshot) DurationDays() int {
	days := int(math.Ceil(t.EstimateHours / HoursPerWorkday))
	if days < 1 {
		return 1
	}
	return days
}

// durationUnits returns the estimate in fractional days for critical-path
// arithmetic, where exactness matters more than calendar alignment.
func (t TaskSnapshot) durationUnits() float64 {
	if t.EstimateHours <= 0 {
		return 1.0
	}
	return t.EstimateHours / HoursPerWorkday
}

// TaskRepository is the collaborator the engine reads task records from and
// writes resolved dates back to. Implementations own persistence; the engine
// never stores tasks itself.
//
// Cascading edge removal on task deletion is the repository's responsibility:
// it must call RemoveDependency for every edge touching a task before the
// deletion completes.
type TaskRepository interface {
	// GetTask returns the current snapshot for a task id
	GetTask(id depgraph.TaskID) (TaskSnapshot, error)

	// SetTaskDates persists resolved start and finish dates for a task
	SetTaskDates(id depgraph.TaskID, start, finish time.Time) error

	// ProjectTasks returns the ids of every task in a project
	ProjectTasks(projectID string) ([]depgraph.TaskID, error)
}
