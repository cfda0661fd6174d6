package scherr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the class of scheduling error
type Kind string

const (
	// KindSelfDependency indicates an edge whose predecessor and successor are the same task
	KindSelfDependency Kind = "SELF_DEPENDENCY"
	// KindCycleDetected indicates an edge that would close a cycle in the dependency graph
	KindCycleDetected Kind = "CYCLE_DETECTED"
	// KindUnknownTask indicates a task id that could not be resolved through the task repository
	KindUnknownTask Kind = "UNKNOWN_TASK"
	// KindDuplicateEdge indicates an edge already exists for the ordered task pair
	KindDuplicateEdge Kind = "DUPLICATE_EDGE"
	// KindGraphInconsistency indicates an invariant violation detected during graph processing
	KindGraphInconsistency Kind = "GRAPH_INCONSISTENCY"
)

// SchedulingError represents a structured error from the scheduling engine.
// All kinds are deterministic logical errors, never transient failures, so
// callers should not retry them.
type SchedulingError struct {
	Kind      Kind
	Message   string
	Operation string
	Context   map[string]interface{}
	Cause     error
}

// Error implements the error interface
func (e *SchedulingError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Message))

	if e.Operation != "" {
		sb.WriteString(fmt.Sprintf(" (operation: %s)", e.Operation))
	}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		sb.WriteString("]")
	}

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	return sb.String()
}

// Unwrap returns the underlying cause for error chain compatibility
func (e *SchedulingError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key-value pair to the error
func (e *SchedulingError) WithContext(key string, value interface{}) *SchedulingError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause attaches the underlying error
func (e *SchedulingError) WithCause(err error) *SchedulingError {
	e.Cause = err
	return e
}

// New creates a SchedulingError of the given kind
func New(kind Kind, message, operation string) *SchedulingError {
	return &SchedulingError{
		Kind:      kind,
		Message:   message,
		Operation: operation,
	}
}

// NewSelfDependency creates an error for an edge that references the same task twice
func NewSelfDependency(taskID string) *SchedulingError {
	return New(KindSelfDependency,
		fmt.Sprintf("task '%s' cannot depend on itself", taskID),
		"add_dependency").
		WithContext("task", taskID)
}

// NewCycleDetected creates an error for an edge insertion that would close a cycle
func NewCycleDetected(predecessorID, successorID string) *SchedulingError {
	return New(KindCycleDetected,
		fmt.Sprintf("dependency %s -> %s would create a cycle", predecessorID, successorID),
		"add_dependency").
		WithContext("predecessor", predecessorID).
		WithContext("successor", successorID)
}

// NewUnknownTask creates an error for a task id that the repository cannot resolve
func NewUnknownTask(taskID, operation string) *SchedulingError {
	return New(KindUnknownTask,
		fmt.Sprintf("task '%s' not found", taskID),
		operation).
		WithContext("task", taskID)
}

// NewDuplicateEdge creates an error for an edge that already exists between the ordered pair.
// Changing an existing dependency's type or lag is a meaningful schedule change,
// so callers must make it explicit with remove-then-add.
func NewDuplicateEdge(predecessorID, successorID string) *SchedulingError {
	return New(KindDuplicateEdge,
		fmt.Sprintf("dependency %s -> %s already exists", predecessorID, successorID),
		"add_dependency").
		WithContext("predecessor", predecessorID).
		WithContext("successor", successorID)
}

// NewGraphInconsistency creates an error for a topological sort that could not
// consume every node. This indicates an invariant violation elsewhere and must
// be surfaced, never swallowed.
func NewGraphInconsistency(ordered, total int) *SchedulingError {
	return New(KindGraphInconsistency,
		fmt.Sprintf("topological sort consumed %d of %d tasks", ordered, total),
		"topological_order").
		WithContext("ordered", ordered).
		WithContext("total", total)
}

// IsKind reports whether err is a SchedulingError of the given kind
func IsKind(err error, kind Kind) bool {
	var se *SchedulingError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// IsCycleDetected reports whether err is a cycle detection error
func IsCycleDetected(err error) bool {
	return IsKind(err, KindCycleDetected)
}

// IsUnknownTask reports whether err is an unknown task error
func IsUnknownTask(err error) bool {
	return IsKind(err, KindUnknownTask)
}

// IsDuplicateEdge reports whether err is a duplicate edge error
func IsDuplicateEdge(err error) bool {
	return IsKind(err, KindDuplicateEdge)
}
