package scherr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulingError_Error(t *testing.T) {
	err := NewCycleDetected("a", "b")

	msg := err.Error()
	assert.Contains(t, msg, "CYCLE_DETECTED")
	assert.Contains(t, msg, "a -> b")
	assert.Contains(t, msg, "operation: add_dependency")
	assert.Contains(t, msg, "predecessor=a")
	assert.Contains(t, msg, "successor=b")
}

func TestSchedulingError_Unwrap(t *testing.T) {
	cause := errors.New("row not found")
	err := NewUnknownTask("t1", "add_dependency").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "row not found")
}

func TestSchedulingError_WrappedKindDetection(t *testing.T) {
	inner := NewDuplicateEdge("a", "b")
	wrapped := fmt.Errorf("building graph: %w", inner)

	assert.True(t, IsDuplicateEdge(wrapped))
	assert.True(t, IsKind(wrapped, KindDuplicateEdge))
	assert.False(t, IsCycleDetected(wrapped))
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"self dependency", NewSelfDependency("x"), KindSelfDependency},
		{"cycle", NewCycleDetected("a", "b"), KindCycleDetected},
		{"unknown task", NewUnknownTask("x", "can_start"), KindUnknownTask},
		{"duplicate edge", NewDuplicateEdge("a", "b"), KindDuplicateEdge},
		{"graph inconsistency", NewGraphInconsistency(2, 5), KindGraphInconsistency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}

	assert.False(t, IsKind(errors.New("plain"), KindCycleDetected))
	assert.False(t, IsKind(nil, KindCycleDetected))
}

func TestNewGraphInconsistency_Counts(t *testing.T) {
	err := NewGraphInconsistency(3, 7)
	assert.Contains(t, err.Error(), "3 of 7")
}
