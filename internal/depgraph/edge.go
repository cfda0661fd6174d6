package depgraph

import "fmt"

// TaskID identifies a task owned by the external task repository.
type TaskID = string

// EdgeID uniquely identifies a dependency edge.
type EdgeID = string

// DependencyType describes how a predecessor constrains its successor.
// The four types are a closed set; no extension is expected.
type DependencyType int

const (
	// FinishToStart constrains the successor's start by the predecessor's finish
	FinishToStart DependencyType = iota
	// StartToStart constrains the successor's start by the predecessor's start
	StartToStart
	// FinishToFinish constrains the successor's finish by the predecessor's finish
	FinishToFinish
	// StartToFinish constrains the successor's finish by the predecessor's start
	StartToFinish
)

// String returns the canonical name of the dependency type
func (t DependencyType) String() string {
	switch t {
	case FinishToStart:
		return "finish_to_start"
	case StartToStart:
		return "start_to_start"
	case FinishToFinish:
		return "finish_to_finish"
	case StartToFinish:
		return "start_to_finish"
	default:
		return "unknown"
	}
}

// ParseDependencyType converts a canonical name into a DependencyType
func ParseDependencyType(s string) (DependencyType, error) {
	switch s {
	case "finish_to_start", "FS":
		return FinishToStart, nil
	case "start_to_start", "SS":
		return StartToStart, nil
	case "finish_to_finish", "FF":
		return FinishToFinish, nil
	case "start_to_finish", "SF":
		return StartToFinish, nil
	default:
		return FinishToStart, fmt.Errorf("unknown dependency type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (t DependencyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *DependencyType) UnmarshalText(text []byte) error {
	parsed, err := ParseDependencyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Edge is a directed precedence relationship between two tasks.
// LagDays shifts the constraint: positive delays the successor (lag),
// negative allows overlap (lead).
type Edge struct {
	ID          EdgeID         `json:"id"`
	Predecessor TaskID         `json:"predecessor"`
	Successor   TaskID         `json:"successor"`
	Type        DependencyType `json:"type"`
	LagDays     int            `json:"lag_days"`
}
