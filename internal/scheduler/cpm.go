package scheduler

import (
	"math"

	"github.com/planfold/sched/internal/depgraph"
	"github.com/planfold/sched/internal/scherr"
)

// slackTolerance absorbs floating-point noise in slack comparisons. Durations
// may be fractional days derived from hour counts, so exact zero is too
// strict.
const slackTolerance = 1e-3

// TaskTiming holds the critical-path timing of one task, in fractional days
// since the project epoch.
type TaskTiming struct {
	EarliestStart  float64
	EarliestFinish float64
	LatestStart    float64
	LatestFinish   float64
	Slack          float64
	Critical       bool
}

// Analysis is the result of a critical-path pass over one project
type Analysis struct {
	Timings map[depgraph.TaskID]*TaskTiming

	// CriticalPath lists every zero-slack task in topological order. It is a
	// set of critical tasks, not necessarily a single simple path; callers
	// needing an ordered walk must follow zero-slack edges from a root to a
	// sink.
	CriticalPath []depgraph.TaskID

	// TotalDuration is the project finish in days since the epoch
	TotalDuration float64

	// Order is the topological order the passes ran in
	Order []depgraph.TaskID
}

// IsCritical reports whether a task is on the critical path
func (a *Analysis) IsCritical(id depgraph.TaskID) bool {
	t, ok := a.Timings[id]
	return ok && t.Critical
}

// analyzeCriticalPath runs a forward pass (earliest dates) and a backward
// pass (latest dates) over the given topological order, computing per-task
// slack. Arithmetic is done in duration units (days since a common epoch,
// not calendar dates) to keep it exact.
func analyzeCriticalPath(store *depgraph.Store, tasks map[depgraph.TaskID]TaskSnapshot, order []depgraph.TaskID) (*Analysis, error) {
	inSet := make(map[depgraph.TaskID]bool, len(order))
	for _, id := range order {
		inSet[id] = true
	}

	durations := make(map[depgraph.TaskID]float64, len(order))
	for _, id := range order {
		task, ok := tasks[id]
		if !ok {
			return nil, scherr.New(
				scherr.KindGraphInconsistency,
				"ordered task missing from snapshot set",
				"critical_path").
				WithContext("task", id)
		}
		durations[id] = task.durationUnits()
	}

	analysis := &Analysis{
		Timings: make(map[depgraph.TaskID]*TaskTiming, len(order)),
		Order:   order,
	}

	// Forward pass: earliest start is the max over all predecessor
	// constraints, zero (the project epoch) for root tasks.
	for _, id := range order {
		duration := durations[id]
		es := 0.0
		for _, edge := range store.DependenciesOf(id) {
			if !inSet[edge.Predecessor] {
				continue
			}
			pred := analysis.Timings[edge.Predecessor]
			lag := float64(edge.LagDays)

			var bound float64
			switch edge.Type {
			case depgraph.FinishToStart:
				bound = pred.EarliestFinish + lag
			case depgraph.StartToStart:
				bound = pred.EarliestStart + lag
			case depgraph.FinishToFinish:
				bound = pred.EarliestFinish + lag - duration
			case depgraph.StartToFinish:
				bound = pred.EarliestStart + lag - duration
			}
			if bound > es {
				es = bound
			}
		}

		analysis.Timings[id] = &TaskTiming{
			EarliestStart:  es,
			EarliestFinish: es + duration,
		}
	}

	projectFinish := 0.0
	for _, timing := range analysis.Timings {
		if timing.EarliestFinish > projectFinish {
			projectFinish = timing.EarliestFinish
		}
	}
	analysis.TotalDuration = projectFinish

	// Backward pass: latest finish is the min over all successor
	// constraints, the project finish for sink tasks.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		duration := durations[id]
		timing := analysis.Timings[id]

		lf := projectFinish
		for _, edge := range store.DependentsOf(id) {
			if !inSet[edge.Successor] {
				continue
			}
			succ := analysis.Timings[edge.Successor]
			lag := float64(edge.LagDays)

			var bound float64
			switch edge.Type {
			case depgraph.FinishToStart:
				bound = succ.LatestStart - lag
			case depgraph.StartToStart:
				bound = succ.LatestStart - lag + duration
			case depgraph.FinishToFinish:
				bound = succ.LatestFinish - lag
			case depgraph.StartToFinish:
				bound = succ.LatestFinish - lag + duration
			}
			if bound < lf {
				lf = bound
			}
		}

		timing.LatestFinish = lf
		timing.LatestStart = lf - duration
		timing.Slack = timing.LatestStart - timing.EarliestStart
		timing.Critical = math.Abs(timing.Slack) < slackTolerance
	}

	for _, id := range order {
		if analysis.Timings[id].Critical {
			analysis.CriticalPath = append(analysis.CriticalPath, id)
		}
	}

	return analysis, nil
}
