package scheduler

import (
	"time"

	"github.com/planfold/sched/internal/depgraph"
	"github.com/planfold/sched/internal/scherr"
)

// ScheduledDates is a resolved (start, finish) pair for one task
type ScheduledDates struct {
	Start  time.Time
	Finish time.Time
}

// truncateDay normalizes a timestamp to midnight UTC so that day arithmetic
// stays exact across the whole schedule.
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveDates computes the earliest feasible start and finish for one task
// given its direct dependency edges and the already-resolved dates of its
// predecessors.
//
// Each edge contributes one lower bound on the task's start:
//
//	FinishToStart:  predecessor finish + lag
//	StartToStart:   predecessor start  + lag
//	FinishToFinish: predecessor finish + lag - duration
//	StartToFinish:  predecessor start  + lag - duration
//
// Finish-bounding constraints (FF, SF) are back-solved into the start
// maximization; finish is always start + duration, never an independently
// chosen value. Strict CPM tools allow finish-driven constraints to compress
// duration instead; this engine deliberately does not.
//
// A task with no dependencies starts at its own existing start date, or
// today when it has none.
func resolveDates(task TaskSnapshot, deps []depgraph.Edge, resolved map[depgraph.TaskID]ScheduledDates, today time.Time) (ScheduledDates, error) {
	duration := task.DurationDays()

	var start time.Time
	if len(deps) == 0 {
		if task.StartDate != nil {
			start = truncateDay(*task.StartDate)
		} else {
			start = truncateDay(today)
		}
	} else {
		for _, edge := range deps {
			pred, ok := resolved[edge.Predecessor]
			if !ok {
				return ScheduledDates{}, scherr.New(
					scherr.KindGraphInconsistency,
					"predecessor resolved out of order",
					"resolve_dates").
					WithContext("task", task.ID).
					WithContext("predecessor", edge.Predecessor)
			}

			var candidate time.Time
			switch edge.Type {
			case depgraph.FinishToStart:
				candidate = pred.Finish.AddDate(0, 0, edge.LagDays)
			case depgraph.StartToStart:
				candidate = pred.Start.AddDate(0, 0, edge.LagDays)
			case depgraph.FinishToFinish:
				candidate = pred.Finish.AddDate(0, 0, edge.LagDays-duration)
			case depgraph.StartToFinish:
				candidate = pred.Start.AddDate(0, 0, edge.LagDays-duration)
			}

			if candidate.After(start) {
				start = candidate
			}
		}
	}

	return ScheduledDates{
		Start:  start,
		Finish: start.AddDate(0, 0, duration),
	}, nil
}
