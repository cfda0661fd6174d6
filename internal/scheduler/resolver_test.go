package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfold/sched/internal/depgraph"
)

func day(d int) time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestTaskSnapshot_DurationDays(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  int
	}{
		{"zero defaults to one day", 0, 1},
		{"under a workday rounds up", 3, 1},
		{"exactly one workday", 8, 1},
		{"just over a workday", 8.5, 2},
		{"two workdays", 16, 2},
		{"fractional rounds up", 20, 3},
		{"negative defaults to one day", -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := TaskSnapshot{EstimateHours: tt.hours}
			assert.Equal(t, tt.want, task.DurationDays())
		})
	}
}

func TestResolveDates_NoDependencies(t *testing.T) {
	today := day(10)

	t.Run("uses existing start date", func(t *testing.T) {
		start := day(3)
		task := TaskSnapshot{ID: "t", EstimateHours: 16, StartDate: &start}

		dates, err := resolveDates(task, nil, nil, today)
		require.NoError(t, err)
		assert.Equal(t, day(3), dates.Start)
		assert.Equal(t, day(5), dates.Finish)
	})

	t.Run("falls back to today", func(t *testing.T) {
		task := TaskSnapshot{ID: "t", EstimateHours: 8}

		dates, err := resolveDates(task, nil, nil, today)
		require.NoError(t, err)
		assert.Equal(t, day(10), dates.Start)
		assert.Equal(t, day(11), dates.Finish)
	})

	t.Run("truncates start date to the day", func(t *testing.T) {
		noisy := day(3).Add(14*time.Hour + 30*time.Minute)
		task := TaskSnapshot{ID: "t", EstimateHours: 8, StartDate: &noisy}

		dates, err := resolveDates(task, nil, nil, today)
		require.NoError(t, err)
		assert.Equal(t, day(3), dates.Start)
	})
}

func TestResolveDates_ConstraintTypes(t *testing.T) {
	// Predecessor resolved to start day 0, finish day 4
	resolved := map[depgraph.TaskID]ScheduledDates{
		"pred": {Start: day(0), Finish: day(4)},
	}
	// Successor duration: 2 days
	task := TaskSnapshot{ID: "succ", EstimateHours: 16}

	tests := []struct {
		name       string
		depType    depgraph.DependencyType
		lag        int
		wantStart  time.Time
		wantFinish time.Time
	}{
		{"finish to start", depgraph.FinishToStart, 0, day(4), day(6)},
		{"finish to start with lag", depgraph.FinishToStart, 3, day(7), day(9)},
		{"finish to start with lead", depgraph.FinishToStart, -2, day(2), day(4)},
		{"start to start", depgraph.StartToStart, 1, day(1), day(3)},
		// Finish-bounding constraints back-solve the start: finish bound
		// minus duration, finish stays start + duration.
		{"finish to finish", depgraph.FinishToFinish, 0, day(2), day(4)},
		{"finish to finish with lag", depgraph.FinishToFinish, 2, day(4), day(6)},
		{"start to finish", depgraph.StartToFinish, 5, day(3), day(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := []depgraph.Edge{{
				Predecessor: "pred",
				Successor:   "succ",
				Type:        tt.depType,
				LagDays:     tt.lag,
			}}

			dates, err := resolveDates(task, deps, resolved, day(0))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, dates.Start, "start")
			assert.Equal(t, tt.wantFinish, dates.Finish, "finish")
		})
	}
}

func TestResolveDates_MaxOverAllConstraints(t *testing.T) {
	resolved := map[depgraph.TaskID]ScheduledDates{
		"early": {Start: day(0), Finish: day(1)},
		"late":  {Start: day(0), Finish: day(6)},
	}
	task := TaskSnapshot{ID: "succ", EstimateHours: 8}
	deps := []depgraph.Edge{
		{Predecessor: "early", Successor: "succ", Type: depgraph.FinishToStart},
		{Predecessor: "late", Successor: "succ", Type: depgraph.FinishToStart},
	}

	dates, err := resolveDates(task, deps, resolved, day(0))
	require.NoError(t, err)
	assert.Equal(t, day(6), dates.Start, "the tightest constraint wins")
}

func TestResolveDates_UnresolvedPredecessor(t *testing.T) {
	task := TaskSnapshot{ID: "succ", EstimateHours: 8}
	deps := []depgraph.Edge{
		{Predecessor: "ghost", Successor: "succ", Type: depgraph.FinishToStart},
	}

	_, err := resolveDates(task, deps, map[depgraph.TaskID]ScheduledDates{}, day(0))
	require.Error(t, err)
}
