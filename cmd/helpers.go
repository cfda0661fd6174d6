package cmd

import (
	"fmt"

	"github.com/planfold/sched/internal/project"
	"github.com/planfold/sched/internal/scheduler"
)

// buildEngine loads a project file and assembles an engine with the file's
// dependency edges already inserted.
func buildEngine(path string) (*project.Definition, *scheduler.Engine, error) {
	def, err := project.Load(path)
	if err != nil {
		return nil, nil, err
	}

	repo := project.BuildRepository(def)
	engine := scheduler.New(repo)

	for _, dep := range def.Dependencies {
		if _, err := engine.AddDependency(dep.From, dep.To, dep.EdgeType(), dep.LagDays); err != nil {
			return nil, nil, fmt.Errorf("dependency %s -> %s rejected: %w", dep.From, dep.To, err)
		}
	}

	return def, engine, nil
}

// formatDays renders a fractional day count for table output
func formatDays(days float64) string {
	return fmt.Sprintf("%.2f", days)
}
