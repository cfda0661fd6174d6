// Package project loads project definitions from YAML files and provides an
// in-memory TaskRepository over them. It is the host side of the scheduling
// engine: the engine itself never reads files or stores tasks.
package project

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/planfold/sched/internal/depgraph"
	"github.com/planfold/sched/internal/scheduler"
)

const dateLayout = "2006-01-02"

// TaskDef is one task entry in a project file
type TaskDef struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	EstimateHours float64 `yaml:"estimate_hours"`
	Start         string  `yaml:"start"`
	Due           string  `yaml:"due"`
	Status        string  `yaml:"status"`
}

// DependencyDef is one dependency entry in a project file. From is the
// predecessor, To the successor.
type DependencyDef struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Type    string `yaml:"type"`
	LagDays int    `yaml:"lag_days"`
}

// Definition is a parsed project file
type Definition struct {
	Project      string          `yaml:"project"`
	Tasks        []TaskDef       `yaml:"tasks"`
	Dependencies []DependencyDef `yaml:"dependencies"`
}

// Load reads and validates a project definition from a YAML file
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) validate() error {
	if d.Project == "" {
		return fmt.Errorf("project name is required")
	}
	if len(d.Tasks) == 0 {
		return fmt.Errorf("project %q has no tasks", d.Project)
	}

	seen := make(map[string]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		if t.ID == "" {
			return fmt.Errorf("task with empty id in project %q", d.Project)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %q", t.ID)
		}
		seen[t.ID] = true

		if _, err := scheduler.ParseTaskStatus(t.Status); err != nil {
			return fmt.Errorf("task %q: %w", t.ID, err)
		}
		for _, field := range []struct{ name, value string }{{"start", t.Start}, {"due", t.Due}} {
			if field.value == "" {
				continue
			}
			if _, err := time.Parse(dateLayout, field.value); err != nil {
				return fmt.Errorf("task %q: invalid %s date %q (want YYYY-MM-DD)", t.ID, field.name, field.value)
			}
		}
	}

	for _, dep := range d.Dependencies {
		if !seen[dep.From] {
			return fmt.Errorf("dependency references unknown task %q", dep.From)
		}
		if !seen[dep.To] {
			return fmt.Errorf("dependency references unknown task %q", dep.To)
		}
		if dep.Type != "" {
			if _, err := depgraph.ParseDependencyType(dep.Type); err != nil {
				return fmt.Errorf("dependency %s -> %s: %w", dep.From, dep.To, err)
			}
		}
	}

	return nil
}

// Snapshot converts a task definition into the engine's task view. Dates are
// validated beforehand, so parse errors cannot occur here.
func (t TaskDef) Snapshot(projectID string) scheduler.TaskSnapshot {
	status, _ := scheduler.ParseTaskStatus(t.Status)

	snap := scheduler.TaskSnapshot{
		ID:            t.ID,
		ProjectID:     projectID,
		EstimateHours: t.EstimateHours,
		Status:        status,
	}
	if t.Start != "" {
		d, _ := time.Parse(dateLayout, t.Start)
		snap.StartDate = &d
	}
	if t.Due != "" {
		d, _ := time.Parse(dateLayout, t.Due)
		snap.DueDate = &d
	}
	return snap
}

// EdgeType returns the parsed dependency type, defaulting to finish-to-start
func (d DependencyDef) EdgeType() depgraph.DependencyType {
	if d.Type == "" {
		return depgraph.FinishToStart
	}
	t, _ := depgraph.ParseDependencyType(d.Type)
	return t
}
