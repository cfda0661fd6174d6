package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planfold/sched/internal/cli"
	"github.com/planfold/sched/internal/depgraph"
)

var (
	graphProjectFile string
	graphTaskID      string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect a task's position in the dependency graph",
	Long: `Prints the dependencies and dependents of a task, the predecessors still
blocking it, and whether it can start now.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphProjectFile, "project", "p", "", "Path to the project YAML file (required)")
	graphCmd.Flags().StringVarP(&graphTaskID, "task", "t", "", "Task id to inspect (required)")
	_ = graphCmd.MarkFlagRequired("project")
	_ = graphCmd.MarkFlagRequired("task")
}

func edgeTable(edges []depgraph.Edge, counterpart func(depgraph.Edge) depgraph.TaskID) string {
	table := cli.NewTable("Task", "Type", "Lag (days)")
	for _, e := range edges {
		table.AddRow(counterpart(e), e.Type.String(), strconv.Itoa(e.LagDays))
	}
	return table.String()
}

func runGraph(cmd *cobra.Command, args []string) error {
	_, engine, err := buildEngine(graphProjectFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	deps := engine.DependenciesOf(graphTaskID)
	fmt.Fprintf(out, "Dependencies of %s (%d):\n", graphTaskID, len(deps))
	if len(deps) > 0 {
		fmt.Fprint(out, edgeTable(deps, func(e depgraph.Edge) depgraph.TaskID { return e.Predecessor }))
	}

	dependents := engine.DependentsOf(graphTaskID)
	fmt.Fprintf(out, "Dependents of %s (%d):\n", graphTaskID, len(dependents))
	if len(dependents) > 0 {
		fmt.Fprint(out, edgeTable(dependents, func(e depgraph.Edge) depgraph.TaskID { return e.Successor }))
	}

	blocking, err := engine.BlockingTasks(graphTaskID)
	if err != nil {
		return err
	}
	canStart, err := engine.CanStart(graphTaskID)
	if err != nil {
		return err
	}

	if len(blocking) > 0 {
		fmt.Fprintf(out, "Blocked by: %s\n", strings.Join(blocking, ", "))
	}
	fmt.Fprintf(out, "Can start: %v\n", canStart)

	return nil
}
