package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planfold/sched/internal/cli"
)

var criticalPathProjectFile string

var criticalPathCmd = &cobra.Command{
	Use:   "critical-path",
	Short: "Show the critical path analysis for a project",
	Long: `Runs a forward and backward Critical Path Method pass over the project's
dependency graph and prints earliest/latest start and finish, slack, and the
critical marker for every task, in duration units (days since the project
epoch).`,
	RunE: runCriticalPath,
}

func init() {
	criticalPathCmd.Flags().StringVarP(&criticalPathProjectFile, "project", "p", "", "Path to the project YAML file (required)")
	_ = criticalPathCmd.MarkFlagRequired("project")
}

func runCriticalPath(cmd *cobra.Command, args []string) error {
	def, engine, err := buildEngine(criticalPathProjectFile)
	if err != nil {
		return err
	}

	analysis, err := engine.Analyze(def.Project)
	if err != nil {
		return fmt.Errorf("critical path analysis failed: %w", err)
	}

	table := cli.NewTable("Task", "ES", "EF", "LS", "LF", "Slack", "Critical")
	for _, id := range analysis.Order {
		timing := analysis.Timings[id]
		mark := ""
		if timing.Critical {
			mark = "*"
		}
		table.AddRow(id,
			formatDays(timing.EarliestStart),
			formatDays(timing.EarliestFinish),
			formatDays(timing.LatestStart),
			formatDays(timing.LatestFinish),
			formatDays(timing.Slack),
			mark,
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table.String())
	fmt.Fprintf(cmd.OutOrStdout(), "Project duration: %s days, critical tasks: %d of %d\n",
		formatDays(analysis.TotalDuration), len(analysis.CriticalPath), len(analysis.Order))

	return nil
}
