package cmd

import (
	"github.com/spf13/cobra"

	"github.com/planfold/sched/internal/logger"
)

var (
	verbose  bool
	jsonLogs bool
	quiet    bool
	version  = "v0.1.0"

	rootCmd = &cobra.Command{
		Use:   "sched",
		Short: "A task-dependency and critical-path scheduling engine",
		Long: `sched models precedence relationships between project tasks as a directed
acyclic graph, prevents dependency cycles at insertion time, and computes
schedules with the Critical Path Method: earliest and latest dates, per-task
slack, and the zero-slack critical path.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(verbose, jsonLogs, quiet)
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(criticalPathCmd)
	rootCmd.AddCommand(graphCmd)
}
