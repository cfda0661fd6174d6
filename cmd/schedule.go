package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/planfold/sched/internal/cli"
	"github.com/planfold/sched/internal/logger"
	"github.com/planfold/sched/internal/persist"
)

var (
	scheduleProjectFile string
	scheduleStateDir    string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Auto-schedule every task in a project",
	Long: `Loads a project definition, orders its tasks topologically, resolves the
earliest feasible start and finish date for each task from its dependencies,
and prints the resulting schedule. Tasks on the critical path are marked.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleProjectFile, "project", "p", "", "Path to the project YAML file (required)")
	scheduleCmd.Flags().StringVar(&scheduleStateDir, "state-dir", "", "Directory to persist the dependency graph between runs")
	_ = scheduleCmd.MarkFlagRequired("project")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	def, engine, err := buildEngine(scheduleProjectFile)
	if err != nil {
		return err
	}

	schedule, err := engine.AutoSchedule(def.Project)
	if err != nil {
		return fmt.Errorf("scheduling failed: %w", err)
	}

	critical, err := engine.CriticalPath(def.Project)
	if err != nil {
		return fmt.Errorf("critical path analysis failed: %w", err)
	}

	ids := make([]string, 0, len(schedule))
	for id := range schedule {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := schedule[ids[i]], schedule[ids[j]]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return ids[i] < ids[j]
	})

	table := cli.NewTable("Task", "Start", "Finish", "Critical")
	for _, id := range ids {
		dates := schedule[id]
		mark := ""
		if critical[id] {
			mark = "*"
		}
		table.AddRow(id, dates.Start.Format("2006-01-02"), dates.Finish.Format("2006-01-02"), mark)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table.String())

	if scheduleStateDir != "" {
		store, err := persist.Open(persist.Config{Path: scheduleStateDir, SyncWrites: true})
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveProject(def.Project, engine.ProjectEdges(def.Project)); err != nil {
			return err
		}
		logger.GetLogger().Debugf("dependency graph saved to %s", scheduleStateDir)
	}

	logger.GetLogger().Infof("scheduled %d tasks in project %q", len(schedule), def.Project)
	return nil
}
