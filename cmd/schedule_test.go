package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = `project: website
tasks:
  - id: design
    estimate_hours: 16
    start: 2026-09-01
  - id: build
    estimate_hours: 40
  - id: review
    estimate_hours: 8
dependencies:
  - from: design
    to: build
  - from: build
    to: review
    type: start_to_start
    lag_days: 2
`

func writeTestProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	scheduleStateDir = "" // flag values persist across executions
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScheduleCommand(t *testing.T) {
	path := writeTestProject(t, testProject)

	out, err := execute(t, "schedule", "--project", path)
	require.NoError(t, err)

	// design: 2 days from its fixed start; build: 5 days after design
	// finishes; review: starts 2 days after build starts.
	assert.Contains(t, out, "design")
	assert.Contains(t, out, "2026-09-01")
	assert.Contains(t, out, "2026-09-03") // design finish and build start
	assert.Contains(t, out, "2026-09-08") // build finish
	assert.Contains(t, out, "2026-09-05") // review start
	assert.Contains(t, out, "2026-09-06") // review finish
}

func TestScheduleCommand_PersistsEdges(t *testing.T) {
	path := writeTestProject(t, testProject)
	stateDir := t.TempDir()

	_, err := execute(t, "schedule", "--project", path, "--state-dir", stateDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(stateDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "state dir should hold database files")
}

func TestScheduleCommand_RejectsCyclicProject(t *testing.T) {
	cyclic := `project: p
tasks:
  - id: a
  - id: b
dependencies:
  - from: a
    to: b
  - from: b
    to: a
`
	path := writeTestProject(t, cyclic)

	_, err := execute(t, "schedule", "--project", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestCriticalPathCommand(t *testing.T) {
	path := writeTestProject(t, testProject)

	out, err := execute(t, "critical-path", "--project", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Slack")
	assert.Contains(t, out, "Project duration: 7.00 days")
	assert.Contains(t, out, "critical tasks: 2 of 3")
}

func TestGraphCommand(t *testing.T) {
	path := writeTestProject(t, testProject)

	out, err := execute(t, "graph", "--project", path, "--task", "build")
	require.NoError(t, err)

	assert.Contains(t, out, "Dependencies of build (1)")
	assert.Contains(t, out, "Dependents of build (1)")
	assert.Contains(t, out, "Blocked by: design")
	assert.Contains(t, out, "Can start: false")
}
