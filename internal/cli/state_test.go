package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"withpost/internal/phase"
	"withpost/internal/state"
)

func newStateTestApp(t *testing.T, content string) *testApp {
	t.Helper()

	statePath := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.WriteFile(statePath, []byte(content), 0644))

	ta := newTestApp(t, phase.Main, "", "")
	ta.App.Config.StateFilePath = statePath
	return ta
}

func TestStateCommand_Table(t *testing.T) {
	ta := newStateTestApp(t, "CACHE_KEY=abc123\nPOST=true\n")

	out, err := ta.execute("state")

	require.NoError(t, err)
	assert.Contains(t, out, "Post phase: enabled")
	assert.Contains(t, out, "CACHE_KEY")
	assert.Contains(t, out, "abc123")
	assert.Empty(t, ta.Executor.Commands, "state must not run commands")
	assert.Zero(t, ta.Writer.Marks, "state must not write the marker")
}

func TestStateCommand_Empty(t *testing.T) {
	ta := newStateTestApp(t, "")

	out, err := ta.execute("state")

	require.NoError(t, err)
	assert.Contains(t, out, "Post phase: disabled")
	assert.Contains(t, out, "No records.")
}

func TestStateCommand_YAML(t *testing.T) {
	ta := newStateTestApp(t, "A=1\nPOST=true\n")

	out, err := ta.execute("state", "--format", "yaml")

	require.NoError(t, err)
	var report stateReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.True(t, report.PostEnabled)
	assert.Equal(t, []state.Record{{Key: "A", Value: "1"}, {Key: "POST", Value: "true"}}, report.Records)
}

func TestStateCommand_UnknownFormat(t *testing.T) {
	ta := newStateTestApp(t, "")

	_, err := ta.execute("state", "--format", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestStateCommand_Malformed(t *testing.T) {
	ta := newStateTestApp(t, "not a record\n")

	_, err := ta.execute("state")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed state record")
}

func TestStateCommand_NoStateFile(t *testing.T) {
	ta := newTestApp(t, phase.Main, "", "")
	ta.App.Config.StateFilePath = ""

	_, err := ta.execute("state")

	assert.ErrorIs(t, err, state.ErrNoStateFile)
}
