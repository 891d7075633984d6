package cli

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"withpost/internal/config"
	"withpost/internal/output"
	"withpost/internal/phase"
	"withpost/internal/shell"
)

// MockStateWriter records marker writes for testing.
type MockStateWriter struct {
	// Marks counts MarkPost calls.
	Marks int
	// Err is returned from MarkPost when set.
	Err error
}

func (m *MockStateWriter) MarkPost() error {
	m.Marks++
	return m.Err
}

// testApp bundles an App with the mocks and buffers behind it.
type testApp struct {
	App      *App
	Executor *shell.MockExecutor
	Writer   *MockStateWriter
	Output   *bytes.Buffer
}

// newTestApp creates an App with mocked shell and state writer.
func newTestApp(t *testing.T, p phase.Phase, mainCmd, postCmd string) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Phase = p
	cfg.MainCommand = mainCmd
	cfg.PostCommand = postCmd
	cfg.StateFilePath = "/tmp/withpost-test-state"

	executor := &shell.MockExecutor{}
	writer := &MockStateWriter{}
	buf := &bytes.Buffer{}
	logger := zerolog.Nop()

	return &testApp{
		App: &App{
			Config:      cfg,
			Executor:    executor,
			StateWriter: writer,
			Printer:     output.NewPrinterWithWriter(buf),
			Logger:      &logger,
		},
		Executor: executor,
		Writer:   writer,
		Output:   buf,
	}
}

// execute runs the root command with args and returns its error.
func (ta *testApp) execute(args ...string) (string, error) {
	rootCmd := NewRootCommand(ta.App)
	outBuf := &bytes.Buffer{}
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(outBuf)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return outBuf.String(), err
}
