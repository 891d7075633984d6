// Package cli implements the withpost command line.
//
// The root command runs the active phase of a step; the state subcommand
// inspects the host state file. Dependencies are collected in [App] so tests
// can swap the shell and state file for mocks, and commands report exit
// codes through [ExitError] instead of calling os.Exit.
package cli

import (
	"github.com/rs/zerolog"

	"withpost/internal/config"
	"withpost/internal/lifecycle"
	"withpost/internal/logging"
	"withpost/internal/output"
	"withpost/internal/shell"
	"withpost/internal/state"
)

// StateReader is the interface for inspecting the state file.
// The [state.Reader] type implements this interface.
type StateReader interface {
	Records() ([]state.Record, error)
	PostEnabled() (bool, error)
}

// App holds the dependencies shared by all commands.
//
// Nil dependencies are built from Config on first use, after command-line
// flags have been applied, so tests only need to set what they replace.
type App struct {
	Config      *config.Config
	Executor    shell.Executor
	StateWriter lifecycle.MarkerWriter
	StateReader StateReader
	Printer     *output.Printer
	Logger      *zerolog.Logger
}

// NewApp creates an [App] for cfg with a stderr logger at the configured level.
func NewApp(cfg *config.Config) (*App, error) {
	logger, err := logging.NewStderr(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &App{
		Config: cfg,
		Logger: &logger,
	}, nil
}

func (a *App) executor() shell.Executor {
	if a.Executor == nil {
		a.Executor = shell.NewExecutor(a.Config.Shell)
	}
	return a.Executor
}

func (a *App) stateWriter() lifecycle.MarkerWriter {
	if a.StateWriter == nil {
		a.StateWriter = state.NewWriter(a.Config.StateFilePath)
	}
	return a.StateWriter
}

func (a *App) stateReader() StateReader {
	if a.StateReader == nil {
		a.StateReader = state.NewReader(a.Config.StateFilePath)
	}
	return a.StateReader
}

func (a *App) printer() *output.Printer {
	if a.Printer == nil {
		a.Printer = output.NewPrinter()
	}
	return a.Printer
}

func (a *App) logger() zerolog.Logger {
	if a.Logger == nil {
		return zerolog.Nop()
	}
	return *a.Logger
}
