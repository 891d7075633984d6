// Package lifecycle runs one invocation of a two-phase step.
//
// The lifecycle package provides [Executor], which takes the run
// configuration, decides what the active phase must do via the router,
// records the post marker when in the main phase, and runs the phase's
// command to completion. The child's exit status is returned to the caller
// as an [Outcome]; the executor never terminates the process itself.
//
// Key concepts:
//   - The step for a phase is determined by [router.Router.Route]
//   - The marker is written through [MarkerWriter] before the main command
//   - Commands run through a [shell.Executor]
//   - A [PhaseCallback] can announce the step just before it runs
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"withpost/internal/config"
	"withpost/internal/phase"
	"withpost/internal/router"
	"withpost/internal/shell"
)

// MarkerWriter is the interface for recording the lifecycle marker.
//
// MarkPost appends POST=true to the host's state file. The [state.Writer]
// type implements this interface.
type MarkerWriter interface {
	MarkPost() error
}

// PhaseCallback is invoked once per run, after the marker is recorded and
// immediately before the command is spawned.
type PhaseCallback func(step router.Step)

// Outcome describes a completed run.
type Outcome struct {
	// Phase is the phase that ran.
	Phase phase.Phase

	// Command is the command string that was run.
	Command string

	// ExitCode is the child's exit code, and the code the process should
	// exit with. A child killed by a signal yields 0.
	ExitCode int

	// Signaled is true when the child was terminated by a signal.
	Signaled bool

	// Signal names the terminating signal, if known.
	Signal string

	// MarkerWritten is true when POST=true was appended during this run.
	MarkerWritten bool

	// Duration is the time the child took to run.
	Duration time.Duration
}

// Executor runs the active phase of a step.
//
// Executor uses dependency injection for testability: [shell.Executor] runs
// commands and [MarkerWriter] records the marker. Use [NewExecutor] to create
// an instance and [Executor.Execute] to run it.
type Executor struct {
	shell         shell.Executor
	marker        MarkerWriter
	phaseCallback PhaseCallback
	logger        zerolog.Logger
}

// NewExecutor creates a new Executor with the required dependencies.
//
// Logging is disabled until [Executor.SetLogger] is called.
func NewExecutor(sh shell.Executor, marker MarkerWriter) *Executor {
	return &Executor{
		shell:  sh,
		marker: marker,
		logger: zerolog.Nop(),
	}
}

// SetPhaseCallback configures an optional callback announcing the step
// about to run. Typically used to print a banner.
func (e *Executor) SetPhaseCallback(cb PhaseCallback) {
	e.phaseCallback = cb
}

// SetLogger configures the logger used for phase and marker events.
func (e *Executor) SetLogger(logger zerolog.Logger) {
	e.logger = logger
}

// Plan returns the step the active phase would run, without side effects.
func (e *Executor) Plan(cfg *config.Config) (router.Step, error) {
	r := router.NewRouter(cfg.MainCommand, cfg.PostCommand)
	return r.Route(cfg.Phase)
}

// Execute runs the active phase described by cfg.
//
// In the main phase the marker is recorded first; if that fails, Execute
// returns the error and the command is never spawned. In the post phase the
// state file is not touched. The command then runs synchronously with no
// timeout.
//
// A non-zero exit is not an error: it is reported in [Outcome.ExitCode].
// Errors are returned only when the marker cannot be written or the command
// cannot be run at all.
func (e *Executor) Execute(ctx context.Context, cfg *config.Config) (Outcome, error) {
	step, err := e.Plan(cfg)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		Phase:   step.Phase,
		Command: step.Command,
	}
	log := e.logger.With().Str("phase", step.Phase.String()).Logger()
	log.Debug().Msg("phase selected")

	if step.MarkPost {
		if err := e.marker.MarkPost(); err != nil {
			return outcome, fmt.Errorf("failed to enable post phase: %w", err)
		}
		outcome.MarkerWritten = true
		log.Debug().Str("state_file", cfg.StateFilePath).Msg("post phase enabled")
	}

	if e.phaseCallback != nil {
		e.phaseCallback(step)
	}

	start := time.Now()
	res, err := e.shell.Run(ctx, step.Command)
	outcome.Duration = time.Since(start)
	if err != nil {
		return outcome, fmt.Errorf("failed to run %s command: %w", step.Phase, err)
	}

	outcome.ExitCode = res.ExitCode
	outcome.Signaled = res.Signaled
	outcome.Signal = res.Signal

	event := log.Info()
	if res.Signaled {
		event = log.Warn().Str("signal", res.Signal)
	}
	event.Int("exit_code", res.ExitCode).Dur("duration", outcome.Duration).Msg("command finished")

	return outcome, nil
}
