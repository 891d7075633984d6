package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"withpost/internal/config"
	"withpost/internal/lifecycle"
	"withpost/internal/output"
	"withpost/internal/phase"
	"withpost/internal/router"
)

// Version is set at build time with -ldflags "-X withpost/internal/cli.Version=...".
var Version = "dev"

// ExecuteResult is the outcome of running the CLI, before the process exits.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// NewRootCommand creates the root command for app.
func NewRootCommand(app *App) *cobra.Command {
	var (
		dryRun        bool
		phaseOverride string
		shellOverride string
	)

	rootCmd := &cobra.Command{
		Use:   "withpost",
		Short: "Run a step's main or post command",
		Long: `Run the command for the active phase of a CI step.

In the main phase (STATE_POST unset) withpost appends POST=true to the
file named by GITHUB_STATE, so the host schedules a post phase, and runs
INPUT_MAIN. In the post phase (STATE_POST set) it runs INPUT_POST and
leaves the state file alone.

Commands run through the system shell with inherited standard streams,
and withpost exits with the command's exit code.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shellOverride != "" {
				app.Config.Shell = shellOverride
			}
			if phaseOverride != "" {
				p, err := phase.Parse(phaseOverride)
				if err != nil {
					return err
				}
				app.Config.Phase = p
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return runDryRun(app)
			}
			return runPhase(cmd, app)
		},
	}

	rootCmd.PersistentFlags().StringVar(&phaseOverride, "phase", "", "override phase detection (main or post)")
	rootCmd.PersistentFlags().StringVar(&shellOverride, "shell", "", "shell used to run commands")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would run without writing state or running commands")

	rootCmd.AddCommand(newStateCommand(app))

	return rootCmd
}

func runPhase(cmd *cobra.Command, app *App) error {
	cfg := app.Config
	executor := lifecycle.NewExecutor(app.executor(), app.stateWriter())
	executor.SetLogger(app.logger())
	if !cfg.Output.Quiet {
		printer := app.printer()
		executor.SetPhaseCallback(func(step router.Step) {
			printer.PhaseStart(step.Phase, step.Command)
		})
	}

	outcome, err := executor.Execute(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if !cfg.Output.Quiet {
		app.printer().PhaseResult(output.Result{
			Phase:    outcome.Phase,
			ExitCode: outcome.ExitCode,
			Signaled: outcome.Signaled,
			Signal:   outcome.Signal,
			Duration: outcome.Duration,
		})
	}

	if outcome.ExitCode != 0 {
		return NewExitError(outcome.ExitCode)
	}
	return nil
}

func runDryRun(app *App) error {
	executor := lifecycle.NewExecutor(app.executor(), app.stateWriter())
	step, err := executor.Plan(app.Config)
	if err != nil {
		return err
	}
	app.printer().DryRun(step.Phase, step.Command, step.MarkPost, app.Config.StateFilePath)
	return nil
}

// RunWithConfig runs the CLI with args against cfg and returns the exit code
// instead of exiting.
func RunWithConfig(cfg *config.Config, args []string) ExecuteResult {
	app, err := NewApp(cfg)
	if err != nil {
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return run(app, args)
}

func run(app *App, args []string) ExecuteResult {
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	cmd := NewRootCommand(app)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Execute loads configuration from the environment, runs the CLI and exits
// the process with the resulting code.
func Execute() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg, os.Args[1:])
	if result.Err != nil {
		if _, ok := IsExitError(result.Err); !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		}
	}
	os.Exit(result.ExitCode)
}
