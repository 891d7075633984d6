package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// ExecExecutor runs commands with os/exec through the platform shell.
//
// Create instances with [NewExecutor]. The standard stream fields default to
// the current process's own streams, so the child inherits them directly with
// no capturing or buffering.
type ExecExecutor struct {
	// Shell is the shell binary. Empty means the platform default:
	// /bin/sh on Unix-like systems, %ComSpec% (or cmd.exe) on Windows.
	Shell string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor creates an [ExecExecutor] wired to the process's own streams.
func NewExecutor(shell string) *ExecExecutor {
	return &ExecExecutor{
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// ShellPath returns the shell binary Run will use.
func (e *ExecExecutor) ShellPath() string {
	if e.Shell != "" {
		return e.Shell
	}
	return defaultShell()
}

// Run executes command through the shell and waits for it to exit.
//
// ctx is only consulted before the child starts. Once running, the child is
// waited on without a timeout and is never killed by this package.
func (e *ExecExecutor) Run(ctx context.Context, command string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	shellPath := e.ShellPath()
	cmd := buildCommand(shellPath, command)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("failed to start %s: %w", shellPath, err)
	}

	return resultFromWait(cmd.Wait())
}

// resultFromWait maps the error returned by [exec.Cmd.Wait] to a [Result].
// A child killed by a signal has no exit code and is reported as exit 0.
func resultFromWait(err error) (Result, error) {
	if err == nil {
		return Result{}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Result{}, fmt.Errorf("failed waiting for command: %w", err)
	}

	if code := exitErr.ExitCode(); code >= 0 {
		return Result{ExitCode: code}, nil
	}

	res := Result{Signaled: true}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		res.Signal = ws.Signal().String()
	}
	return res, nil
}
