// Package shell runs command strings through the system shell.
//
// Commands are opaque: the package never parses or validates them. It hands
// the string to the platform shell, connects the child's standard streams to
// the configured readers and writers, waits for it to finish and reports how
// it exited.
//
// Key types:
//   - [Executor]: interface for running a command string
//   - [ExecExecutor]: os/exec implementation used in production
//   - [Result]: how the child exited
//
// For testing, use [MockExecutor] which implements [Executor] without
// spawning processes.
package shell

import "context"

// Executor runs a command string to completion.
//
// Run blocks until the child exits. A non-zero exit is reported through
// [Result], not as an error; errors mean the command could not be run at all.
type Executor interface {
	Run(ctx context.Context, command string) (Result, error)
}

// Result describes how a child process exited.
type Result struct {
	// ExitCode is the child's exit code. It is 0 when the child was
	// terminated by a signal and therefore has no numeric code.
	ExitCode int

	// Signaled is true when the child was terminated by a signal.
	Signaled bool

	// Signal is the name of the terminating signal, if known.
	Signal string
}

// Success reports whether the exit code is zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}
