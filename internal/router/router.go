// Package router selects what a step does in each execution phase.
//
// The router maps a [phase.Phase] to a [Step]: the command to run and
// whether the post marker must be recorded first. It is the single decision
// point for "exactly one command per invocation, marker only in main".
//
// Key types:
//   - [Router] - phase-to-step routing for one step's commands
//   - [Step] - what to do for the active phase
package router

import (
	"fmt"

	"withpost/internal/phase"
)

// Step describes the work for one phase of a step.
type Step struct {
	// Phase is the phase this step runs in.
	Phase phase.Phase

	// Command is the shell command line, passed through verbatim.
	Command string

	// MarkPost is true when the lifecycle marker must be recorded
	// before Command runs. Only ever true in the main phase.
	MarkPost bool
}

// Router routes phases to steps.
//
// Create with [NewRouter].
type Router struct {
	commands map[phase.Phase]string
}

// NewRouter creates a [Router] for a step with the given main and post
// commands. Either command may be empty.
func NewRouter(mainCommand, postCommand string) *Router {
	return &Router{
		commands: map[phase.Phase]string{
			phase.Main: mainCommand,
			phase.Post: postCommand,
		},
	}
}

// Route returns the [Step] for phase p.
//
// Returns an error wrapping [phase.ErrUnknownPhase] for anything other
// than [phase.Main] or [phase.Post].
func (r *Router) Route(p phase.Phase) (Step, error) {
	command, ok := r.commands[p]
	if !ok {
		return Step{}, fmt.Errorf("%w: %q", phase.ErrUnknownPhase, p)
	}

	return Step{
		Phase:    p,
		Command:  command,
		MarkPost: p == phase.Main,
	}, nil
}
