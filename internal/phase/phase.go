// Package phase defines the two execution phases of a withpost step.
//
// A step runs twice within a workflow job: once in the [Main] phase, when the
// step itself executes, and once more in the [Post] phase after the job's
// remaining steps finish. The host signals the post phase by exporting a
// non-empty indicator variable; [Detect] turns that into a [Phase].
package phase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPhase is returned by [Parse] for values other than "main" or "post".
var ErrUnknownPhase = errors.New("unknown phase")

// Phase is the execution phase of a step.
type Phase string

const (
	// Main is the primary phase, where the main command runs and the
	// post marker is recorded.
	Main Phase = "main"

	// Post is the cleanup phase, scheduled by the host only when the
	// marker was recorded during Main.
	Post Phase = "post"
)

// Detect returns [Post] when indicator is non-empty and [Main] otherwise.
// The indicator's content is not inspected.
func Detect(indicator string) Phase {
	if indicator != "" {
		return Post
	}
	return Main
}

// Parse converts a user-supplied phase name into a [Phase].
// Matching is case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}
	return p, nil
}

// IsValid reports whether p is one of the known phases.
func (p Phase) IsValid() bool {
	switch p {
	case Main, Post:
		return true
	default:
		return false
	}
}

// IsPost reports whether p is the cleanup phase.
func (p Phase) IsPost() bool {
	return p == Post
}

func (p Phase) String() string {
	return string(p)
}
