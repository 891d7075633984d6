// Package logging configures the zerolog logger used across withpost.
//
// Logs go to stderr through a console writer so they interleave sensibly
// with the child command's own output in CI logs. The default level is warn,
// which keeps a successful run silent apart from the command itself.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AppName is attached to every log line.
const AppName = "withpost"

// DefaultLevel is used when no level is configured.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel converts a level name to a zerolog level.
// An empty name yields [DefaultLevel].
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New returns a console logger writing to w at the named level.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", AppName).Logger(), nil
}

// NewStderr returns a console logger writing to the process's stderr.
func NewStderr(level string) (zerolog.Logger, error) {
	return New(os.Stderr, level)
}
