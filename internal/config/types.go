// Package config provides configuration loading for withpost.
//
// Configuration is loaded using Viper. The host platform passes everything a
// step needs through environment variables, so the environment is the primary
// source; an optional YAML config file can supply defaults for local runs.
// The process environment is read exactly once, at the program boundary, and
// the result is passed around as an explicit [Config].
//
// Key types:
//   - [Config] is the run configuration with the detected phase
//   - [Loader] handles Viper-based configuration loading
//
// Configuration priority (highest to lowest):
//  1. Environment variables (INPUT_MAIN, INPUT_POST, GITHUB_STATE and the
//     WITHPOST_ prefixed settings)
//  2. Config file specified by WITHPOST_CONFIG_PATH
//  3. [DefaultConfig] defaults
//
// The phase indicator STATE_POST is environment-only and never read from a
// config file.
package config

import "withpost/internal/phase"

// Config represents the run configuration for a single invocation.
//
// Use [Loader] to build one from the environment, or [DefaultConfig] for
// a starting point in tests.
type Config struct {
	// Phase is the active execution phase, derived from PostIndicator
	// by the loader. It is never read from the config file directly.
	Phase phase.Phase `mapstructure:"-"`

	// PostIndicator is the raw phase indicator. Any non-empty value
	// selects the post phase. Read from STATE_POST only.
	PostIndicator string `mapstructure:"-"`

	// MainCommand is the shell command for the main phase.
	// Bound to INPUT_MAIN.
	MainCommand string `mapstructure:"main"`

	// PostCommand is the shell command for the post phase.
	// Bound to INPUT_POST.
	PostCommand string `mapstructure:"post"`

	// StateFilePath is the host's append-only state file. Required in
	// the main phase only. Bound to GITHUB_STATE.
	StateFilePath string `mapstructure:"state_file"`

	// Shell overrides the platform shell used to run commands.
	// Bound to WITHPOST_SHELL.
	Shell string `mapstructure:"shell"`

	// Log contains logger settings.
	Log LogConfig `mapstructure:"log"`

	// Output contains terminal output settings.
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error,
	// fatal, panic or disabled.
	// Default: "warn"
	Level string `mapstructure:"level"`
}

// OutputConfig contains terminal output settings.
type OutputConfig struct {
	// Quiet suppresses the phase banner and result line.
	// Default: false
	Quiet bool `mapstructure:"quiet"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
//
// The defaults describe a main-phase run with empty commands and no state
// file; they only become useful once the environment is layered on top.
func DefaultConfig() *Config {
	return &Config{
		Phase: phase.Main,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Command returns the command configured for the active phase.
func (c *Config) Command() string {
	if c.Phase.IsPost() {
		return c.PostCommand
	}
	return c.MainCommand
}
