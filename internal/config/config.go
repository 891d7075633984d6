package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"withpost/internal/phase"
)

// Environment variable names read by the loader.
const (
	EnvPostIndicator = "STATE_POST"
	EnvMainCommand   = "INPUT_MAIN"
	EnvPostCommand   = "INPUT_POST"
	EnvStateFile     = "GITHUB_STATE"
	EnvShell         = "WITHPOST_SHELL"
	EnvLogLevel      = "WITHPOST_LOG_LEVEL"
	EnvQuiet         = "WITHPOST_QUIET"
	EnvConfigPath    = "WITHPOST_CONFIG_PATH"
)

// envBindings maps config keys to the environment variables that set them.
// STATE_POST is not listed: the phase indicator is environment-only and is
// read in unmarshal so no config file can select the phase.
var envBindings = map[string]string{
	"main":         EnvMainCommand,
	"post":         EnvPostCommand,
	"state_file":   EnvStateFile,
	"shell":        EnvShell,
	"log.level":    EnvLogLevel,
	"output.quiet": EnvQuiet,
}

// Loader handles configuration loading using Viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// Load builds the configuration from defaults, the optional config file
// named by WITHPOST_CONFIG_PATH, and the environment.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()
	if err := l.bindEnv(); err != nil {
		return nil, err
	}

	if configPath := os.Getenv(EnvConfigPath); configPath != "" {
		l.v.SetConfigFile(configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.unmarshal()
}

// LoadFromFile builds the configuration from a specific file, still
// honouring environment overrides.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.setDefaults()
	if err := l.bindEnv(); err != nil {
		return nil, err
	}

	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return l.unmarshal()
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()
	l.v.SetDefault("main", defaults.MainCommand)
	l.v.SetDefault("post", defaults.PostCommand)
	l.v.SetDefault("state_file", defaults.StateFilePath)
	l.v.SetDefault("shell", defaults.Shell)
	l.v.SetDefault("log.level", defaults.Log.Level)
	l.v.SetDefault("output.quiet", defaults.Output.Quiet)
}

func (l *Loader) bindEnv() error {
	for key, env := range envBindings {
		if err := l.v.BindEnv(key, env); err != nil {
			return fmt.Errorf("error binding %s: %w", env, err)
		}
	}
	return nil
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.PostIndicator = os.Getenv(EnvPostIndicator)
	cfg.Phase = phase.Detect(cfg.PostIndicator)
	return &cfg, nil
}
