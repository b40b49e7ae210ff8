package appconfig

import (
	"os"
	"path/filepath"
	"time"

	"pkt.systems/tabterm/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Input         InputConfig   `mapstructure:"input" yaml:"input"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Demo          DemoConfig    `mapstructure:"demo" yaml:"demo"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// Bounds on input.escape_drain_limit.
const (
	MinEscapeDrainLimit = 4
	MaxEscapeDrainLimit = 256
)

// InputConfig tunes key decoding and the fatal-signal path.
type InputConfig struct {
	PollIntervalMS   int `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`
	EscapeDrainLimit int `mapstructure:"escape_drain_limit" yaml:"escape_drain_limit"`
	SignalExitCode   int `mapstructure:"signal_exit_code" yaml:"signal_exit_code"`
}

// PollInterval returns the input poll interval as a duration.
func (c InputConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// LoggingConfig controls the log sink. An empty file discards logs while the
// terminal is in use.
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DemoConfig configures the demo command.
type DemoConfig struct {
	StartTab int `mapstructure:"start_tab" yaml:"start_tab"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Input: InputConfig{
			PollIntervalMS:   int(schema.DefaultPollInterval / time.Millisecond),
			EscapeDrainLimit: schema.DefaultDrainLimit,
			SignalExitCode:   0,
		},
		Logging: LoggingConfig{
			File:  "",
			Level: "info",
		},
		Demo: DemoConfig{
			StartTab: 0,
		},
	}
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tabterm", "config.yaml"), nil
}
