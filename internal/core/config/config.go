// Package config handles configuration loading and validation for sshdeck.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hay-kot/sshdeck/internal/core/styles"
	"gopkg.in/yaml.v3"
)

// Bounds for the render cadence.
const (
	MinTick = 10 * time.Millisecond
	MaxTick = 5 * time.Second
)

// Config holds the application configuration.
type Config struct {
	// SSHConfig lists the files to browse. Entries are doublestar globs and
	// may start with "~".
	SSHConfig []string  `yaml:"ssh_config"`
	TUI       TUIConfig `yaml:"tui"`
}

// TUIConfig controls the interactive browser.
type TUIConfig struct {
	Theme     string        `yaml:"theme"`
	Tick      time.Duration `yaml:"tick"`       // redraw cadence and receive timeout
	Mouse     *bool         `yaml:"mouse"`      // nil = enabled
	Color     *bool         `yaml:"color"`      // nil = enabled
	QueueSize int           `yaml:"queue_size"` // command channel buffer
}

// MouseEnabled reports whether mouse reporting should be requested.
func (t TUIConfig) MouseEnabled() bool {
	return t.Mouse == nil || *t.Mouse
}

// ColorEnabled reports whether styled output is allowed.
func (t TUIConfig) ColorEnabled() bool {
	return t.Color == nil || *t.Color
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SSHConfig: []string{"~/.ssh/config", "~/.ssh/config.d/*"},
		TUI: TUIConfig{
			Theme:     styles.DefaultTheme,
			Tick:      100 * time.Millisecond,
			QueueSize: 256,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if len(c.SSHConfig) == 0 {
		c.SSHConfig = defaults.SSHConfig
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Tick == 0 {
		c.TUI.Tick = defaults.TUI.Tick
	}
	if c.TUI.QueueSize == 0 {
		c.TUI.QueueSize = defaults.TUI.QueueSize
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if len(c.SSHConfig) == 0 {
		return fmt.Errorf("ssh_config must list at least one file")
	}

	for i, p := range c.SSHConfig {
		if p == "" {
			return fmt.Errorf("ssh_config[%d] cannot be empty", i)
		}
	}

	if c.TUI.Tick < MinTick || c.TUI.Tick > MaxTick {
		return fmt.Errorf("tui.tick must be between %s and %s", MinTick, MaxTick)
	}

	if c.TUI.QueueSize < 1 {
		return fmt.Errorf("tui.queue_size must be at least 1")
	}

	if !slices.Contains(styles.ThemeNames(), c.TUI.Theme) {
		return fmt.Errorf("tui.theme %q is not a known theme", c.TUI.Theme)
	}

	return nil
}
