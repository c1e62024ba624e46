package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/sshdeck/internal/core/config"
	"github.com/hay-kot/sshdeck/internal/core/entry"
	"github.com/hay-kot/sshdeck/internal/core/sshconfig"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Overrides for values in the config file.
	SSHConfig []string
	NoMouse   bool
	NoColor   bool
	Theme     string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// Patterns returns the ssh_config patterns to load. Patterns given on the
// command line replace the configured ones.
func (f *Flags) Patterns() []string {
	if len(f.SSHConfig) > 0 {
		return f.SSHConfig
	}
	if f.Config == nil {
		return config.DefaultConfig().SSHConfig
	}
	return f.Config.SSHConfig
}

// LoadStore reads every configured ssh_config file into a Store.
func (f *Flags) LoadStore() (*entry.Store, error) {
	entries, err := sshconfig.Load(f.Patterns())
	if err != nil {
		return nil, err
	}
	return entry.NewStore(entries), nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "sshdeck", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/sshdeck/sshdeck.log
// On Linux: $XDG_STATE_HOME/sshdeck/sshdeck.log (defaults to ~/.local/state/sshdeck/sshdeck.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "sshdeck", "sshdeck.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "sshdeck", "sshdeck.log")
	}

	return filepath.Join(home, ".local", "state", "sshdeck", "sshdeck.log")
}
