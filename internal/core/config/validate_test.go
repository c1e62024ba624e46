package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config pointing at a real ssh config in a temp dir.
func validConfig(t *testing.T) (*Config, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("Host web1\n  HostName 10.0.0.1\n"), 0o644))

	cfg := DefaultConfig()
	cfg.SSHConfig = []string{path}
	return &cfg, dir
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg, _ := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_GlobWithoutMatchesIsAllowed(t *testing.T) {
	cfg, dir := validConfig(t)
	cfg.SSHConfig = append(cfg.SSHConfig, filepath.Join(dir, "config.d", "*"))

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_MissingFile(t *testing.T) {
	cfg, dir := validConfig(t)
	cfg.SSHConfig = append(cfg.SSHConfig, filepath.Join(dir, "nope"))

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Equal(t, "ssh_config[1]", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "file not found")
}

func TestValidateDeep_InvalidGlob(t *testing.T) {
	cfg, dir := validConfig(t)
	cfg.SSHConfig = append(cfg.SSHConfig, filepath.Join(dir, "[unclosed"))

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Err.Error(), "invalid glob")
}

func TestValidateDeep_UnparseableFile(t *testing.T) {
	cfg, dir := validConfig(t)
	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("Match host foo\n  User x\n"), 0o644))
	cfg.SSHConfig = append(cfg.SSHConfig, bad)

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Equal(t, "ssh_config[1]", fieldErrs[0].Field)
}

func TestValidateDeep_NothingMatched(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SSHConfig = []string{filepath.Join(t.TempDir(), "*.conf")}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "ssh_config", fieldErrs[0].Field)
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg, dir := validConfig(t)

	err := cfg.ValidateDeep(dir)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_StructuralErrorFirst(t *testing.T) {
	cfg, _ := validConfig(t)
	cfg.TUI.QueueSize = -1

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue_size")
}
