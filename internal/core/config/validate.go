package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/hay-kot/sshdeck/internal/core/sshconfig"
)

// ValidateDeep performs comprehensive validation of the configuration,
// including glob syntax and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips the
// config file check). This calls Validate() first for basic structural
// validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateSSHConfigs(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateSSHConfigs checks every pattern is a valid glob that matches at
// least one readable ssh_config file.
func (c *Config) validateSSHConfigs() error {
	var errs criterio.FieldErrorsBuilder
	matched := 0

	for i, pattern := range c.SSHConfig {
		field := fmt.Sprintf("ssh_config[%d]", i)

		if !doublestar.ValidatePattern(sshconfig.ExpandHome(pattern)) {
			errs = errs.Append(field, fmt.Errorf("invalid glob %q", pattern))
			continue
		}

		files, err := sshconfig.Resolve([]string{pattern})
		if err != nil {
			errs = errs.Append(field, err)
			continue
		}

		for _, f := range files {
			if _, err := sshconfig.ParseFile(f); err != nil {
				errs = errs.Append(field, err)
				continue
			}
			matched++
		}

		if len(files) == 0 && !hasMeta(pattern) {
			errs = errs.Append(field, fmt.Errorf("file not found: %s", pattern))
		}
	}

	if matched == 0 && len(c.SSHConfig) > 0 {
		errs = errs.Append("ssh_config", fmt.Errorf("no readable ssh config files matched"))
	}

	return errs.ToError()
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
