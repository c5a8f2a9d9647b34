package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/bon/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including glob syntax, theme names and file accessibility. The configPath
// argument specifies the config file location to validate (empty string skips
// the config file check). Validate is run first for structural checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("repos_dir", c.ResolvedReposDir(), isDirectoryOrNotExist),
		criterio.Run("theme", c.Theme, themeExists),
		c.validateIgnore(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	dir := c.ResolvedReposDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		warnings = append(warnings, ValidationWarning{
			Category: "Repos",
			Item:     dir,
			Message:  "repos directory does not exist; survey will be empty",
		})
	}

	for i, pattern := range c.Ignore {
		if pattern == "*" || pattern == "**" {
			warnings = append(warnings, ValidationWarning{
				Category: "Ignore",
				Item:     fmt.Sprintf("ignore[%d]", i),
				Message:  "pattern ignores every repository",
			})
		}
	}

	return warnings
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

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func (c *Config) validateIgnore() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("ignore[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}
