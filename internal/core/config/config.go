// Package config handles configuration loading and validation for bon.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/bon/internal/core/items"
	"github.com/colonyops/bon/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	// ReposDir is the root scanned by survey and audit.
	ReposDir    string   `yaml:"repos_dir"`
	DataDirs    []string `yaml:"data_dirs"`
	LogFileName string   `yaml:"log_file_name"`
	// Ignore holds doublestar patterns for repository names skipped by a scan.
	Ignore    []string    `yaml:"ignore"`
	ParseMode items.Mode  `yaml:"parse_mode"`
	Theme     string      `yaml:"theme"`
	Audit     AuditConfig `yaml:"audit"`
}

// AuditConfig holds the age thresholds used to flag stale items.
type AuditConfig struct {
	OldAfterDays     int `yaml:"old_after_days"`
	VeryOldAfterDays int `yaml:"very_old_after_days"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	age := items.DefaultAgeThresholds()
	return Config{
		ReposDir:    "~/Repos",
		DataDirs:    slices.Clone(items.DefaultDataDirs),
		LogFileName: items.DefaultFileName,
		ParseMode:   items.ModeStrict,
		Theme:       styles.DefaultTheme,
		Audit: AuditConfig{
			OldAfterDays:     age.OldAfterDays,
			VeryOldAfterDays: age.VeryOldAfterDays,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
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
	if c.ReposDir == "" {
		c.ReposDir = defaults.ReposDir
	}
	if len(c.DataDirs) == 0 {
		c.DataDirs = defaults.DataDirs
	}
	if c.LogFileName == "" {
		c.LogFileName = defaults.LogFileName
	}
	if c.ParseMode == "" {
		c.ParseMode = defaults.ParseMode
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Audit.OldAfterDays == 0 {
		c.Audit.OldAfterDays = defaults.Audit.OldAfterDays
	}
	if c.Audit.VeryOldAfterDays == 0 {
		c.Audit.VeryOldAfterDays = defaults.Audit.VeryOldAfterDays
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if !c.ParseMode.IsValid() {
		return fmt.Errorf("parse_mode %q must be one of: strict, lenient", c.ParseMode)
	}

	for i, dir := range c.DataDirs {
		if dir == "" || filepath.IsAbs(dir) || strings.ContainsRune(dir, os.PathSeparator) {
			return fmt.Errorf("data_dirs[%d] %q must be a single relative directory name", i, dir)
		}
	}

	if strings.ContainsRune(c.LogFileName, os.PathSeparator) {
		return fmt.Errorf("log_file_name %q must be a file name, not a path", c.LogFileName)
	}

	if c.Audit.OldAfterDays < 1 {
		return fmt.Errorf("audit.old_after_days must be at least 1")
	}
	if c.Audit.VeryOldAfterDays <= c.Audit.OldAfterDays {
		return fmt.Errorf("audit.very_old_after_days must be greater than audit.old_after_days")
	}

	return nil
}

// ApplyTheme activates the configured theme. An unknown name leaves the
// active theme unchanged and returns an error; `config validate` reports the
// same problem as a field error.
func (c *Config) ApplyTheme() error {
	if !styles.SetThemeName(c.Theme) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}

// ResolvedReposDir returns ReposDir with a leading ~ expanded to the home
// directory.
func (c *Config) ResolvedReposDir() string {
	return ExpandHome(c.ReposDir)
}

// Source returns the item log location derived from the configuration.
func (c *Config) Source() items.Source {
	return items.Source{DataDirs: c.DataDirs, FileName: c.LogFileName}
}

// AgeThresholds returns the audit age thresholds.
func (c *Config) AgeThresholds() items.AgeThresholds {
	return items.AgeThresholds{
		OldAfterDays:     c.Audit.OldAfterDays,
		VeryOldAfterDays: c.Audit.VeryOldAfterDays,
	}
}

// ExpandHome expands a leading ~ in path to the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
