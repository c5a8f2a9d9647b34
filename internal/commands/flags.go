package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/bon/internal/core/config"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	ReposDir     string
	OTLPEndpoint string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// ResolveReposDir returns the repos root: the --repos-dir flag (or its
// environment variables) when set, otherwise the configured repos_dir.
func (f *Flags) ResolveReposDir() string {
	if f.ReposDir != "" {
		return config.ExpandHome(f.ReposDir)
	}
	if f.Config != nil {
		return f.Config.ResolvedReposDir()
	}
	def := config.DefaultConfig()
	return def.ResolvedReposDir()
}

func configHome() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bon")
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return filepath.Join(configHome(), "config.yaml")
}

// DefaultEnvFile returns the dotenv file loaded before flags are parsed.
func DefaultEnvFile() string {
	if path := os.Getenv("BON_ENV_FILE"); path != "" {
		return path
	}
	return filepath.Join(configHome(), "bon.env")
}
