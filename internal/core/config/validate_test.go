package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ReposDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Ignore = []string{"archive-*", "{tmp,scratch}"}
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_FieldErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Theme = "neon"
	cfg.Ignore = []string{"ok", "[broken"}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, err.Error(), "theme")
	assert.Contains(t, err.Error(), "ignore[1]")
	assert.NotContains(t, err.Error(), "ignore[0]")
}

func TestValidateDeep_ReposDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(cfg.ReposDir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.ReposDir = file

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	err := cfg.ValidateDeep(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateDeep_RunsStructuralValidation(t *testing.T) {
	cfg := validConfig(t)
	cfg.ParseMode = "sloppy"
	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse_mode")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.ReposDir = filepath.Join(cfg.ReposDir, "missing")
	cfg.Ignore = []string{"*"}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Repos", warnings[0].Category)
	assert.Equal(t, "Ignore", warnings[1].Category)
	assert.Equal(t, "ignore[0]", warnings[1].Item)
}
