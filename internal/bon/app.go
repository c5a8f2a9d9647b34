// Package bon wires configuration, logging and the core packages into the
// operations the CLI and TUI expose.
package bon

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/bon/internal/core/config"
	"github.com/colonyops/bon/internal/core/doctor"
	"github.com/colonyops/bon/internal/core/items"
	"github.com/colonyops/bon/internal/core/survey"
)

// App is the central entry point for all bon operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Now    func() time.Time
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger, Now: time.Now}
}

// Load reads the item log under dir using the configured data directories.
func (a *App) Load(dir string, mode items.Mode) (items.Result, error) {
	return a.Config.Source().Load(dir, mode)
}

// Scanner returns a survey scanner over root configured from the app config.
func (a *App) Scanner(root string) *survey.Scanner {
	return survey.NewScanner(survey.Options{
		Root:   root,
		Source: a.Config.Source(),
		Mode:   a.Config.ParseMode,
		Ignore: a.Config.Ignore,
		Age:    a.Config.AgeThresholds(),
		Now:    a.Now,
		Logger: a.Logger.With().Str("cmp", "survey").Logger(),
	})
}

// Checks returns the doctor checks for the given config file and repos root.
func (a *App) Checks(configPath, root string) []doctor.Check {
	return []doctor.Check{
		doctor.NewConfigCheck(configPath, a.Config),
		doctor.NewLogsCheck(root, a.Scanner(root)),
	}
}
