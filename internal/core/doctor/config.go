package doctor

import (
	"context"
	"os"

	"github.com/colonyops/bon/internal/core/config"
)

// ConfigCheck reports whether the configuration file loads and passes deep
// validation.
type ConfigCheck struct {
	path string
	cfg  *config.Config
}

// NewConfigCheck creates a config check. cfg is the configuration already
// loaded from path; it is nil when loading failed.
func NewConfigCheck(path string, cfg *config.Config) *ConfigCheck {
	return &ConfigCheck{path: path, cfg: cfg}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case c.path == "":
		result.add("config file", StatusPass, "none, using defaults")
	case os.IsNotExist(err):
		result.add(c.path, StatusPass, "not found, using defaults")
	case err != nil:
		result.add(c.path, StatusFail, err.Error())
	default:
		result.add(c.path, StatusPass, "")
	}

	if c.cfg == nil {
		result.add("load", StatusFail, "configuration could not be loaded")
		return result
	}

	if err := c.cfg.ValidateDeep(c.path); err != nil {
		result.add("validate", StatusFail, err.Error())
	} else {
		result.add("validate", StatusPass, "")
	}

	for _, w := range c.cfg.Warnings() {
		label := w.Category
		if w.Item != "" {
			label += " " + w.Item
		}
		result.add(label, StatusWarn, w.Message)
	}

	return result
}
