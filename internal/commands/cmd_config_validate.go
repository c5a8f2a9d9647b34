package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/core/config"
	"github.com/colonyops/bon/internal/core/styles"
	"github.com/colonyops/bon/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "bon config validate [--format text|json]",
				Description: "Validates the configuration file, checking parse mode, ignore globs, theme name and the repos directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// ValidationError is one failed configuration field.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func validationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.format != "text" && cmd.format != "json" {
		return usageError(c.Root().ErrWriter, "bon config validate [--format text|json]")
	}

	cfg := cmd.flags.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	errs := validationErrors(cfg.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cfg.Warnings()

	var err error
	if cmd.format == "json" {
		err = iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, struct {
			Valid    bool                       `json:"valid"`
			Errors   []ValidationError          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(errs) == 0,
			Errors:   errs,
			Warnings: warnings,
		})
	} else {
		err = cmd.outputText(c.Root().Writer, errs, warnings)
	}
	if err != nil {
		return err
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d error(s) found: %w", len(errs), ErrReported)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, errs []ValidationError, warnings []config.ValidationWarning) error {
	for _, warn := range warnings {
		line := fmt.Sprintf("%s %s: %s", statusIcon(w, "●", styles.WarningStyle), warn.Category, warn.Message)
		if warn.Item != "" {
			line += fmt.Sprintf(" (%s)", warn.Item)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, e := range errs {
		label := e.Field
		if label == "" {
			label = "config"
		}
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", statusIcon(w, "✘", styles.ErrorStyle), label, e.Message); err != nil {
			return err
		}
	}

	var err error
	if len(errs) == 0 {
		_, err = fmt.Fprintf(w, "%s Configuration is valid\n", statusIcon(w, "✔", styles.SuccessStyle))
	} else {
		_, err = fmt.Fprintf(w, "%d error(s) found\n", len(errs))
	}
	return err
}
