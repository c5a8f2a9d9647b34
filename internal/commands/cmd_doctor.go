package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
	"github.com/colonyops/bon/internal/core/doctor"
	"github.com/colonyops/bon/internal/core/styles"
	"github.com/colonyops/bon/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	app    *bon.App
	format string
}

func NewDoctorCmd(flags *Flags, app *bon.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on configuration and item logs",
		UsageText:   "bon doctor [--format text|json]",
		Description: "Checks the configuration and strictly parses every item log under the repos directory, reporting the first malformed line of each.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.format != "text" && cmd.format != "json" {
		return usageError(c.Root().ErrWriter, "bon doctor [--format text|json]")
	}

	results := doctor.RunAll(ctx, cmd.app.Checks(cmd.flags.ConfigPath, cmd.flags.ResolveReposDir()))

	var err error
	if cmd.format == "json" {
		err = cmd.outputJSON(c, results)
	} else {
		err = cmd.outputText(c.Root().Writer, results)
	}
	if err != nil {
		return err
	}

	if !doctor.Healthy(results) {
		_, _, failed := doctor.Summary(results)
		return fmt.Errorf("%d check(s) failed: %w", failed, ErrReported)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)
	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: doctor.Healthy(results),
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
}

func (cmd *DoctorCmd) outputText(w io.Writer, results []doctor.Result) error {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render("Bon Doctor") + "\n")
	b.WriteString(styles.MutedStyle.Render(strings.Repeat("─", 40)) + "\n\n")

	for _, result := range results {
		fmt.Fprintf(&b, "%s %s\n", doctorIcon(w, result.Worst()), result.Name)

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}
			fmt.Fprintf(&b, "  %s %s%s\n", doctorIcon(w, item.Status), item.Label, detail)
		}

		b.WriteString("\n")
	}

	passed, warned, failed := doctor.Summary(results)
	fmt.Fprintf(&b, "%s  %s  %s\n",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)

	_, err := io.WriteString(w, b.String())
	return err
}

func doctorIcon(w io.Writer, s doctor.Status) string {
	switch s {
	case doctor.StatusWarn:
		return statusIcon(w, "●", styles.WarningStyle)
	case doctor.StatusFail:
		return statusIcon(w, "✘", styles.ErrorStyle)
	default:
		return statusIcon(w, "✔", styles.SuccessStyle)
	}
}
