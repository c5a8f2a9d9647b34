package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
	"github.com/colonyops/bon/internal/core/logging"
	"github.com/colonyops/bon/internal/core/styles"
	"github.com/colonyops/bon/internal/core/survey"
)

const surveySynopsis = "bon survey [--json | --markdown [--render]]"

type SurveyCmd struct {
	flags *Flags
	app   *bon.App

	// flags
	jsonOutput bool
	markdown   bool
	render     bool
}

// NewSurveyCmd creates a new survey command
func NewSurveyCmd(flags *Flags, app *bon.App) *SurveyCmd {
	return &SurveyCmd{flags: flags, app: app}
}

// Register adds the survey command to the application
func (cmd *SurveyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "survey",
		Usage:     "Summarize open work across every repository",
		UsageText: surveySynopsis,
		Description: `Scans each immediate subdirectory of the repos directory for an item log and
reports open outcomes and actions, busiest repository first.

The repos directory comes from --repos-dir, BON_REPOS_DIR or REPOS_DIR, the
repos_dir config key, then ~/Repos. Repositories whose log cannot be read are
listed separately and never stop the scan.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output a JSON array",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"md"},
				Usage:       "output Markdown",
				Destination: &cmd.markdown,
			},
			&cli.BoolFlag{
				Name:        "render",
				Usage:       "render the Markdown for the terminal (requires --markdown)",
				Destination: &cmd.render,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SurveyCmd) run(ctx context.Context, c *cli.Command) error {
	ew := c.Root().ErrWriter
	if cmd.jsonOutput && cmd.markdown {
		_, _ = fmt.Fprintln(ew, "--json and --markdown are mutually exclusive")
		return usageError(ew, surveySynopsis)
	}
	if cmd.render && !cmd.markdown {
		_, _ = fmt.Fprintln(ew, "--render requires --markdown")
		return usageError(ew, surveySynopsis)
	}

	ctx = logging.WithCommand(ctx, "survey")
	root := cmd.flags.ResolveReposDir()

	report, err := cmd.app.Scanner(root).Survey(ctx)
	if err != nil {
		return fmt.Errorf("survey %s: %w", root, err)
	}

	w := c.Root().Writer
	switch {
	case cmd.jsonOutput:
		return survey.WriteJSON(w, report)
	case cmd.markdown && cmd.render:
		return renderMarkdown(w, survey.Markdown(report))
	case cmd.markdown:
		return survey.WriteMarkdown(w, report)
	default:
		return survey.WriteText(w, report, surveyTextStyle(w))
	}
}

func renderMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(terminalWidth(w)),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
