package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
	"github.com/colonyops/bon/internal/core/logging"
	"github.com/colonyops/bon/internal/core/styles"
	"github.com/colonyops/bon/internal/core/survey"
	"github.com/colonyops/bon/pkg/iojson"
)

type AuditCmd struct {
	flags *Flags
	app   *bon.App

	// flags
	repos []string
	pick  bool
}

// NewAuditCmd creates a new audit command
func NewAuditCmd(flags *Flags, app *bon.App) *AuditCmd {
	return &AuditCmd{flags: flags, app: app}
}

// Register adds the audit command to the application
func (cmd *AuditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "audit",
		Usage:     "Dump open items with briefs and age flags as JSON",
		UsageText: "bon audit [--repos NAME ...] [--pick] [NAME ...]",
		Description: `Emits one JSON document describing every open outcome and action, for a
reviewer that checks items against the code.

Items created 30 or more days ago are flagged "old", 60 or more "very_old"
(thresholds are configurable). Names given with --repos or as arguments limit
the audit; each may be an exact repository name or a glob such as "api-*".`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "repos",
				Usage:       "repository names or globs to audit (default: all)",
				Destination: &cmd.repos,
			},
			&cli.BoolFlag{
				Name:        "pick",
				Usage:       "choose repositories interactively",
				Destination: &cmd.pick,
			},
		},
		ShellComplete: RepoNameCompleter(cmd.flags, cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *AuditCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "audit")
	ew := c.Root().ErrWriter

	root := cmd.flags.ResolveReposDir()
	scanner := cmd.app.Scanner(root)

	filter := survey.RepoFilter(append(append([]string{}, cmd.repos...), c.Args().Slice()...))

	if cmd.pick {
		picked, err := cmd.pickRepos(ctx, scanner, filter)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("pick repos: %w", err)
		}
		if len(picked) == 0 {
			return nil
		}
		filter = picked
	}

	report, err := scanner.Audit(ctx, filter)
	if err != nil {
		_ = iojson.WriteError(ew, "audit failed", map[string]any{
			"repos_dir": root,
			"error":     err.Error(),
		})
		return fmt.Errorf("audit: %w", errors.Join(err, ErrReported))
	}

	return iojson.WriteWith(c.Root().Writer, ew, report)
}

// pickRepos offers the repositories matching filter in a multi-select and
// returns the chosen names.
func (cmd *AuditCmd) pickRepos(ctx context.Context, scanner *survey.Scanner, filter survey.RepoFilter) (survey.RepoFilter, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repos, err := scanner.Repos(ctx)
	if err != nil {
		return nil, err
	}

	var options []huh.Option[string]
	for _, r := range repos {
		if filter.Match(r.Name) {
			options = append(options, huh.NewOption(r.Name, r.Name))
		}
	}
	if len(options) == 0 {
		return nil, nil
	}

	var selected []string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Repositories to audit").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(styles.FormTheme()).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return survey.RepoFilter(selected), nil
}
