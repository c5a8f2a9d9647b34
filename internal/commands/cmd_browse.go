package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
	"github.com/colonyops/bon/internal/core/logging"
	"github.com/colonyops/bon/internal/tui"
)

type BrowseCmd struct {
	flags *Flags
	app   *bon.App
}

// NewBrowseCmd creates a new browse command
func NewBrowseCmd(flags *Flags, app *bon.App) *BrowseCmd {
	return &BrowseCmd{flags: flags, app: app}
}

// Register adds the browse command to the application
func (cmd *BrowseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "browse",
		Usage:     "Browse repositories and their views interactively",
		UsageText: "bon browse",
		Description: `Opens a terminal browser over the surveyed repositories. The left pane lists
repositories by open count; the right pane shows the list, ready or current
view of the selected repository, or its survey summary. Press tab to switch
views and q to quit.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *BrowseCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "browse")
	root := cmd.flags.ResolveReposDir()

	report, err := cmd.app.Scanner(root).Survey(ctx)
	if err != nil {
		return fmt.Errorf("survey %s: %w", root, err)
	}

	if len(report.Repos) == 0 {
		_, _ = fmt.Fprintf(c.Root().ErrWriter, "No repositories with items under %s\n", root)
		return nil
	}

	p := tea.NewProgram(tui.New(report, cmd.app.Load), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
