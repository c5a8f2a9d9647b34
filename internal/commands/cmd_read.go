package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
	"github.com/colonyops/bon/internal/core/items"
	"github.com/colonyops/bon/internal/core/logging"
	"github.com/colonyops/bon/internal/core/views"
)

type ReadCmd struct {
	flags *Flags
	app   *bon.App

	// flags
	dir  string
	mode string
}

// NewReadCmd creates a new read command
func NewReadCmd(flags *Flags, app *bon.App) *ReadCmd {
	return &ReadCmd{flags: flags, app: app}
}

func readSynopsis() string {
	names := make([]string, len(views.All))
	for i, v := range views.All {
		names[i] = string(v)
	}
	return "bon read <" + strings.Join(names, "|") + ">"
}

// Register adds the read command to the application
func (cmd *ReadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "read",
		Usage:     "Render a view of one directory's item log",
		UsageText: readSynopsis() + " [--dir DIR] [--mode strict|lenient]",
		Description: `Reads <dir>/.bon/items.jsonl and prints one of three views:

  list     open outcomes with their open and done actions
  ready    open outcomes with actions that are open and not waiting
  current  tactical steps of open actions that have them

A missing log prints nothing. In strict mode one malformed line empties the
output; in lenient mode malformed lines are skipped. list and ready default to
strict, current to lenient.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "directory containing the item log",
				Value:       ".",
				Destination: &cmd.dir,
			},
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "parse mode (strict, lenient); defaults per view",
				Destination: &cmd.mode,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReadCmd) run(ctx context.Context, c *cli.Command) error {
	ew := c.Root().ErrWriter

	v, ok := views.Parse(c.Args().First())
	if !ok {
		return usageError(ew, readSynopsis())
	}

	mode := v.DefaultMode()
	if cmd.mode != "" {
		m, err := items.ParseMode(cmd.mode)
		if err != nil {
			_, _ = fmt.Fprintln(ew, err)
			return usageError(ew, readSynopsis()+" [--mode strict|lenient]")
		}
		mode = m
	}

	ctx, log := logging.Command(ctx, "read")

	res, err := cmd.app.Load(cmd.dir, mode)
	if err != nil {
		if errors.Is(err, items.ErrMalformed) {
			log.Warn().Ctx(ctx).Err(err).Str("dir", cmd.dir).Msg("malformed item log, nothing to show")
			return nil
		}
		return fmt.Errorf("load items: %w", err)
	}

	for _, skipped := range res.Skipped {
		log.Debug().Ctx(ctx).Err(skipped).Msg("skipped malformed line")
	}

	log.Debug().Ctx(ctx).Str("view", string(v)).Int("items", res.Set.Len()).Msg("rendering view")
	return views.Render(c.Root().Writer, res.Set, v)
}
