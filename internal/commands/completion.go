package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
)

// RepoNameCompleter returns a ShellCompleteFunc that suggests repository
// names under the repos directory as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func RepoNameCompleter(flags *Flags, app *bon.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		repos, err := app.Scanner(flags.ResolveReposDir()).Repos(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, r := range repos {
			_, _ = fmt.Fprintln(w, r.Name)
		}
	}
}
