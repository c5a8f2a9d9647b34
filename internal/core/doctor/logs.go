package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/colonyops/bon/internal/core/items"
	"github.com/colonyops/bon/internal/core/survey"
)

// LogsCheck strictly parses every item log under the repos root and reports
// the first malformed line of each broken log.
type LogsCheck struct {
	root    string
	scanner *survey.Scanner
}

// NewLogsCheck creates a logs check over the repositories found by scanner.
func NewLogsCheck(root string, scanner *survey.Scanner) *LogsCheck {
	return &LogsCheck{root: root, scanner: scanner}
}

func (c *LogsCheck) Name() string {
	return "Item Logs"
}

func (c *LogsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(c.root)
	switch {
	case os.IsNotExist(err):
		result.add(c.root, StatusWarn, "repos directory does not exist")
		return result
	case err != nil:
		result.add(c.root, StatusFail, fmt.Sprintf("inaccessible: %v", err))
		return result
	case !info.IsDir():
		result.add(c.root, StatusFail, "path is not a directory")
		return result
	}

	repos, err := c.scanner.Repos(ctx)
	if err != nil {
		result.add(c.root, StatusFail, err.Error())
		return result
	}
	if len(repos) == 0 {
		result.add(c.root, StatusWarn, "no repositories with an item log")
		return result
	}

	for _, repo := range repos {
		if repo.Err != nil {
			result.add(repo.Name, StatusFail, repo.Err.Error())
			continue
		}

		res, err := items.LoadFile(repo.LogPath, items.ModeStrict)
		var lerr *items.LineError
		switch {
		case errors.As(err, &lerr):
			result.add(repo.Name, StatusFail, fmt.Sprintf("line %d: %v", lerr.Line, lerr.Err))
		case err != nil:
			result.add(repo.Name, StatusFail, err.Error())
		default:
			result.add(repo.Name, StatusPass, fmt.Sprintf("%d items, %d open", res.Set.Len(), res.Set.Count(items.Open)))
		}
	}

	return result
}
