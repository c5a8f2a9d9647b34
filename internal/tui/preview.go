package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/colonyops/bon/internal/core/items"
	"github.com/colonyops/bon/internal/core/styles"
	"github.com/colonyops/bon/internal/core/survey"
	"github.com/colonyops/bon/internal/core/views"
)

// Pane selects what the preview shows for the selected repository.
type Pane int

const (
	PaneList Pane = iota
	PaneReady
	PaneCurrent
	PaneSummary
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PaneList:
		return "list"
	case PaneReady:
		return "ready"
	case PaneCurrent:
		return "current"
	case PaneSummary:
		return "summary"
	default:
		return "unknown"
	}
}

func (p Pane) next() Pane { return (p + 1) % paneCount }
func (p Pane) prev() Pane { return (p + paneCount - 1) % paneCount }

func (p Pane) view() (views.View, bool) {
	switch p {
	case PaneList:
		return views.ViewList, true
	case PaneReady:
		return views.ViewReady, true
	case PaneCurrent:
		return views.ViewCurrent, true
	default:
		return "", false
	}
}

// Loader reads the item log of a repository directory.
type Loader func(dir string, mode items.Mode) (items.Result, error)

const emptyPreview = "nothing to show"

// previewContent renders pane p for one repository. width is used to wrap
// the rendered Markdown summary.
func previewContent(sum survey.RepoSummary, p Pane, load Loader, width int) string {
	if sum.Err != nil {
		return styles.ErrorStyle.Render(sum.Err.Error())
	}

	if v, ok := p.view(); ok {
		res, err := load(sum.Path, v.DefaultMode())
		if err != nil {
			return styles.ErrorStyle.Render(err.Error())
		}
		out := views.String(res.Set, v)
		if out == "" {
			return styles.MutedStyle.Render(emptyPreview)
		}
		return out
	}

	md := survey.Markdown(&survey.Report{Repos: []survey.RepoSummary{sum}})
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func describe(sum survey.RepoSummary) string {
	if sum.Err != nil {
		return "unreadable log"
	}
	return fmt.Sprintf("%d open, %d done", sum.Open, sum.Done)
}
