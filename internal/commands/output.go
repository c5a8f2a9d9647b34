package commands

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/colonyops/bon/internal/core/styles"
	"github.com/colonyops/bon/internal/core/survey"
)

const defaultWidth = 80

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func paint(st lipgloss.Style) survey.Paint {
	return func(s string) string { return st.Render(s) }
}

// surveyTextStyle colors the survey report when w is a terminal.
func surveyTextStyle(w io.Writer) survey.TextStyle {
	if !isTerminal(w) {
		return survey.Plain()
	}
	return survey.TextStyle{
		Title:   paint(styles.HeaderStyle),
		Rule:    paint(styles.RuleStyle),
		Repo:    paint(styles.RepoStyle),
		Muted:   paint(styles.MutedStyle),
		Warning: paint(styles.WarningStyle),
		Error:   paint(styles.ErrorStyle),
	}
}

// statusIcon renders a pass/warn/fail marker, colored when w is a terminal.
func statusIcon(w io.Writer, icon string, st lipgloss.Style) string {
	if !isTerminal(w) {
		return icon
	}
	return st.Render(icon)
}
