// Package styles provides shared lipgloss styles for CLI and TUI output.
package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette is the palette the global styles were last built from.
var CurrentPalette Palette

var (
	// Survey report.
	HeaderStyle lipgloss.Style
	RuleStyle   lipgloss.Style
	RepoStyle   lipgloss.Style
	MutedStyle  lipgloss.Style

	// Doctor and validation results.
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Browser.
	TitleStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	PaneStyle     lipgloss.Style
	HelpStyle     lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	RuleStyle = lipgloss.NewStyle().Foreground(p.Surface)
	RepoStyle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	SelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// SetThemeName switches to a built-in theme, reporting whether it exists.
func SetThemeName(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		return false
	}
	SetTheme(p)
	return true
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func hexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := hexPtr(CurrentPalette.Foreground)
	primary := hexPtr(CurrentPalette.Primary)
	secondary := hexPtr(CurrentPalette.Secondary)
	muted := hexPtr(CurrentPalette.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = secondary

	cfg.Emph.Color = muted
	cfg.Strong.Color = fg
	cfg.Table.Color = fg

	return cfg
}

// FormTheme returns a huh theme using the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	p := CurrentPalette

	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p.Secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Success)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p.Success)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(p.Foreground)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted)

	return t
}
