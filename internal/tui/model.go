// Package tui implements the interactive repository browser.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/bon/internal/core/styles"
	"github.com/colonyops/bon/internal/core/survey"
)

type repoItem struct {
	sum survey.RepoSummary
}

func (i repoItem) Title() string       { return i.sum.Name }
func (i repoItem) Description() string { return describe(i.sum) }
func (i repoItem) FilterValue() string { return i.sum.Name }

// Model is the browser: a repository list on the left and a preview of the
// selected repository on the right.
type Model struct {
	load    Loader
	repos   list.Model
	preview viewport.Model
	help    help.Model
	keys    keyMap

	pane     Pane
	selected string
	width    int
	height   int
}

// New creates a browser over the repositories of report.
func New(report *survey.Report, load Loader) Model {
	entries := make([]list.Item, 0, len(report.Repos))
	for _, sum := range report.Repos {
		entries = append(entries, repoItem{sum: sum})
	}

	repos := list.New(entries, list.NewDefaultDelegate(), 0, 0)
	repos.Title = "Repositories"
	repos.Styles.Title = styles.TitleStyle
	repos.SetShowHelp(false)

	return Model{
		load:    load,
		repos:   repos,
		preview: viewport.New(0, 0),
		help:    help.New(),
		keys:    defaultKeys(),
	}
}

// Pane returns the active preview pane.
func (m Model) Pane() Pane { return m.pane }

// Selected returns the name of the repository being previewed.
func (m Model) Selected() string { return m.selected }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.repos.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextPane):
			m.pane = m.pane.next()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.PrevPane):
			m.pane = m.pane.prev()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.PageDown), key.Matches(msg, m.keys.PageUp):
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.repos, cmd = m.repos.Update(msg)
	if m.current() != m.selected {
		m.refresh()
	}
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	header := styles.HeaderStyle.Render(m.pane.String())
	right := styles.PaneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.preview.View()))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.repos.View(), right)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
}

func (m *Model) layout() {
	listWidth := m.width / 3
	if listWidth < 20 {
		listWidth = 20
	}
	contentHeight := max(m.height-1, 1)

	m.repos.SetSize(listWidth, contentHeight)

	frameW, frameH := styles.PaneStyle.GetFrameSize()
	m.preview.Width = max(m.width-listWidth-frameW, 10)
	m.preview.Height = max(contentHeight-frameH-1, 1)
	m.help.Width = m.width
}

func (m *Model) current() string {
	if it, ok := m.repos.SelectedItem().(repoItem); ok {
		return it.sum.Name
	}
	return ""
}

// refresh re-renders the preview for the selected repository and pane.
func (m *Model) refresh() {
	it, ok := m.repos.SelectedItem().(repoItem)
	if !ok {
		m.selected = ""
		m.preview.SetContent(styles.MutedStyle.Render(emptyPreview))
		return
	}

	m.selected = it.sum.Name
	m.preview.SetContent(previewContent(it.sum, m.pane, m.load, m.preview.Width))
	m.preview.GotoTop()
}
