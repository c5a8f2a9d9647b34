package survey

import (
	"fmt"
	"io"
	"strings"

	"github.com/colonyops/bon/internal/core/items"
)

// Paint decorates a fragment of report text.
type Paint func(string) string

func plain(s string) string { return s }

// TextStyle decorates the human text report. The zero value, or Plain(),
// leaves text unchanged.
type TextStyle struct {
	Title   Paint
	Rule    Paint
	Repo    Paint
	Muted   Paint
	Warning Paint
	Error   Paint
}

// Plain returns a TextStyle that writes undecorated text.
func Plain() TextStyle {
	return TextStyle{Title: plain, Rule: plain, Repo: plain, Muted: plain, Warning: plain, Error: plain}
}

func (st TextStyle) fill() TextStyle {
	p := Plain()
	if st.Title == nil {
		st.Title = p.Title
	}
	if st.Rule == nil {
		st.Rule = p.Rule
	}
	if st.Repo == nil {
		st.Repo = p.Repo
	}
	if st.Muted == nil {
		st.Muted = p.Muted
	}
	if st.Warning == nil {
		st.Warning = p.Warning
	}
	if st.Error == nil {
		st.Error = p.Error
	}
	return st
}

const ruleWidth = 60

// WriteText writes the grouped-by-repo human report.
func WriteText(w io.Writer, r *Report, st TextStyle) error {
	st = st.fill()

	var b strings.Builder
	active := r.Active()
	rule := st.Rule(strings.Repeat("─", ruleWidth))

	fmt.Fprintf(&b, "%s\n\n", st.Title(fmt.Sprintf("Bon Survey — %d open across %d repos (%d done)",
		r.TotalOpen(), len(active), r.TotalDone())))

	for _, repo := range active {
		b.WriteString(rule + "\n")
		fmt.Fprintf(&b, "%s  %s\n", st.Repo(repo.Name), st.Muted(fmt.Sprintf("(%d open, %d done)", repo.Open, repo.Done)))
		b.WriteString(rule + "\n")

		g := repo.Graph
		for _, o := range g.Outcomes {
			fmt.Fprintf(&b, "  ○ %s%s\n", o.Title, textWaiting(st, o))
			for _, a := range g.ChildrenOf(o.ID) {
				fmt.Fprintf(&b, "    · %s%s\n", a.Title, textWaiting(st, a))
			}
		}
		for _, a := range g.Orphans {
			fmt.Fprintf(&b, "  · %s%s\n", a.Title, textWaiting(st, a))
		}
		b.WriteString("\n")
	}

	if failed := r.Failed(); len(failed) > 0 {
		b.WriteString(st.Error("Errors:") + "\n")
		for _, repo := range failed {
			fmt.Fprintf(&b, "  %s: %s\n", repo.Name, st.Muted(repo.Err.Error()))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func textWaiting(st TextStyle, i items.Item) string {
	if i.IsWaiting() {
		return st.Warning(" [WAITING]")
	}
	return ""
}
