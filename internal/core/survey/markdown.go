package survey

import (
	"fmt"
	"io"
	"strings"

	"github.com/colonyops/bon/internal/core/items"
)

// WriteMarkdown writes the survey as a Markdown document: a summary table
// followed by one bulleted section per repository with open items.
func WriteMarkdown(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, Markdown(r))
	return err
}

// Markdown renders the survey as a Markdown document.
func Markdown(r *Report) string {
	var b strings.Builder
	active := r.Active()

	fmt.Fprintf(&b, "# Bon Survey — %d open across %d repos\n\n", r.TotalOpen(), len(active))
	b.WriteString("| Repo | Open | Done | Outcomes | Actions | Waiting |\n")
	b.WriteString("|------|------|------|----------|---------|---------|\n")
	for _, repo := range active {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %d |\n",
			escapeCell(repo.Name), repo.Open, repo.Done, len(repo.Outcomes), len(repo.Actions), len(repo.Waiting))
	}
	b.WriteString("\n")

	for _, repo := range active {
		fmt.Fprintf(&b, "\n## %s\n\n", repo.Name)

		g := repo.Graph
		for _, o := range g.Outcomes {
			fmt.Fprintf(&b, "- **%s**\n", o.Title)
			for _, a := range g.ChildrenOf(o.ID) {
				fmt.Fprintf(&b, "  - %s%s\n", a.Title, mdWaiting(a))
			}
		}
		for _, a := range g.Orphans {
			fmt.Fprintf(&b, "- %s%s\n", a.Title, mdWaiting(a))
		}
	}

	if failed := r.Failed(); len(failed) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, repo := range failed {
			fmt.Fprintf(&b, "- %s: `%s`\n", repo.Name, repo.Err.Error())
		}
	}

	return b.String()
}

func mdWaiting(i items.Item) string {
	if i.IsWaiting() {
		return " *(waiting)*"
	}
	return ""
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
