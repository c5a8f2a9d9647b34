package views

import (
	"fmt"

	"github.com/colonyops/bon/internal/core/items"
)

// listSelection shows open outcomes with every open or done action under
// them, and only open orphans.
var listSelection = items.Selection{
	Outcomes: items.Open,
	Children: func(i items.Item) bool { return i.IsOpen() || i.IsDone() },
	Orphans:  items.Open,
}

// readySelection shows open, non-waiting outcomes and actions. Ready actions
// under a waiting outcome are listed as orphans.
var readySelection = items.Selection{
	Outcomes: items.Ready,
	Children: items.Ready,
	Orphans:  items.Ready,
}

// List renders every open outcome with its actions, numbered by each item's
// own order field.
func List(s *items.Set) []string {
	g := items.Build(s, listSelection)

	var blocks [][]string
	for _, o := range g.Outcomes {
		block := []string{listLine("", o)}
		for _, a := range g.ChildrenOf(o.ID) {
			block = append(block, listLine("  ", a))
		}
		blocks = append(blocks, block)
	}

	var orphans []string
	for _, a := range g.Orphans {
		orphans = append(orphans, listLine("", a))
	}
	blocks = append(blocks, orphans)

	return joinBlocks(blocks)
}

func listLine(indent string, i items.Item) string {
	return fmt.Sprintf("%s%s %d. %s%s (%s)", indent, marker(i), i.Order, i.Title, waiting(i), i.ID)
}

// Ready renders open outcomes and their actionable actions, numbered
// sequentially within each group.
func Ready(s *items.Set) []string {
	g := items.Build(s, readySelection)

	var blocks [][]string
	for n, o := range g.Outcomes {
		block := []string{readyLine("", n+1, o)}
		for k, a := range g.ChildrenOf(o.ID) {
			block = append(block, readyLine("  ", k+1, a))
		}
		blocks = append(blocks, block)
	}

	var orphans []string
	for n, a := range g.Orphans {
		orphans = append(orphans, readyLine("", n+1, a))
	}
	blocks = append(blocks, orphans)

	return joinBlocks(blocks)
}

func readyLine(indent string, n int, i items.Item) string {
	return fmt.Sprintf("%s%d. %s%s (%s)", indent, n, i.Title, waiting(i), i.ID)
}
