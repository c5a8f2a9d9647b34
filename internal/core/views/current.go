package views

import (
	"fmt"

	"github.com/colonyops/bon/internal/core/items"
)

// Current renders the tactical checklist of every open action that has one.
func Current(s *items.Set) []string {
	var blocks [][]string
	for _, a := range s.Filter(items.Actions) {
		t := a.ActiveSteps()
		if t == nil {
			continue
		}

		block := []string{fmt.Sprintf("Working: %s (%s)", a.Title, a.ID)}
		for i, step := range t.Steps {
			block = append(block, stepLine(i, t.Current, step))
		}
		blocks = append(blocks, block)
	}
	return joinBlocks(blocks)
}

func stepLine(i, current int, step string) string {
	switch {
	case i < current:
		return fmt.Sprintf("  %s %s", GlyphDoneStep, step)
	case i == current:
		return fmt.Sprintf("  %s %s%s", GlyphCurrentStep, step, CurrentSuffix)
	default:
		return "    " + step
	}
}
