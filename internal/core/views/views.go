// Package views renders the single-project reader views over an item set.
package views

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/colonyops/bon/internal/core/items"
)

// View names a reader projection.
type View string

const (
	ViewList    View = "list"
	ViewReady   View = "ready"
	ViewCurrent View = "current"
)

// All lists the reader views in help order.
var All = []View{ViewList, ViewReady, ViewCurrent}

// Glyphs are part of the output format; downstream tooling matches on them.
const (
	GlyphOpen        = "○"
	GlyphDone        = "✓"
	GlyphCurrentStep = "→"
	GlyphDoneStep    = "✓"
	WaitingSuffix    = " [WAITING]"
	CurrentSuffix    = " [current]"
)

// Parse converts a view name into a View.
func Parse(s string) (View, bool) {
	for _, v := range All {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// DefaultMode is the parse mode a view uses unless told otherwise. The
// grouped views read the log as one batch; current streams it.
func (v View) DefaultMode() items.Mode {
	if v == ViewCurrent {
		return items.ModeLenient
	}
	return items.ModeStrict
}

// Render writes view v of s to w.
func Render(w io.Writer, s *items.Set, v View) error {
	var lines []string
	switch v {
	case ViewList:
		lines = List(s)
	case ViewReady:
		lines = Ready(s)
	case ViewCurrent:
		lines = Current(s)
	default:
		return fmt.Errorf("unknown view %q", v)
	}
	return writeLines(w, lines)
}

// String renders view v of s into a string.
func String(s *items.Set, v View) string {
	var buf bytes.Buffer
	_ = Render(&buf, s, v)
	return buf.String()
}

func writeLines(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// joinBlocks joins line groups with a single blank line between them.
func joinBlocks(blocks [][]string) []string {
	var out []string
	for _, b := range blocks {
		if len(b) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, b...)
	}
	return out
}

func waiting(i items.Item) string {
	if i.IsWaiting() {
		return WaitingSuffix
	}
	return ""
}

func marker(i items.Item) string {
	if i.IsDone() {
		return GlyphDone
	}
	return GlyphOpen
}
