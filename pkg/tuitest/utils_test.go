package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \nplain  \n\n"
	assert.Equal(t, "bold\nplain", StripANSI(in))
}

func TestKeyPress(t *testing.T) {
	msg, ok := KeyPress('q').(tea.KeyMsg)
	assert.True(t, ok)
	assert.Equal(t, "q", msg.String())

	assert.Equal(t, "tab", Key(tea.KeyTab).(tea.KeyMsg).String())
	assert.Equal(t, "down", KeyDown().(tea.KeyMsg).String())
	assert.Equal(t, "up", KeyUp().(tea.KeyMsg).String())
}
