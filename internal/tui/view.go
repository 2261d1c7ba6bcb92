package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/btrkeks/bookminer/internal/tui/keymap"
	"github.com/btrkeks/bookminer/internal/tui/styles"
)

// chrome holds what every prompt shares: bindings, styles and the notice
// left by the previous action.
type chrome struct {
	keymap *keymap.Keymap
	styles styles.Styles
	notice string
	height int
	width  int
}

func newChrome(km *keymap.Keymap, st styles.Styles, notice string) chrome {
	if km == nil {
		km = keymap.DefaultKeymap()
	}
	return chrome{keymap: km, styles: st, notice: notice}
}

// frame renders title, notice, body and the help line of mode.
func (c chrome) frame(title, body string, mode keymap.Mode) string {
	var b strings.Builder
	if c.notice != "" {
		b.WriteString(c.styles.ErrorNotice.Render(c.notice))
		b.WriteString("\n")
	}
	if title != "" {
		b.WriteString(c.styles.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(c.styles.Help.Render(c.keymap.HelpLine(mode)))
	b.WriteString("\n")
	return b.String()
}

// visibleRange returns the window [start, end) of a list of n rows that
// keeps cursor in view when only height rows fit. A zero height shows all.
func visibleRange(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(start, 0)
	start = min(start, n-height)
	return start, start + height
}

// listHeight is the number of rows left for a list after the chrome.
func (c chrome) listHeight() int {
	const reserved = 6 // title, notice, help and margins
	if c.height == 0 {
		return 0
	}
	return max(c.height-reserved, 3)
}

// resize records the terminal size.
func (c *chrome) resize(width, height int) {
	c.width = width
	c.height = height
}

// fit truncates a rendered row to the terminal width, leaving escape
// sequences intact. A zero width leaves s alone.
func (c chrome) fit(s string) string {
	if c.width <= 3 || lipgloss.Width(s) <= c.width {
		return s
	}
	return ansi.Truncate(s, c.width, "...")
}

// wrap moves i by delta within [0, n) with wraparound.
func wrap(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
