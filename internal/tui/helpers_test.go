package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/btrkeks/bookminer/internal/tui/styles"
)

// key builds the KeyMsg bubbletea delivers for a key name.
func key(name string) tea.KeyMsg {
	switch name {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// press feeds keys to m one at a time and returns the last command.
func press(m tea.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

// typeText feeds each rune of s as its own key press.
func typeText(m tea.Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(key("space"))
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func testStyles() styles.Styles {
	return styles.Default()
}

// scriptedRunner plays keys into each model instead of starting a program.
type scriptedRunner struct {
	scripts [][]string
	models  []tea.Model
	err     error
}

func (r *scriptedRunner) Run(_ context.Context, model tea.Model) (tea.Model, error) {
	r.models = append(r.models, model)
	if r.err != nil {
		return nil, r.err
	}
	if len(r.scripts) > 0 {
		press(model, r.scripts[0]...)
		r.scripts = r.scripts[1:]
	}
	return model, nil
}
