package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/tui/keymap"
	"github.com/btrkeks/bookminer/internal/tui/styles"
)

// SelectModel is a single-choice list. Enter chooses the highlighted option.
type SelectModel struct {
	chrome
	title   string
	options []string
	cursor  int

	done      bool
	cancelled bool
}

// NewSelectModel creates a list over options with the first one highlighted.
// An empty list is invalid input: there would be nothing to choose.
func NewSelectModel(title string, options []string, km *keymap.Keymap, st styles.Styles, notice string) (*SelectModel, error) {
	if len(options) == 0 {
		return nil, errors.NewValidationError("nothing to choose from").WithField(title)
	}
	return &SelectModel{
		chrome:  newChrome(km, st, notice),
		title:   title,
		options: options,
	}, nil
}

// Init implements tea.Model.
func (m *SelectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd, ok := m.keymap.GetBinding(msg, keymap.ModeSelect)
		if !ok {
			return m, nil
		}
		switch cmd {
		case keymap.CmdUp:
			m.cursor = wrap(m.cursor, -1, len(m.options))
		case keymap.CmdDown:
			m.cursor = wrap(m.cursor, 1, len(m.options))
		case keymap.CmdSubmit:
			m.done = true
			return m, tea.Quit
		case keymap.CmdCancel:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *SelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	start, end := visibleRange(len(m.options), m.cursor, m.listHeight())
	for i := start; i < end; i++ {
		var row string
		if i == m.cursor {
			row = m.styles.Cursor.Render("> ") + m.styles.ActiveItem.Render(m.options[i])
		} else {
			row = "  " + m.styles.Item.Render(m.options[i])
		}
		b.WriteString(m.fit(row))
		b.WriteString("\n")
	}
	return m.frame(m.title, strings.TrimSuffix(b.String(), "\n"), keymap.ModeSelect)
}

// Cursor returns the highlighted index.
func (m *SelectModel) Cursor() int {
	return m.cursor
}

// Result returns the chosen index, or ErrCancelled when the user backed out.
func (m *SelectModel) Result() (int, error) {
	if !m.done {
		return 0, errors.ErrCancelled
	}
	return m.cursor, nil
}
