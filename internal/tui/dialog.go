package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/tui/keymap"
	"github.com/btrkeks/bookminer/internal/tui/styles"
)

// ConfirmModel is a yes/no dialog. Yes is preselected.
type ConfirmModel struct {
	chrome
	question string
	yes      bool

	done      bool
	cancelled bool
}

// NewConfirmModel creates a dialog asking question.
func NewConfirmModel(question string, km *keymap.Keymap, st styles.Styles, notice string) *ConfirmModel {
	return &ConfirmModel{
		chrome:   newChrome(km, st, notice),
		question: question,
		yes:      true,
	}
}

// Init implements tea.Model.
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	cmd, ok := m.keymap.GetBinding(key, keymap.ModeConfirm)
	if !ok {
		return m, nil
	}

	switch cmd {
	case keymap.CmdSwitch:
		m.yes = !m.yes
		return m, nil
	case keymap.CmdYes:
		m.yes = true
	case keymap.CmdNo:
		m.yes = false
	case keymap.CmdSubmit:
	case keymap.CmdCancel:
		m.cancelled = true
		return m, tea.Quit
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m *ConfirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	yes, no := m.styles.ButtonInactive, m.styles.ButtonInactive
	if m.yes {
		yes = m.styles.ButtonActive
	} else {
		no = m.styles.ButtonActive
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), " ", no.Render("No"))
	body := m.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, m.question, "", buttons))
	return m.frame("", body, keymap.ModeConfirm)
}

// Result returns the answer, or ErrCancelled when the user interrupted.
func (m *ConfirmModel) Result() (bool, error) {
	if !m.done {
		return false, errors.ErrCancelled
	}
	return m.yes, nil
}
