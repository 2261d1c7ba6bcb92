package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/tui/keymap"
	"github.com/btrkeks/bookminer/internal/tui/styles"
)

// tagItem is one row of the picker.
type tagItem struct {
	label    string
	selected bool
}

// TagPickerModel is a multi-select list of tags with a text entry mode for
// new tags. The result keeps list order.
type TagPickerModel struct {
	chrome
	title  string
	items  []tagItem
	cursor int
	mode   keymap.Mode
	input  textinput.Model

	done      bool
	cancelled bool
}

// NewTagPickerModel creates a picker over universe. Tags in preselected start
// selected; preselected tags missing from universe are appended.
func NewTagPickerModel(title string, universe, preselected []string, km *keymap.Keymap, st styles.Styles, notice string) *TagPickerModel {
	input := textinput.New()
	input.Placeholder = "new tag"
	input.Prompt = "+ "
	input.CharLimit = 128

	m := &TagPickerModel{
		chrome: newChrome(km, st, notice),
		title:  title,
		mode:   keymap.ModeTagBrowse,
		input:  input,
	}
	for _, label := range universe {
		if m.indexOf(label) < 0 {
			m.items = append(m.items, tagItem{label: label, selected: slices.Contains(preselected, label)})
		}
	}
	for _, label := range preselected {
		if m.indexOf(label) < 0 {
			m.items = append(m.items, tagItem{label: label, selected: true})
		}
	}
	return m
}

func (m *TagPickerModel) indexOf(label string) int {
	return slices.IndexFunc(m.items, func(it tagItem) bool { return it.label == label })
}

// Init implements tea.Model.
func (m *TagPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *TagPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.mode == keymap.ModeTagEntry {
			return m.updateEntry(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == keymap.ModeTagEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TagPickerModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.GetBinding(msg, keymap.ModeTagBrowse)
	if !ok {
		return m, nil
	}

	n := len(m.items)
	switch cmd {
	case keymap.CmdUp:
		m.cursor = wrap(m.cursor, -1, n)
	case keymap.CmdDown:
		m.cursor = wrap(m.cursor, 1, n)
	case keymap.CmdFirst:
		m.cursor = 0
	case keymap.CmdLast:
		m.cursor = max(n-1, 0)
	case keymap.CmdToggle:
		if n > 0 {
			m.items[m.cursor].selected = !m.items[m.cursor].selected
			m.cursor = wrap(m.cursor, 1, n)
		}
	case keymap.CmdDelete:
		if n > 0 {
			m.items = slices.Delete(m.items, m.cursor, m.cursor+1)
			m.cursor = min(m.cursor, max(len(m.items)-1, 0))
		}
	case keymap.CmdEnterEntry:
		m.mode = keymap.ModeTagEntry
		m.input.Reset()
		return m, m.input.Focus()
	case keymap.CmdSubmit:
		m.done = true
		return m, tea.Quit
	case keymap.CmdCancel:
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *TagPickerModel) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.GetBinding(msg, keymap.ModeTagEntry)
	if !ok {
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		return m, inputCmd
	}

	switch cmd {
	case keymap.CmdAddTag:
		m.add(m.input.Value())
		m.leaveEntry()
	case keymap.CmdDiscard:
		m.leaveEntry()
	case keymap.CmdCancel:
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// add appends label as a selected item. An existing label is selected
// instead of duplicated. The highlight stays where it is.
func (m *TagPickerModel) add(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	if i := m.indexOf(label); i >= 0 {
		m.items[i].selected = true
		return
	}
	m.items = append(m.items, tagItem{label: label, selected: true})
}

func (m *TagPickerModel) leaveEntry() {
	m.mode = keymap.ModeTagBrowse
	m.input.Reset()
	m.input.Blur()
}

// View implements tea.Model.
func (m *TagPickerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	if len(m.items) == 0 {
		b.WriteString(m.styles.Empty.Render("No tags yet. Press i to add one."))
		b.WriteString("\n")
	}
	start, end := visibleRange(len(m.items), m.cursor, m.listHeight())
	for i := start; i < end; i++ {
		it := m.items[i]
		var row strings.Builder
		if i == m.cursor && m.mode == keymap.ModeTagBrowse {
			row.WriteString(m.styles.Cursor.Render("> "))
		} else {
			row.WriteString("  ")
		}
		if it.selected {
			row.WriteString(m.styles.Checked.Render("[x] "))
		} else {
			row.WriteString(m.styles.Unchecked.Render("[ ] "))
		}
		label := m.styles.Item
		if i == m.cursor {
			label = m.styles.ActiveItem
		}
		row.WriteString(label.Render(it.label))
		b.WriteString(m.fit(row.String()))
		b.WriteString("\n")
	}
	if m.mode == keymap.ModeTagEntry {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	return m.frame(m.title, strings.TrimSuffix(b.String(), "\n"), m.mode)
}

// Mode returns the current input mode.
func (m *TagPickerModel) Mode() keymap.Mode {
	return m.mode
}

// Cursor returns the highlighted index.
func (m *TagPickerModel) Cursor() int {
	return m.cursor
}

// Selected returns the selected labels in list order.
func (m *TagPickerModel) Selected() []string {
	selected := []string{}
	for _, it := range m.items {
		if it.selected {
			selected = append(selected, it.label)
		}
	}
	return selected
}

// Universe returns every label in list order, selected or not.
func (m *TagPickerModel) Universe() []string {
	all := make([]string, len(m.items))
	for i, it := range m.items {
		all[i] = it.label
	}
	return all
}

// Result returns the selection and the full tag list, or ErrCancelled when
// the user backed out.
func (m *TagPickerModel) Result() ([]string, []string, error) {
	if !m.done {
		return nil, nil, errors.ErrCancelled
	}
	return m.Selected(), m.Universe(), nil
}
