package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/btrkeks/bookminer/internal/tui/keymap"
	"github.com/btrkeks/bookminer/internal/tui/styles"
)

// runner runs one prompt program. Terminal implements it.
type runner interface {
	Run(ctx context.Context, model tea.Model) (tea.Model, error)
}

// Prompter runs the prompts of a session on one terminal.
type Prompter struct {
	term   runner
	keymap *keymap.Keymap
	styles styles.Styles
	notice string
}

// NewPrompter returns a Prompter drawing with st on term.
func NewPrompter(term runner, st styles.Styles) *Prompter {
	return &Prompter{
		term:   term,
		keymap: keymap.DefaultKeymap(),
		styles: st,
	}
}

// Notify stores message for display by the next prompt.
func (p *Prompter) Notify(message string) {
	p.notice = message
}

// takeNotice returns the pending notice and clears it.
func (p *Prompter) takeNotice() string {
	n := p.notice
	p.notice = ""
	return n
}

// Select asks the user to choose one of options and returns its index.
func (p *Prompter) Select(ctx context.Context, title string, options []string) (int, error) {
	m, err := NewSelectModel(title, options, p.keymap, p.styles, p.notice)
	if err != nil {
		return 0, err
	}
	p.takeNotice()

	final, err := p.term.Run(ctx, m)
	if err != nil {
		return 0, err
	}
	sm, ok := final.(*SelectModel)
	if !ok {
		return 0, fmt.Errorf("unexpected model %T", final)
	}
	return sm.Result()
}

// PickTags lets the user choose tags from universe, with preselected
// checked. It returns the selection and the possibly edited universe.
func (p *Prompter) PickTags(ctx context.Context, universe, preselected []string) ([]string, []string, error) {
	m := NewTagPickerModel("Select tags", universe, preselected, p.keymap, p.styles, p.takeNotice())

	final, err := p.term.Run(ctx, m)
	if err != nil {
		return nil, nil, err
	}
	tm, ok := final.(*TagPickerModel)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected model %T", final)
	}
	return tm.Result()
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	m := NewConfirmModel(question, p.keymap, p.styles, p.takeNotice())

	final, err := p.term.Run(ctx, m)
	if err != nil {
		return false, err
	}
	cm, ok := final.(*ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model %T", final)
	}
	return cm.Result()
}
