package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/logging"
)

// ErrTerminalBusy is returned when the terminal is requested while a prompt
// still holds it.
var ErrTerminalBusy = errors.New("terminal is in use by a prompt")

// Terminal serializes access to the controlling terminal.
type Terminal struct {
	mu        sync.Mutex
	active    bool
	altScreen bool
	input     io.Reader
	output    io.Writer
	logger    *logging.Logger
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithAltScreen runs prompts on the alternate screen buffer.
func WithAltScreen(enabled bool) TerminalOption {
	return func(t *Terminal) {
		t.altScreen = enabled
	}
}

// WithIO replaces standard input and output.
func WithIO(in io.Reader, out io.Writer) TerminalOption {
	return func(t *Terminal) {
		t.input = in
		t.output = out
	}
}

// WithTerminalLogger sets the logger.
func WithTerminalLogger(logger *logging.Logger) TerminalOption {
	return func(t *Terminal) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTerminal returns a Terminal bound to the process's standard streams.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		input:  os.Stdin,
		output: os.Stdout,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) acquire() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return ErrTerminalBusy
	}
	t.active = true
	return nil
}

func (t *Terminal) release() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// Active reports whether a prompt currently holds the terminal.
func (t *Terminal) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Run runs model in its own program and returns the final model. The
// terminal is restored before Run returns, including when the model panics.
// Cancelling ctx ends the program with ErrCancelled.
func (t *Terminal) Run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if err := t.acquire(); err != nil {
		return nil, err
	}
	defer t.release()

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
	}
	if t.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if ctx.Err() != nil {
		return final, errors.Wrap(errors.ErrCancelled, ctx.Err().Error())
	}
	if err != nil {
		return final, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// Exec runs cmd in the foreground with the terminal's streams attached and
// waits for it to exit. It refuses to start while a prompt holds the
// terminal.
func (t *Terminal) Exec(ctx context.Context, cmd *exec.Cmd) error {
	if err := t.acquire(); err != nil {
		return err
	}
	defer t.release()

	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCancelled, err.Error())
	}
	if cmd.Stdin == nil {
		cmd.Stdin = t.input
	}
	if cmd.Stdout == nil {
		cmd.Stdout = t.output
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	t.logger.Debug("running external process", "path", cmd.Path, "args", cmd.Args[1:])
	return cmd.Run()
}
