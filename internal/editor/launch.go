package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/btrkeks/bookminer/internal/errors"
)

// TerminalLauncher starts a session inside a new terminal emulator window.
type TerminalLauncher struct {
	command []string
	args    []string
}

// NewTerminalLauncher returns a launcher for command (which may carry
// arguments) with extra args placed before the -e flag.
func NewTerminalLauncher(command string, args []string) (*TerminalLauncher, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.NewValidationError("terminal command is empty").
			WithField("terminal.command")
	}
	return &TerminalLauncher{command: fields, args: args}, nil
}

// Command builds the process that runs argv in a new terminal window.
func (l *TerminalLauncher) Command(ctx context.Context, argv []string) *exec.Cmd {
	args := make([]string, 0, len(l.command)+len(l.args)+len(argv))
	args = append(args, l.command[1:]...)
	args = append(args, l.args...)
	args = append(args, "-e")
	args = append(args, argv...)
	return exec.CommandContext(ctx, l.command[0], args...)
}

// Launch runs argv in a new terminal window and waits for the window to
// close. A non-zero exit of the terminal is reported as an error.
func (l *TerminalLauncher) Launch(ctx context.Context, argv []string) error {
	cmd := l.Command(ctx, argv)
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return fmt.Errorf("terminal session exited with status %d", exitErr.ExitCode())
	default:
		return errors.NewLocalIOError("launch terminal", l.command[0], err)
	}
}
