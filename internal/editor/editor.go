// Package editor runs the external programs a session hands the terminal to:
// the text editor for card fragments, and the terminal emulator that hosts a
// whole session.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/logging"
)

// Runner runs a foreground process on the controlling terminal.
// tui.Terminal implements it.
type Runner interface {
	Exec(ctx context.Context, cmd *exec.Cmd) error
}

// Editor opens files in the user's editor.
type Editor struct {
	command []string
	runner  Runner
	logger  *logging.Logger
}

// New returns an Editor running command, which may carry arguments
// ("code --wait"). A nil logger discards output.
func New(command string, runner Runner, logger *logging.Logger) (*Editor, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.NewValidationError("editor command is empty").
			WithField("editor.command")
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Editor{command: fields, runner: runner, logger: logger}, nil
}

// Edit creates path if it does not exist and blocks until the editor exits.
// The editor's exit status is not inspected; only a failure to start it is
// an error.
func (e *Editor) Edit(ctx context.Context, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.NewLocalIOError("create", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewLocalIOError("create", path, err)
	}

	args := append(append([]string{}, e.command[1:]...), path)
	cmd := exec.CommandContext(ctx, e.command[0], args...)

	e.logger.Debug("opening editor", "editor", e.command[0], "path", path)
	err = e.runner.Exec(ctx, cmd)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		e.logger.Warn("editor exited with non-zero status", "path", path, "code", exitErr.ExitCode())
		return nil
	case errors.IsCancelled(err):
		return err
	default:
		return errors.NewLocalIOError("start editor "+e.command[0], path, err)
	}
}
