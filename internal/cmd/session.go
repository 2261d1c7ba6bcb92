package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/btrkeks/bookminer/internal/editor"
	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/journal"
	"github.com/btrkeks/bookminer/internal/session"
	"github.com/btrkeks/bookminer/internal/store"
	"github.com/btrkeks/bookminer/internal/tui"
	"github.com/btrkeks/bookminer/internal/tui/styles"
	"github.com/btrkeks/bookminer/internal/workflow"
)

// runSession runs one interactive session in the current terminal.
func runSession(cmd *cobra.Command, f sessionFlags) error {
	if f.tmpDir == "" {
		return errors.NewValidationError("--tmp-dir is required with --main").WithField("tmp-dir")
	}
	if info, err := os.Stat(f.tmpDir); err != nil || !info.IsDir() {
		return errors.NewValidationError("working directory does not exist").
			WithField("tmp-dir").WithValue(f.tmpDir)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("bookminer --main needs an interactive terminal")
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	// Resolve the editor before any prompt is drawn.
	editorCmd, err := env.cfg.EditorCommand()
	if err != nil {
		return err
	}
	st, err := styles.Load(env.cfg.TUI.ThemeFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	terminal := tui.NewTerminal(
		tui.WithAltScreen(env.cfg.TUI.AltScreen),
		tui.WithTerminalLogger(env.logger),
	)
	ed, err := editor.New(editorCmd, terminal, env.logger)
	if err != nil {
		return err
	}

	deps := workflow.Dependencies{
		Prompter: tui.NewPrompter(terminal, st),
		Editor:   ed,
		Service:  env.ankiClient(),
		Configs:  store.NewConfigStore(env.layout.LastSelection()),
		Tags:     store.NewTagStore(env.layout.Tags()),
		Logger:   env.logger,
	}
	if j := openJournal(ctx, env); j != nil {
		defer j.Close()
		deps.Journal = j
	}

	orch, err := workflow.New(deps)
	if err != nil {
		return err
	}
	return orch.Run(ctx, newState(cmd, f))
}

// openJournal returns nil when the journal cannot be opened. History is
// never a reason to lose a card.
func openJournal(ctx context.Context, env *environment) *journal.Journal {
	j, err := journal.Open(ctx, env.layout.Journal())
	if err != nil {
		env.logger.Warn("journal unavailable", "path", env.layout.Journal(), "error", err.Error())
		return nil
	}
	return j
}

func newState(cmd *cobra.Command, f sessionFlags) *session.State {
	state := session.New(f.tmpDir)
	state.ScreenshotPath = f.screenshotPath
	state.SourceFilename = f.bookFilename
	if cmd.Flags().Changed("page-number") {
		page := f.pageNumber
		state.PageNumber = &page
	}
	return state
}
