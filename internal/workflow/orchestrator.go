package workflow

import (
	"context"
	"fmt"
	"slices"

	"github.com/btrkeks/bookminer/internal/anki"
	"github.com/btrkeks/bookminer/internal/content"
	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/journal"
	"github.com/btrkeks/bookminer/internal/logging"
	"github.com/btrkeks/bookminer/internal/note"
	"github.com/btrkeks/bookminer/internal/session"
)

// RetryQuestion is asked when the note service is not running.
const RetryQuestion = "Anki is not running. Do you want to retry?"

// Prompt titles.
const (
	titleMenu     = "Menu"
	titleSettings = "Choose the setting to change"
	titleDeck     = "Select Anki Deck"
	titleNoteType = "Select Anki Note Type"
)

// Workflow phases, as logged.
const (
	phaseEditing     = "editing"
	phaseTagging     = "tagging"
	phaseConfiguring = "configuring"
	phaseMenu        = "menu"
)

// Dependencies are the collaborators of an Orchestrator. Journal and Logger
// are optional.
type Dependencies struct {
	Prompter Prompter
	Editor   Editor
	Service  NoteService
	Configs  ConfigStore
	Tags     TagStore
	Journal  Journal
	Logger   *logging.Logger
}

// Orchestrator runs sessions. It holds no per-session state; everything a
// session changes lives in the session.State passed to Run.
type Orchestrator struct {
	prompter Prompter
	editor   Editor
	service  NoteService
	configs  ConfigStore
	tags     TagStore
	journal  Journal
	logger   *logging.Logger
}

// New returns an Orchestrator, or an error naming the first missing
// required collaborator.
func New(deps Dependencies) (*Orchestrator, error) {
	switch {
	case deps.Prompter == nil:
		return nil, fmt.Errorf("workflow: prompter is required")
	case deps.Editor == nil:
		return nil, fmt.Errorf("workflow: editor is required")
	case deps.Service == nil:
		return nil, fmt.Errorf("workflow: note service is required")
	case deps.Configs == nil:
		return nil, fmt.Errorf("workflow: config store is required")
	case deps.Tags == nil:
		return nil, fmt.Errorf("workflow: tag store is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Orchestrator{
		prompter: deps.Prompter,
		editor:   deps.Editor,
		service:  deps.Service,
		configs:  deps.Configs,
		tags:     deps.Tags,
		journal:  deps.Journal,
		logger:   logger,
	}, nil
}

// Run drives one session to completion. Backing out during startup ends the
// session without error. ErrRetryDeclined is returned when the user gives up
// on an unreachable note service; the caller must exit non-zero.
func (o *Orchestrator) Run(ctx context.Context, state *session.State) error {
	logger := o.logger.WithSession(state.ID)
	logger.Info("session started", "work_dir", state.WorkDir, "screenshot", state.ScreenshotPath != "")

	if err := o.startup(ctx, state, logger); err != nil {
		if errors.IsCancelled(err) {
			logger.Info("session cancelled during startup")
			return nil
		}
		logger.Error("session startup failed", "error", err.Error())
		return err
	}

	err := o.menuLoop(ctx, state, logger.WithPhase(phaseMenu))
	if err != nil {
		logger.Error("session failed", "error", err.Error(), "kind", errors.KindOf(err).String())
		return err
	}
	logger.Info("session finished")
	return nil
}

// startup runs editing, tagging and, without a usable cached configuration,
// configuring.
func (o *Orchestrator) startup(ctx context.Context, state *session.State, logger *logging.Logger) error {
	editing := logger.WithPhase(phaseEditing)
	for _, path := range []string{state.FrontPath(), state.BackPath()} {
		editing.Debug("editing fragment", "path", path)
		if err := o.editor.Edit(ctx, path); err != nil {
			return errors.Wrap(err, "editing card")
		}
	}

	if err := o.chooseTags(ctx, state, nil, logger.WithPhase(phaseTagging)); err != nil {
		if errors.KindOf(err) != errors.KindLocalIO {
			return err
		}
		// A broken tags file costs the tags, not the card.
		o.prompter.Notify(err.Error())
	}

	configuring := logger.WithPhase(phaseConfiguring)
	cfg := o.loadConfig(configuring)
	if cfg == nil {
		var err error
		if cfg, err = o.askConfig(ctx); err != nil {
			return err
		}
		state.Config = cfg
		if err := o.configs.Save(cfg); err != nil {
			configuring.Warn("saving note configuration failed", "error", err.Error())
			o.prompter.Notify(err.Error())
		}
		configuring.Info("note configuration assembled", "deck", cfg.DeckName, "note_type", cfg.NoteType)
		return nil
	}
	state.Config = cfg
	return nil
}

// loadConfig returns the cached configuration, or nil when there is none or
// it cannot be used.
func (o *Orchestrator) loadConfig(logger *logging.Logger) *note.Config {
	cfg, err := o.configs.Load()
	if err != nil {
		logger.Warn("cached note configuration unreadable, asking again", "error", err.Error())
		return nil
	}
	if cfg == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("cached note configuration invalid, asking again", "error", err.Error())
		return nil
	}
	return cfg
}

// chooseTags runs the tag picker seeded from the tag store and stores the
// selection in state. The possibly edited universe is saved whatever was
// selected.
func (o *Orchestrator) chooseTags(ctx context.Context, state *session.State, preselected []string, logger *logging.Logger) error {
	universe, err := o.tags.Load()
	if err != nil {
		return err
	}

	selected, universe, err := o.prompter.PickTags(ctx, universe, preselected)
	if err != nil {
		return err
	}
	state.Tags = selected
	logger.Debug("tags selected", "tags", selected, "universe", len(universe))

	if err := o.tags.Save(universe); err != nil {
		logger.Warn("saving tags failed", "error", err.Error())
		return err
	}
	return nil
}

// menuLoop presents the main menu until an action terminates the session.
func (o *Orchestrator) menuLoop(ctx context.Context, state *session.State, logger *logging.Logger) error {
	for {
		action := ActionCancel
		idx, err := o.prompter.Select(ctx, titleMenu, menuLabels())
		switch {
		case err == nil:
			action = MenuActions()[idx]
		case !errors.IsCancelled(err):
			return err
		}

		logger.Info("menu action selected", "action", action.String())
		err = o.perform(ctx, action, state)
		switch {
		case err == nil:
			if action.ShouldTerminate() {
				return nil
			}
		case errors.Is(err, errors.ErrRetryDeclined):
			return err
		case errors.IsCancelled(err):
			logger.Info("menu action cancelled", "action", action.String())
		case errors.IsActionLocal(err):
			logger.Warn("menu action aborted", "action", action.String(), "error", err.Error())
			o.prompter.Notify(fmt.Sprintf("%s failed: %v", action, err))
		default:
			return errors.Wrapf(err, "%s", action)
		}
	}
}

// perform dispatches one menu action.
func (o *Orchestrator) perform(ctx context.Context, action MenuAction, state *session.State) error {
	switch action {
	case ActionSendCard:
		return o.sendCard(ctx, state)
	case ActionEditFront:
		return o.editor.Edit(ctx, state.FrontPath())
	case ActionEditBack:
		return o.editor.Edit(ctx, state.BackPath())
	case ActionEditSettings:
		return o.editSettings(ctx, state)
	case ActionEditTags:
		return o.chooseTags(ctx, state, state.Tags, o.logger.WithSession(state.ID).WithPhase(phaseTagging))
	case ActionCancel:
		return nil
	default:
		return fmt.Errorf("unknown menu action %d", int(action))
	}
}

// sendCard resolves every field and submits the note. While the service is
// unreachable and the user agrees, the whole submission is attempted again.
func (o *Orchestrator) sendCard(ctx context.Context, state *session.State) error {
	if state.Config == nil {
		return errors.NewValidationError("no note configuration")
	}
	logger := o.logger.WithSession(state.ID).With("deck", state.Config.DeckName, "note_type", state.Config.NoteType)

	for attempt := 1; ; attempt++ {
		fields, err := content.ResolveFields(state.Config.FieldMapping, state)
		if err != nil {
			return err
		}

		n := anki.Note{
			DeckName:  state.Config.DeckName,
			ModelName: state.Config.NoteType,
			Fields:    fields,
			Tags:      slices.Clone(state.Tags),
		}
		id, err := o.service.SubmitNote(ctx, n, state.Attachments())
		o.record(ctx, state, attempt, id, err, logger)
		if err == nil {
			logger.Info("note submitted", "note_id", id, "attempt", attempt)
			return nil
		}
		if !errors.IsRetryable(err) {
			return err
		}

		logger.Warn("note service unreachable", "attempt", attempt)
		if err := o.confirmRetry(ctx); err != nil {
			return err
		}
	}
}

// confirmRetry asks whether to try the service again. A refusal is
// ErrRetryDeclined; a failing dialog returns its own error.
func (o *Orchestrator) confirmRetry(ctx context.Context) error {
	retry, err := o.prompter.Confirm(ctx, RetryQuestion)
	if err != nil {
		return err
	}
	if !retry {
		return errors.ErrRetryDeclined
	}
	return nil
}

// discover calls a discovery method, offering a retry while the service is
// unreachable.
func (o *Orchestrator) discover(ctx context.Context, call func(context.Context) ([]string, error)) ([]string, error) {
	for {
		names, err := call(ctx)
		if err == nil {
			return names, nil
		}
		if !errors.IsRetryable(err) {
			return nil, err
		}
		if err := o.confirmRetry(ctx); err != nil {
			return nil, err
		}
	}
}

// choose asks for one of the names returned by call.
func (o *Orchestrator) choose(ctx context.Context, title, what string, call func(context.Context) ([]string, error)) (string, error) {
	names, err := o.discover(ctx, call)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.NewValidationError(fmt.Sprintf("Anki has no %s", what))
	}
	idx, err := o.prompter.Select(ctx, title, names)
	if err != nil {
		return "", err
	}
	return names[idx], nil
}

func (o *Orchestrator) chooseDeck(ctx context.Context) (string, error) {
	return o.choose(ctx, titleDeck, "decks", o.service.DeckNames)
}

func (o *Orchestrator) chooseNoteType(ctx context.Context) (string, error) {
	return o.choose(ctx, titleNoteType, "note types", o.service.ModelNames)
}

// askMapping asks for the content kind of every field of noteType.
func (o *Orchestrator) askMapping(ctx context.Context, noteType string) ([]note.FieldBinding, error) {
	fields, err := o.discover(ctx, func(ctx context.Context) ([]string, error) {
		return o.service.ModelFieldNames(ctx, noteType)
	})
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.NewValidationError("note type has no fields").WithValue(noteType)
	}

	kinds := note.Kinds()
	labels := note.KindLabels()
	mapping := make([]note.FieldBinding, 0, len(fields))
	for _, field := range fields {
		idx, err := o.prompter.Select(ctx, "Choose the contents for the field "+field, labels)
		if err != nil {
			return nil, err
		}
		mapping = append(mapping, note.FieldBinding{Field: field, Kind: kinds[idx]})
	}
	return mapping, nil
}

// askConfig assembles a complete configuration from scratch.
func (o *Orchestrator) askConfig(ctx context.Context) (*note.Config, error) {
	deck, err := o.chooseDeck(ctx)
	if err != nil {
		return nil, err
	}
	noteType, err := o.chooseNoteType(ctx)
	if err != nil {
		return nil, err
	}
	mapping, err := o.askMapping(ctx, noteType)
	if err != nil {
		return nil, err
	}

	cfg := &note.Config{DeckName: deck, NoteType: noteType, FieldMapping: mapping}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// editSettings runs the settings menu on a copy of the configuration and
// saves the result when the menu is left.
func (o *Orchestrator) editSettings(ctx context.Context, state *session.State) error {
	if state.Config == nil {
		return errors.NewValidationError("no note configuration")
	}
	logger := o.logger.WithSession(state.ID).WithPhase(phaseConfiguring)
	cfg := state.Config.Clone()

	// Decks and note types created in Anki since startup must show up here.
	o.service.InvalidateDiscovery()

	for done := false; !done; {
		idx, err := o.prompter.Select(ctx, titleSettings, settingsLabels)
		if err != nil {
			if !errors.IsCancelled(err) {
				return err
			}
			idx = int(settingDone)
		}

		switch settingsItem(idx) {
		case settingDeck:
			err = o.editDeck(ctx, cfg)
		case settingNoteType:
			err = o.editNoteType(ctx, cfg, logger)
		case settingMapping:
			err = o.editMapping(ctx, cfg)
		default:
			done = true
		}
		if err != nil && !errors.IsCancelled(err) {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	state.Config = cfg
	if err := o.configs.Save(cfg); err != nil {
		return err
	}
	logger.Info("note configuration saved", "deck", cfg.DeckName, "note_type", cfg.NoteType)
	return nil
}

func (o *Orchestrator) editDeck(ctx context.Context, cfg *note.Config) error {
	deck, err := o.chooseDeck(ctx)
	if err != nil {
		return err
	}
	cfg.DeckName = deck
	return nil
}

// editNoteType changes the note type. A different note type takes a new
// field mapping; the same one keeps the current mapping.
func (o *Orchestrator) editNoteType(ctx context.Context, cfg *note.Config, logger *logging.Logger) error {
	noteType, err := o.chooseNoteType(ctx)
	if err != nil {
		return err
	}
	if noteType == cfg.NoteType {
		return nil
	}

	logger.Info("note type changed, remapping fields", "from", cfg.NoteType, "to", noteType)
	mapping, err := o.askMapping(ctx, noteType)
	if err != nil {
		return err
	}
	cfg.NoteType = noteType
	cfg.FieldMapping = mapping
	return nil
}

func (o *Orchestrator) editMapping(ctx context.Context, cfg *note.Config) error {
	mapping, err := o.askMapping(ctx, cfg.NoteType)
	if err != nil {
		return err
	}
	cfg.FieldMapping = mapping
	return nil
}

// record writes one submission attempt to the journal. Journal failures are
// logged and otherwise ignored.
func (o *Orchestrator) record(ctx context.Context, state *session.State, attempt int, noteID int64, submitErr error, logger *logging.Logger) {
	if o.journal == nil {
		return
	}

	entry := journal.Entry{
		SessionID: state.ID,
		Attempt:   attempt,
		Outcome:   outcomeOf(submitErr),
		NoteID:    noteID,
		DeckName:  state.Config.DeckName,
		NoteType:  state.Config.NoteType,
		Tags:      state.Tags,
	}
	if submitErr != nil {
		entry.NoteID = 0
		entry.Message = submitErr.Error()
	}
	if err := o.journal.Record(ctx, entry); err != nil {
		logger.Warn("recording submission failed", "error", err.Error())
	}
}

func outcomeOf(err error) journal.Outcome {
	if err == nil {
		return journal.OutcomeSubmitted
	}
	switch errors.KindOf(err) {
	case errors.KindUnreachable:
		return journal.OutcomeUnreachable
	case errors.KindApplicationRejected:
		return journal.OutcomeRejected
	default:
		return journal.OutcomeFailed
	}
}
