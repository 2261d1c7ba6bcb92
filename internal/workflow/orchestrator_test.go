package workflow

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/btrkeks/bookminer/internal/content"
	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/journal"
	"github.com/btrkeks/bookminer/internal/note"
	"github.com/btrkeks/bookminer/internal/session"
)

// Menu indexes.
const (
	menuSend     = 0
	menuFront    = 1
	menuBack     = 2
	menuSettings = 3
	menuTags     = 4
	menuCancel   = 5
)

// Content kind indexes in the field prompt.
const (
	pickEmpty      = 0
	pickFront      = 1
	pickBack       = 2
	pickScreenshot = 3
)

type harness struct {
	prompter *fakePrompter
	editor   *fakeEditor
	service  *fakeService
	configs  *fakeConfigStore
	tags     *fakeTagStore
	journal  *fakeJournal
	state    *session.State
	orch     *Orchestrator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		prompter: &fakePrompter{t: t},
		editor: &fakeEditor{contents: map[string]string{
			session.FrontFile: "What is <b>?",
			session.BackFile:  "a & b",
		}},
		service: &fakeService{
			decks:  []string{"Default", "Books"},
			models: []string{"Basic", "Cloze"},
			fields: map[string][]string{
				"Basic": {"Front", "Back"},
				"Cloze": {"Text", "Extra", "Image"},
			},
		},
		configs: &fakeConfigStore{},
		tags:    &fakeTagStore{tags: []string{"math", "physics"}},
		journal: &fakeJournal{},
		state:   session.New(t.TempDir()),
	}
	orch, err := New(Dependencies{
		Prompter: h.prompter,
		Editor:   h.editor,
		Service:  h.service,
		Configs:  h.configs,
		Tags:     h.tags,
		Journal:  h.journal,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.orch = orch
	return h
}

func basicConfig() *note.Config {
	return &note.Config{
		DeckName: "Books",
		NoteType: "Basic",
		FieldMapping: []note.FieldBinding{
			{Field: "Front", Kind: note.KindFront},
			{Field: "Back", Kind: note.KindBack},
		},
	}
}

// withCachedConfig scripts a session that starts with a cached config and
// a tag pick of "math".
func (h *harness) withCachedConfig() *harness {
	h.configs.cfg = basicConfig()
	h.prompter.picks = []pickReply{{selected: []string{"math"}, universe: []string{"math", "physics"}}}
	return h
}

func (h *harness) menu(choices ...int) {
	for _, c := range choices {
		h.prompter.selects = append(h.prompter.selects, selectReply{idx: c})
	}
}

func (h *harness) run(t *testing.T) error {
	t.Helper()
	return h.orch.Run(context.Background(), h.state)
}

func unreachable(action string) error {
	return errors.NewServiceError(action, errors.KindUnreachable, errors.New("connection refused"))
}

func TestNew_RequiresCollaborators(t *testing.T) {
	full := Dependencies{
		Prompter: &fakePrompter{},
		Editor:   &fakeEditor{},
		Service:  &fakeService{},
		Configs:  &fakeConfigStore{},
		Tags:     &fakeTagStore{},
	}
	if _, err := New(full); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Dependencies)
	}{
		{"prompter", func(d *Dependencies) { d.Prompter = nil }},
		{"editor", func(d *Dependencies) { d.Editor = nil }},
		{"service", func(d *Dependencies) { d.Service = nil }},
		{"configs", func(d *Dependencies) { d.Configs = nil }},
		{"tags", func(d *Dependencies) { d.Tags = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := full
			tt.modify(&deps)
			if _, err := New(deps); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestRun_FirstSessionAssemblesConfigAndSends(t *testing.T) {
	h := newHarness(t)
	h.prompter.picks = []pickReply{{selected: []string{"physics", "new"}, universe: []string{"math", "physics", "new"}}}
	h.menu(
		1,         // deck: Books
		0,         // note type: Basic
		pickFront, // Front
		pickBack,  // Back
		menuSend,
	)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := []string{session.FrontFile, session.BackFile}; !reflect.DeepEqual(h.editor.calls, want) {
		t.Errorf("editor calls = %v, want %v", h.editor.calls, want)
	}
	wantTitles := []string{
		"Select Anki Deck",
		"Select Anki Note Type",
		"Choose the contents for the field Front",
		"Choose the contents for the field Back",
		"Menu",
	}
	if !reflect.DeepEqual(h.prompter.titles, wantTitles) {
		t.Errorf("prompts = %v, want %v", h.prompter.titles, wantTitles)
	}

	if len(h.configs.saved) != 1 {
		t.Fatalf("config saved %d times, want 1", len(h.configs.saved))
	}
	if !reflect.DeepEqual(h.configs.saved[0], basicConfig()) {
		t.Errorf("saved config = %+v", h.configs.saved[0])
	}
	if want := [][]string{{"math", "physics", "new"}}; !reflect.DeepEqual(h.tags.saved, want) {
		t.Errorf("saved tags = %v, want %v", h.tags.saved, want)
	}

	if len(h.service.submissions) != 1 {
		t.Fatalf("submissions = %d, want 1", len(h.service.submissions))
	}
	n := h.service.submissions[0].note
	if n.DeckName != "Books" || n.ModelName != "Basic" {
		t.Errorf("note deck/model = %q/%q", n.DeckName, n.ModelName)
	}
	wantFields := map[string]string{
		"Front": "[latex]What is &lt;b&gt;?[/latex]",
		"Back":  "[latex]a &amp; b[/latex]",
	}
	if !reflect.DeepEqual(n.Fields, wantFields) {
		t.Errorf("fields = %v, want %v", n.Fields, wantFields)
	}
	if want := []string{"physics", "new"}; !reflect.DeepEqual(n.Tags, want) {
		t.Errorf("tags = %v, want %v", n.Tags, want)
	}

	if len(h.journal.entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(h.journal.entries))
	}
	e := h.journal.entries[0]
	if e.Outcome != journal.OutcomeSubmitted || e.NoteID == 0 || e.Attempt != 1 || e.SessionID != h.state.ID {
		t.Errorf("journal entry = %+v", e)
	}
}

func TestRun_FieldMappingMatchesResolver(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}

	front, err := content.Resolve(note.KindFront, h.state)
	if err != nil {
		t.Fatal(err)
	}
	back, err := content.Resolve(note.KindBack, h.state)
	if err != nil {
		t.Fatal(err)
	}
	got := h.service.submissions[0].note.Fields
	if got["Front"] != front || got["Back"] != back {
		t.Errorf("fields = %v, want Front=%q Back=%q", got, front, back)
	}
}

func TestRun_CachedConfigSkipsConfiguring(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if want := []string{"Menu"}; !reflect.DeepEqual(h.prompter.titles, want) {
		t.Errorf("prompts = %v, want %v", h.prompter.titles, want)
	}
	if len(h.configs.saved) != 0 {
		t.Error("a cached config should not be saved again")
	}
	if !reflect.DeepEqual(h.state.Tags, []string{"math"}) {
		t.Errorf("state tags = %v", h.state.Tags)
	}
}

func TestRun_InvalidCachedConfigIsAskedAgain(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.configs.cfg.FieldMapping = nil
	h.menu(0, 0, pickFront, pickEmpty, menuCancel)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if len(h.configs.saved) != 1 {
		t.Fatalf("config saved %d times, want 1", len(h.configs.saved))
	}
	if h.configs.saved[0].DeckName != "Default" {
		t.Errorf("saved deck = %q", h.configs.saved[0].DeckName)
	}
}

func TestRun_UnreadableCachedConfigIsAskedAgain(t *testing.T) {
	h := newHarness(t)
	h.configs.loadErr = errors.NewValidationError("cached note configuration is malformed")
	h.prompter.picks = []pickReply{{}}
	h.menu(0, 0, pickFront, pickBack, menuCancel)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if len(h.configs.saved) != 1 {
		t.Errorf("config saved %d times, want 1", len(h.configs.saved))
	}
}

func TestRun_SendWithScreenshot(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.configs.cfg.FieldMapping = append(h.configs.cfg.FieldMapping, note.FieldBinding{Field: "Image", Kind: note.KindScreenshot})
	h.state.ScreenshotPath = h.state.WorkDir + "/screenshot_20240101_120000.png"
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	sub := h.service.submissions[0]
	if want := []string{h.state.ScreenshotPath}; !reflect.DeepEqual(sub.attachments, want) {
		t.Errorf("attachments = %v, want %v", sub.attachments, want)
	}
	if got := sub.note.Fields["Image"]; got != `<img src="screenshot_20240101_120000.png">` {
		t.Errorf("Image field = %q", got)
	}
}

func TestRun_RetryYesResubmitsEverything(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.state.ScreenshotPath = h.state.WorkDir + "/shot.png"
	h.service.submitErr = []error{unreachable("addNote"), nil}
	h.prompter.confirms = []confirmReply{{
		yes: true,
		before: func() {
			if err := os.WriteFile(h.state.FrontPath(), []byte("edited"), 0o644); err != nil {
				t.Fatal(err)
			}
		},
	}}
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(h.service.submissions) != 2 {
		t.Fatalf("submissions = %d, want exactly 2", len(h.service.submissions))
	}
	if got := h.service.submissions[1].note.Fields["Front"]; got != "[latex]edited[/latex]" {
		t.Errorf("retry should re-resolve fields, Front = %q", got)
	}
	for i, sub := range h.service.submissions {
		if len(sub.attachments) != 1 {
			t.Errorf("submission %d attachments = %v, want the screenshot", i, sub.attachments)
		}
	}
	if want := []string{RetryQuestion}; !reflect.DeepEqual(h.prompter.questions, want) {
		t.Errorf("questions = %v, want %v", h.prompter.questions, want)
	}

	if len(h.journal.entries) != 2 {
		t.Fatalf("journal entries = %d, want 2", len(h.journal.entries))
	}
	if h.journal.entries[0].Outcome != journal.OutcomeUnreachable || h.journal.entries[0].NoteID != 0 {
		t.Errorf("first entry = %+v", h.journal.entries[0])
	}
	if h.journal.entries[1].Outcome != journal.OutcomeSubmitted || h.journal.entries[1].Attempt != 2 {
		t.Errorf("second entry = %+v", h.journal.entries[1])
	}
}

func TestRun_RetryNoEndsSession(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.service.submitErr = []error{unreachable("addNote")}
	h.prompter.confirms = []confirmReply{{yes: false}}
	h.menu(menuSend)

	err := h.run(t)
	if !errors.Is(err, errors.ErrRetryDeclined) {
		t.Fatalf("Run() error = %v, want ErrRetryDeclined", err)
	}
	if len(h.service.submissions) != 1 {
		t.Errorf("submissions = %d, want 1", len(h.service.submissions))
	}
	if len(h.prompter.titles) != 1 {
		t.Errorf("menu should not be shown again, prompts = %v", h.prompter.titles)
	}
}

func TestRun_RetryRepeatsWhileUnreachable(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.service.submitErr = []error{unreachable("storeMediaFile"), unreachable("addNote"), nil}
	h.prompter.confirms = []confirmReply{{yes: true}, {yes: true}}
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if len(h.service.submissions) != 3 {
		t.Errorf("submissions = %d, want 3", len(h.service.submissions))
	}
}

func TestRun_DialogFailurePropagates(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.service.submitErr = []error{unreachable("addNote")}
	dialogErr := errors.New("terminal lost")
	h.prompter.confirms = []confirmReply{{err: dialogErr}}
	h.menu(menuSend)

	err := h.run(t)
	if !errors.Is(err, dialogErr) {
		t.Fatalf("Run() error = %v, want the dialog error", err)
	}
	if len(h.service.submissions) != 1 {
		t.Errorf("submissions = %d, want 1", len(h.service.submissions))
	}
}

func TestRun_DialogCancelReturnsToMenu(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.service.submitErr = []error{unreachable("addNote")}
	h.prompter.confirms = []confirmReply{{err: errors.ErrCancelled}}
	h.menu(menuSend, menuCancel)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.prompter.titles) != 2 {
		t.Errorf("prompts = %v, want the menu twice", h.prompter.titles)
	}
}

func TestRun_RejectedIsNotRetried(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	rejected := errors.NewServiceError("addNote", errors.KindApplicationRejected, nil).
		WithMessage("cannot create note because it is a duplicate")
	h.service.submitErr = []error{rejected}
	h.menu(menuSend)

	err := h.run(t)
	if errors.KindOf(err) != errors.KindApplicationRejected {
		t.Fatalf("Run() error = %v, want rejected", err)
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should carry the service message verbatim: %v", err)
	}
	if len(h.prompter.questions) != 0 {
		t.Error("rejections must not offer a retry")
	}
	if h.journal.entries[0].Outcome != journal.OutcomeRejected {
		t.Errorf("journal outcome = %s", h.journal.entries[0].Outcome)
	}
}

func TestRun_LocalFailureReturnsToMenu(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	delete(h.editor.contents, session.FrontFile)
	h.menu(menuSend, menuCancel)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.service.submissions) != 0 {
		t.Error("nothing should be submitted when a fragment is missing")
	}
	if len(h.prompter.notices) != 1 || !strings.Contains(h.prompter.notices[0], session.FrontFile) {
		t.Errorf("notices = %v, want one naming %s", h.prompter.notices, session.FrontFile)
	}
}

func TestRun_InvalidAttachmentReturnsToMenu(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.service.submitErr = []error{errors.NewValidationError("attachment filename is unusable")}
	h.menu(menuSend, menuSend)
	h.prompter.confirms = nil

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.service.submissions) != 2 {
		t.Errorf("submissions = %d, want 2", len(h.service.submissions))
	}
	if len(h.prompter.notices) != 1 {
		t.Errorf("notices = %v", h.prompter.notices)
	}
}

func TestRun_JournalFailureDoesNotBlock(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.journal.err = errors.New("disk full")
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.service.submissions) != 1 {
		t.Errorf("submissions = %d", len(h.service.submissions))
	}
}

func TestRun_WithoutJournal(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.orch.journal = nil
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRun_CancelEndsSession(t *testing.T) {
	t.Run("cancel action", func(t *testing.T) {
		h := newHarness(t).withCachedConfig()
		h.menu(menuCancel)
		if err := h.run(t); err != nil {
			t.Fatal(err)
		}
		if len(h.service.submissions) != 0 {
			t.Error("cancel must not submit")
		}
	})

	t.Run("backing out of the menu", func(t *testing.T) {
		h := newHarness(t).withCachedConfig()
		h.prompter.selects = []selectReply{{err: errors.ErrCancelled}}
		if err := h.run(t); err != nil {
			t.Fatal(err)
		}
	})
}

func TestRun_EditActionsLoop(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(menuFront, menuBack, menuFront, menuCancel)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	want := []string{session.FrontFile, session.BackFile, session.FrontFile, session.BackFile, session.FrontFile}
	if !reflect.DeepEqual(h.editor.calls, want) {
		t.Errorf("editor calls = %v, want %v", h.editor.calls, want)
	}
	if len(h.prompter.titles) != 4 {
		t.Errorf("menu shown %d times, want 4", len(h.prompter.titles))
	}
}

func TestRun_StartupCancelEndsCleanly(t *testing.T) {
	t.Run("editor", func(t *testing.T) {
		h := newHarness(t).withCachedConfig()
		h.editor.errs = map[string]error{session.FrontFile: errors.ErrCancelled}
		if err := h.run(t); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(h.prompter.pickArgs) != 0 {
			t.Error("tag picker should not run")
		}
	})

	t.Run("tag picker", func(t *testing.T) {
		h := newHarness(t)
		h.prompter.picks = []pickReply{{err: errors.ErrCancelled}}
		if err := h.run(t); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(h.tags.saved) != 0 {
			t.Error("tags should not be saved when the picker is cancelled")
		}
	})

	t.Run("configuring", func(t *testing.T) {
		h := newHarness(t)
		h.prompter.picks = []pickReply{{}}
		h.prompter.selects = []selectReply{{idx: 0}, {err: errors.ErrCancelled}}
		if err := h.run(t); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(h.configs.saved) != 0 {
			t.Error("an incomplete config must not be saved")
		}
	})
}

func TestRun_StartupEditorFailureIsFatal(t *testing.T) {
	h := newHarness(t)
	h.editor.errs = map[string]error{session.BackFile: errors.NewLocalIOError("start editor vim", "back.tex", errors.New("not found"))}

	err := h.run(t)
	if errors.KindOf(err) != errors.KindLocalIO {
		t.Fatalf("Run() error = %v, want local I/O", err)
	}
}

func TestRun_TagSaveFailureIsNotFatal(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.tags.saveErr = errors.NewLocalIOError("write", "/data/tags", errors.New("read-only file system"))
	h.menu(menuSend)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(h.state.Tags, []string{"math"}) {
		t.Errorf("selection should survive, tags = %v", h.state.Tags)
	}
	if len(h.prompter.notices) != 1 {
		t.Errorf("notices = %v", h.prompter.notices)
	}
}

func TestRun_EditTags(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.prompter.picks = append(h.prompter.picks, pickReply{
		selected: []string{"physics"},
		universe: []string{"physics"},
	})
	h.menu(menuTags, menuSend)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if len(h.prompter.pickArgs) != 2 {
		t.Fatalf("picker ran %d times, want 2", len(h.prompter.pickArgs))
	}
	second := h.prompter.pickArgs[1]
	if !reflect.DeepEqual(second[0], []string{"math", "physics"}) {
		t.Errorf("universe = %v", second[0])
	}
	if !reflect.DeepEqual(second[1], []string{"math"}) {
		t.Errorf("preselected = %v, want the current selection", second[1])
	}
	if got := h.service.submissions[0].note.Tags; !reflect.DeepEqual(got, []string{"physics"}) {
		t.Errorf("submitted tags = %v", got)
	}
	if got := h.tags.saved[len(h.tags.saved)-1]; !reflect.DeepEqual(got, []string{"physics"}) {
		t.Errorf("saved universe = %v", got)
	}
}

func TestRun_EditTagsCancelKeepsSelection(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.prompter.picks = append(h.prompter.picks, pickReply{err: errors.ErrCancelled})
	h.menu(menuTags, menuSend)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if got := h.service.submissions[0].note.Tags; !reflect.DeepEqual(got, []string{"math"}) {
		t.Errorf("submitted tags = %v", got)
	}
}

func TestRun_DiscoveryRetry(t *testing.T) {
	t.Run("yes", func(t *testing.T) {
		h := newHarness(t)
		h.prompter.picks = []pickReply{{}}
		h.service.deckErrs = []error{unreachable("deckNames")}
		h.prompter.confirms = []confirmReply{{yes: true}}
		h.menu(1, 0, pickFront, pickBack, menuCancel)

		if err := h.run(t); err != nil {
			t.Fatal(err)
		}
		if h.configs.saved[0].DeckName != "Books" {
			t.Errorf("deck = %q", h.configs.saved[0].DeckName)
		}
	})

	t.Run("no", func(t *testing.T) {
		h := newHarness(t)
		h.prompter.picks = []pickReply{{}}
		h.service.deckErrs = []error{unreachable("deckNames")}
		h.prompter.confirms = []confirmReply{{yes: false}}

		if err := h.run(t); !errors.Is(err, errors.ErrRetryDeclined) {
			t.Fatalf("Run() error = %v, want ErrRetryDeclined", err)
		}
	})

	t.Run("other failures propagate", func(t *testing.T) {
		h := newHarness(t)
		h.prompter.picks = []pickReply{{}}
		h.service.deckErrs = []error{errors.NewServiceError("deckNames", errors.KindTransport, errors.New("bad gateway"))}

		if err := h.run(t); errors.KindOf(err) != errors.KindTransport {
			t.Fatalf("Run() error = %v, want transport", err)
		}
		if len(h.prompter.questions) != 0 {
			t.Error("transport failures must not offer a retry")
		}
	})
}

func TestRun_NoDecks(t *testing.T) {
	h := newHarness(t)
	h.prompter.picks = []pickReply{{}}
	h.service.decks = nil

	err := h.run(t)
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("Run() error = %v, want invalid input", err)
	}
}

func TestSettings_NoteTypeChangeRemapsOnce(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(
		menuSettings,
		int(settingNoteType),
		1, // Cloze
		pickFront, pickBack, pickScreenshot,
		int(settingDone),
		menuCancel,
	)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if want := []string{"Cloze"}; !reflect.DeepEqual(h.service.fieldCalls, want) {
		t.Errorf("field lookups = %v, want exactly one for Cloze", h.service.fieldCalls)
	}

	wantTitles := []string{
		"Menu",
		titleSettings,
		titleNoteType,
		"Choose the contents for the field Text",
		"Choose the contents for the field Extra",
		"Choose the contents for the field Image",
		titleSettings,
		"Menu",
	}
	if !reflect.DeepEqual(h.prompter.titles, wantTitles) {
		t.Errorf("prompts = %v\nwant %v", h.prompter.titles, wantTitles)
	}

	want := &note.Config{
		DeckName: "Books",
		NoteType: "Cloze",
		FieldMapping: []note.FieldBinding{
			{Field: "Text", Kind: note.KindFront},
			{Field: "Extra", Kind: note.KindBack},
			{Field: "Image", Kind: note.KindScreenshot},
		},
	}
	if len(h.configs.saved) != 1 || !reflect.DeepEqual(h.configs.saved[0], want) {
		t.Errorf("saved = %+v, want %+v", h.configs.saved, want)
	}
	if !reflect.DeepEqual(h.state.Config, want) {
		t.Errorf("state config = %+v", h.state.Config)
	}
}

func TestSettings_SameNoteTypeKeepsMapping(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(menuSettings, int(settingNoteType), 0, int(settingDone), menuCancel)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if len(h.service.fieldCalls) != 0 {
		t.Errorf("field lookups = %v, want none", h.service.fieldCalls)
	}
	if !reflect.DeepEqual(h.state.Config, basicConfig()) {
		t.Errorf("config changed: %+v", h.state.Config)
	}
}

func TestSettings_DeckAndMapping(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(
		menuSettings,
		int(settingDeck), 0,
		int(settingMapping), pickBack, pickFront,
		int(settingDone),
		menuSend,
	)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	cfg := h.configs.saved[0]
	if cfg.DeckName != "Default" {
		t.Errorf("deck = %q", cfg.DeckName)
	}
	if cfg.FieldMapping[0].Kind != note.KindBack || cfg.FieldMapping[1].Kind != note.KindFront {
		t.Errorf("mapping = %+v", cfg.FieldMapping)
	}
	if got := h.service.submissions[0].note.DeckName; got != "Default" {
		t.Errorf("submitted deck = %q", got)
	}
}

func TestSettings_RefreshesDiscovery(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(
		menuSettings, int(settingDone),
		menuSettings, int(settingDone),
		menuCancel,
	)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if h.service.invalidations != 2 {
		t.Errorf("discovery invalidated %d times, want once per settings visit", h.service.invalidations)
	}
}

func TestStartup_DoesNotRefreshDiscovery(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.menu(menuCancel)

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if h.service.invalidations != 0 {
		t.Errorf("discovery invalidated %d times outside the settings menu", h.service.invalidations)
	}
}

func TestSettings_CancelledRemapLeavesNoteType(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.prompter.selects = []selectReply{
		{idx: menuSettings},
		{idx: int(settingNoteType)},
		{idx: 1},
		{err: errors.ErrCancelled}, // first field prompt
		{err: errors.ErrCancelled}, // settings menu
		{idx: menuCancel},
	}

	if err := h.run(t); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(h.state.Config, basicConfig()) {
		t.Errorf("config changed: %+v", h.state.Config)
	}
	if len(h.configs.saved) != 1 {
		t.Errorf("leaving the settings menu should save, saved %d times", len(h.configs.saved))
	}
}

func TestSettings_SaveFailureIsActionLocal(t *testing.T) {
	h := newHarness(t).withCachedConfig()
	h.configs.saveErr = errors.NewLocalIOError("write", "/data/last_selection", errors.New("permission denied"))
	h.menu(menuSettings, int(settingDone), menuSend)

	if err := h.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.prompter.notices) != 1 || !strings.Contains(h.prompter.notices[0], "last_selection") {
		t.Errorf("notices = %v", h.prompter.notices)
	}
}
