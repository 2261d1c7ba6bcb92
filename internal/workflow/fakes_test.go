package workflow

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/btrkeks/bookminer/internal/anki"
	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/journal"
	"github.com/btrkeks/bookminer/internal/note"
)

type selectReply struct {
	idx int
	err error
}

type pickReply struct {
	selected []string
	universe []string
	err      error
}

type confirmReply struct {
	yes    bool
	err    error
	before func()
}

// fakePrompter answers prompts from scripted queues and records what was
// asked. An exhausted queue reports an error and cancels.
type fakePrompter struct {
	t        *testing.T
	selects  []selectReply
	picks    []pickReply
	confirms []confirmReply

	titles    []string
	pickArgs  [][2][]string
	questions []string
	notices   []string
}

func (p *fakePrompter) Select(_ context.Context, title string, options []string) (int, error) {
	p.titles = append(p.titles, title)
	if len(options) == 0 {
		return 0, errors.NewValidationError("nothing to choose from")
	}
	if len(p.selects) == 0 {
		p.t.Errorf("unexpected prompt %q", title)
		return 0, errors.ErrCancelled
	}
	r := p.selects[0]
	p.selects = p.selects[1:]
	if r.err == nil && (r.idx < 0 || r.idx >= len(options)) {
		p.t.Fatalf("scripted index %d out of range for %q (%d options)", r.idx, title, len(options))
	}
	return r.idx, r.err
}

func (p *fakePrompter) PickTags(_ context.Context, universe, preselected []string) ([]string, []string, error) {
	p.pickArgs = append(p.pickArgs, [2][]string{slices.Clone(universe), slices.Clone(preselected)})
	if len(p.picks) == 0 {
		p.t.Error("unexpected tag picker")
		return nil, nil, errors.ErrCancelled
	}
	r := p.picks[0]
	p.picks = p.picks[1:]
	return r.selected, r.universe, r.err
}

func (p *fakePrompter) Confirm(_ context.Context, question string) (bool, error) {
	p.questions = append(p.questions, question)
	if len(p.confirms) == 0 {
		p.t.Errorf("unexpected confirmation %q", question)
		return false, errors.ErrCancelled
	}
	r := p.confirms[0]
	p.confirms = p.confirms[1:]
	if r.before != nil {
		r.before()
	}
	return r.yes, r.err
}

func (p *fakePrompter) Notify(message string) {
	p.notices = append(p.notices, message)
}

// fakeEditor writes scripted content into the edited file.
type fakeEditor struct {
	contents map[string]string // by base name
	errs     map[string]error  // by base name
	calls    []string
}

func (e *fakeEditor) Edit(_ context.Context, path string) error {
	base := filepath.Base(path)
	e.calls = append(e.calls, base)
	if err := e.errs[base]; err != nil {
		return err
	}
	if c, ok := e.contents[base]; ok {
		return os.WriteFile(path, []byte(c), 0o644)
	}
	return nil
}

type submission struct {
	note        anki.Note
	attachments []string
}

type fakeService struct {
	decks     []string
	models    []string
	fields    map[string][]string
	deckErrs  []error
	submitErr []error

	fieldCalls    []string
	submissions   []submission
	invalidations int
}

func (s *fakeService) DeckNames(context.Context) ([]string, error) {
	if len(s.deckErrs) > 0 {
		err := s.deckErrs[0]
		s.deckErrs = s.deckErrs[1:]
		return nil, err
	}
	return s.decks, nil
}

func (s *fakeService) ModelNames(context.Context) ([]string, error) {
	return s.models, nil
}

func (s *fakeService) ModelFieldNames(_ context.Context, model string) ([]string, error) {
	s.fieldCalls = append(s.fieldCalls, model)
	return s.fields[model], nil
}

func (s *fakeService) InvalidateDiscovery() {
	s.invalidations++
}

func (s *fakeService) SubmitNote(_ context.Context, n anki.Note, attachments []string) (int64, error) {
	s.submissions = append(s.submissions, submission{note: n, attachments: slices.Clone(attachments)})
	if len(s.submitErr) > 0 {
		err := s.submitErr[0]
		s.submitErr = s.submitErr[1:]
		if err != nil {
			return 0, err
		}
	}
	return 1700000000000 + int64(len(s.submissions)), nil
}

type fakeConfigStore struct {
	cfg     *note.Config
	loadErr error
	saveErr error
	saved   []*note.Config
}

func (s *fakeConfigStore) Load() (*note.Config, error) {
	return s.cfg.Clone(), s.loadErr
}

func (s *fakeConfigStore) Save(cfg *note.Config) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, cfg.Clone())
	s.cfg = cfg.Clone()
	return nil
}

type fakeTagStore struct {
	tags    []string
	loadErr error
	saveErr error
	saved   [][]string
}

func (s *fakeTagStore) Load() ([]string, error) {
	return slices.Clone(s.tags), s.loadErr
}

func (s *fakeTagStore) Save(tags []string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, slices.Clone(tags))
	s.tags = slices.Clone(tags)
	return nil
}

type fakeJournal struct {
	entries []journal.Entry
	err     error
}

func (j *fakeJournal) Record(_ context.Context, e journal.Entry) error {
	j.entries = append(j.entries, e)
	return j.err
}
