// Package workflow drives one card-authoring session: editing the card's
// fragments, tagging it, configuring where its fields come from and the main
// menu loop that ends with the card sent to Anki or the session cancelled.
package workflow

import (
	"context"

	"github.com/btrkeks/bookminer/internal/anki"
	"github.com/btrkeks/bookminer/internal/journal"
	"github.com/btrkeks/bookminer/internal/note"
)

// Prompter defines the interactive prompts the workflow needs.
// tui.Prompter implements it.
type Prompter interface {
	// Select asks for one of options and returns its index.
	// An empty options list is invalid input.
	Select(ctx context.Context, title string, options []string) (int, error)

	// PickTags asks for a subset of universe, with preselected checked.
	// It returns the selection and the possibly edited universe.
	PickTags(ctx context.Context, universe, preselected []string) ([]string, []string, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) (bool, error)

	// Notify shows message on the next prompt.
	Notify(message string)
}

// Editor opens a file in the user's editor and blocks until it exits.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// NoteService is the remote note service. anki.Client implements it.
type NoteService interface {
	// DeckNames lists the decks.
	DeckNames(ctx context.Context) ([]string, error)

	// ModelNames lists the note types.
	ModelNames(ctx context.Context) ([]string, error)

	// ModelFieldNames lists the fields of a note type, in order.
	ModelFieldNames(ctx context.Context, modelName string) ([]string, error)

	// SubmitNote uploads attachments, then creates the note and returns its id.
	SubmitNote(ctx context.Context, n anki.Note, attachments []string) (int64, error)

	// InvalidateDiscovery forgets cached deck, note type and field lists.
	InvalidateDiscovery()
}

// ConfigStore persists the single current note configuration.
type ConfigStore interface {
	// Load returns nil without error when nothing was saved yet.
	Load() (*note.Config, error)
	Save(cfg *note.Config) error
}

// TagStore persists the tag universe.
type TagStore interface {
	Load() ([]string, error)
	Save(tags []string) error
}

// Journal records submission attempts.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) error
}
