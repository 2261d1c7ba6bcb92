// Package session holds the mutable record of one card-authoring run.
package session

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/btrkeks/bookminer/internal/note"
)

// Scratch fragment file names inside the working directory.
const (
	FrontFile = "front.tex"
	BackFile  = "back.tex"
)

// State is owned by the workflow for the lifetime of one run.
type State struct {
	// ID correlates log lines and journal rows of one run.
	ID string
	// Tags are the selected labels, distinct, in display order.
	Tags []string
	// Config is nil until a note configuration is loaded or assembled.
	Config *note.Config
	// ScreenshotPath is empty when no screenshot was taken.
	ScreenshotPath string
	// WorkDir holds the front and back fragments. The caller creates and
	// removes it.
	WorkDir string
	// PageNumber is nil when the caller supplied none.
	PageNumber *int
	// SourceFilename is empty when the caller supplied none.
	SourceFilename string
}

// New returns a State for workDir with a fresh ID.
func New(workDir string) *State {
	return &State{
		ID:      uuid.NewString(),
		WorkDir: workDir,
	}
}

// FrontPath returns the path of the front fragment.
func (s *State) FrontPath() string {
	return filepath.Join(s.WorkDir, FrontFile)
}

// BackPath returns the path of the back fragment.
func (s *State) BackPath() string {
	return filepath.Join(s.WorkDir, BackFile)
}

// Attachments returns the files that must be uploaded with the note.
func (s *State) Attachments() []string {
	if s.ScreenshotPath == "" {
		return nil
	}
	return []string{s.ScreenshotPath}
}
