// Package paths resolves the per-user locations bookminer reads and writes.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "bookminer"

// File names inside the data directory.
const (
	TagsFile          = "tags"
	LastSelectionFile = "last_selection"
	JournalFile       = "history.db"
	LogFile           = "bookminer.log"
)

// Layout is the set of files bookminer keeps in its data directory.
type Layout struct {
	DataDir string
}

// New returns the layout rooted at override, or at $XDG_DATA_HOME/bookminer
// when override is empty.
func New(override string) Layout {
	if override != "" {
		return Layout{DataDir: override}
	}
	return Layout{DataDir: filepath.Join(xdg.DataHome, appName)}
}

// Ensure creates the data directory if it does not exist.
func (l Layout) Ensure() error {
	if err := os.MkdirAll(l.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", l.DataDir, err)
	}
	return nil
}

// Tags returns the newline-separated tags file.
func (l Layout) Tags() string { return filepath.Join(l.DataDir, TagsFile) }

// LastSelection returns the cached note configuration file.
func (l Layout) LastSelection() string { return filepath.Join(l.DataDir, LastSelectionFile) }

// Journal returns the submission journal database.
func (l Layout) Journal() string { return filepath.Join(l.DataDir, JournalFile) }

// Log returns the log file.
func (l Layout) Log() string { return filepath.Join(l.DataDir, LogFile) }
