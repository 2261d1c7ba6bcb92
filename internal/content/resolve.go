// Package content turns field bindings into the strings submitted with a
// note.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/note"
	"github.com/btrkeks/bookminer/internal/session"
)

const (
	latexOpen  = "[latex]"
	latexClose = "[/latex]"
)

// htmlEscaper replaces & first so later entities are not double-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\t", "&Tab;",
)

// Escape HTML-escapes the characters & < > " and tab.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// WrapLatex wraps text in the note service's LaTeX delimiters.
func WrapLatex(text string) string {
	return latexOpen + text + latexClose
}

// ImageTag returns the markup embedding the attachment at path. Only the
// base name is referenced since that is the name the media is stored under.
func ImageTag(path string) string {
	return fmt.Sprintf(`<img src="%s">`, filepath.Base(path))
}

// Resolve returns the value of kind for state. Optional data that is absent
// resolves to the empty string; only an unreadable fragment is an error.
func Resolve(kind note.ContentKind, state *session.State) (string, error) {
	switch kind {
	case note.KindEmpty:
		return "", nil
	case note.KindFront:
		return readFragment(state.FrontPath())
	case note.KindBack:
		return readFragment(state.BackPath())
	case note.KindScreenshot:
		if state.ScreenshotPath == "" {
			return "", nil
		}
		return ImageTag(state.ScreenshotPath), nil
	case note.KindPageNumber:
		if state.PageNumber == nil {
			return "", nil
		}
		return strconv.Itoa(*state.PageNumber), nil
	case note.KindFileName:
		return state.SourceFilename, nil
	default:
		return "", errors.NewValidationError("unknown content kind").WithValue(kind)
	}
}

// ResolveFields resolves every binding of mapping. The first failure aborts
// and names the field.
func ResolveFields(mapping []note.FieldBinding, state *session.State) (map[string]string, error) {
	fields := make(map[string]string, len(mapping))
	for _, b := range mapping {
		value, err := Resolve(b.Kind, state)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve field %q", b.Field)
		}
		fields[b.Field] = value
	}
	return fields, nil
}

func readFragment(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewLocalIOError("read", path, err)
	}
	return Escape(WrapLatex(string(data))), nil
}
