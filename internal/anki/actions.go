package anki

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/btrkeks/bookminer/internal/errors"
)

// Note is a card ready for submission.
type Note struct {
	DeckName  string
	ModelName string
	Fields    map[string]string
	Tags      []string
}

// DeckNames lists the decks in the collection.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	return c.cachedList(ctx, "deckNames", "deckNames", nil)
}

// ModelNames lists the note types in the collection.
func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	return c.cachedList(ctx, "modelNames", "modelNames", nil)
}

// ModelFieldNames lists the fields of a note type in schema order.
func (c *Client) ModelFieldNames(ctx context.Context, modelName string) ([]string, error) {
	params := map[string]string{"modelName": modelName}
	return c.cachedList(ctx, "modelFieldNames:"+modelName, "modelFieldNames", params)
}

// cachedList performs a discovery call, reusing a previous successful result
// for the same key while it is fresh. Failures are never cached.
func (c *Client) cachedList(ctx context.Context, key, action string, params any) ([]string, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return slices.Clone(v.([]string)), nil
		}
	}

	var names []string
	if err := c.call(ctx, action, params, &names); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetDefault(key, slices.Clone(names))
	}
	return names, nil
}

// InvalidateDiscovery drops all cached discovery results.
func (c *Client) InvalidateDiscovery() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

// StoreMediaFile uploads the file at path into the media folder under its
// base name and returns the name it was stored as.
func (c *Client) StoreMediaFile(ctx context.Context, path string) (string, error) {
	name, err := mediaName(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewLocalIOError("read", path, err)
	}

	params := map[string]string{
		"filename": name,
		"data":     base64.StdEncoding.EncodeToString(data),
	}

	var stored string
	if err := c.call(ctx, "storeMediaFile", params, &stored); err != nil {
		return "", err
	}
	if stored == "" {
		stored = name
	}
	return stored, nil
}

// addNoteParams is the addNote payload.
type addNoteParams struct {
	Note addNotePayload `json:"note"`
}

type addNotePayload struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
	Options   addNoteOptions    `json:"options"`
}

type addNoteOptions struct {
	AllowDuplicate bool   `json:"allowDuplicate"`
	DuplicateScope string `json:"duplicateScope"`
}

// AddNote creates the note and returns its id. Duplicates within the deck
// are rejected by the service.
func (c *Client) AddNote(ctx context.Context, n Note) (int64, error) {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	fields := n.Fields
	if fields == nil {
		fields = map[string]string{}
	}

	params := addNoteParams{
		Note: addNotePayload{
			DeckName:  n.DeckName,
			ModelName: n.ModelName,
			Fields:    fields,
			Tags:      tags,
			Options: addNoteOptions{
				AllowDuplicate: false,
				DuplicateScope: "deck",
			},
		},
	}

	var id int64
	if err := c.call(ctx, "addNote", params, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// SubmitNote uploads every attachment and then creates the note. The first
// failed upload aborts the submission before the note is created.
func (c *Client) SubmitNote(ctx context.Context, n Note, attachments []string) (int64, error) {
	for _, path := range attachments {
		if _, err := c.StoreMediaFile(ctx, path); err != nil {
			return 0, err
		}
	}
	return c.AddNote(ctx, n)
}

// mediaName returns the name an attachment is stored under.
func mediaName(path string) (string, error) {
	name := filepath.Base(path)
	if path == "" || name == "." || name == ".." || name == string(filepath.Separator) || !utf8.ValidString(name) {
		return "", errors.NewValidationError("attachment has no usable file name").
			WithField("attachment").
			WithValue(path)
	}
	return name, nil
}
