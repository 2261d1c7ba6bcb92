package store

import (
	"encoding/json"

	"github.com/btrkeks/bookminer/internal/errors"
	"github.com/btrkeks/bookminer/internal/note"
)

// ConfigStore holds the single cached note configuration. Each save
// overwrites the previous value.
type ConfigStore struct {
	path string
}

// NewConfigStore returns a store backed by the JSON file at path.
func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

// Load returns the cached configuration, or nil when none was saved. A file
// that does not decode is reported as invalid input so callers can treat it
// as absent.
func (s *ConfigStore) Load() (*note.Config, error) {
	data, found, err := readFile(s.path)
	if err != nil || !found {
		return nil, err
	}

	var cfg note.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewValidationError("cached note configuration is malformed").
			WithField(s.path).
			WithCause(err)
	}
	return &cfg, nil
}

// Save replaces the cached configuration with cfg.
func (s *ConfigStore) Save(cfg *note.Config) error {
	if cfg == nil {
		return errors.NewValidationError("note configuration is missing")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return errors.NewValidationError("note configuration cannot be encoded").WithCause(err)
	}
	return writeFile(s.path, data)
}
