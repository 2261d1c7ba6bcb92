// Package note defines the note configuration: which deck and note type a
// card goes to and which content fills each field of that note type.
package note

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/btrkeks/bookminer/internal/errors"
)

// FieldBinding maps one note field to a content kind. It serializes as the
// two-element array [field, kind].
type FieldBinding struct {
	Field string      `validate:"required"`
	Kind  ContentKind `validate:"content_kind"`
}

// MarshalJSON encodes the binding as [field, kind].
func (b FieldBinding) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{b.Field, b.Kind})
}

// UnmarshalJSON decodes a [field, kind] pair.
func (b *FieldBinding) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return errors.NewValidationError("field binding must be a [field, kind] pair").WithValue(string(data))
	}
	if err := json.Unmarshal(raw[0], &b.Field); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &b.Kind)
}

// Config is the persisted note configuration.
type Config struct {
	DeckName     string         `json:"deck_name" validate:"required"`
	NoteType     string         `json:"note_type" validate:"required"`
	FieldMapping []FieldBinding `json:"field_mapping" validate:"required,min=1,unique=Field,dive"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("content_kind", func(fl validator.FieldLevel) bool {
			return ContentKind(fl.Field().Int()).Valid()
		})
	})
	return validate
}

// Validate checks that the configuration names a deck and a note type and
// that its field names are present and unique.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewValidationError("note configuration is missing")
	}
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewValidationError("invalid note configuration").WithCause(err)
	}
	fe := verrs[0]
	return errors.NewValidationError(fmt.Sprintf("failed %q check", fe.Tag())).
		WithField(fe.Namespace()).
		WithValue(fe.Value())
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.FieldMapping = slices.Clone(c.FieldMapping)
	return &out
}
