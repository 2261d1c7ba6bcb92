package note

import (
	"encoding/json"
	"fmt"

	"github.com/btrkeks/bookminer/internal/errors"
)

// ContentKind names the source a note field is filled from at submission time.
type ContentKind int

const (
	KindEmpty ContentKind = iota
	KindFront
	KindBack
	KindScreenshot
	KindPageNumber
	KindFileName
)

var kindNames = [...]string{
	KindEmpty:      "Empty",
	KindFront:      "Front",
	KindBack:       "Back",
	KindScreenshot: "Screenshot",
	KindPageNumber: "PageNumber",
	KindFileName:   "FileName",
}

var kindLabels = [...]string{
	KindEmpty:      "Empty",
	KindFront:      "Front",
	KindBack:       "Back",
	KindScreenshot: "Screenshot",
	KindPageNumber: "Page Number",
	KindFileName:   "File Name",
}

// Kinds returns every content kind in presentation order.
func Kinds() []ContentKind {
	return []ContentKind{KindEmpty, KindFront, KindBack, KindScreenshot, KindPageNumber, KindFileName}
}

// KindLabels returns the labels of Kinds, index-aligned.
func KindLabels() []string {
	kinds := Kinds()
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = k.Label()
	}
	return labels
}

// Valid reports whether k is one of the known kinds.
func (k ContentKind) Valid() bool {
	return k >= KindEmpty && k <= KindFileName
}

// String returns the serialized name of the kind.
func (k ContentKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ContentKind(%d)", int(k))
	}
	return kindNames[k]
}

// Label returns the name shown to the user.
func (k ContentKind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return kindLabels[k]
}

// ParseKind returns the kind with the given serialized name.
func ParseKind(s string) (ContentKind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindEmpty, errors.NewValidationError("unknown content kind").WithField("kind").WithValue(s)
}

// MarshalJSON encodes the kind as its serialized name.
func (k ContentKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.NewValidationError("unknown content kind").WithField("kind").WithValue(int(k))
	}
	return json.Marshal(kindNames[k])
}

// UnmarshalJSON decodes a serialized kind name.
func (k *ContentKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
