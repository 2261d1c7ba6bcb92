package store

import (
	"strings"
)

// TagStore holds the tag universe as newline-separated text.
type TagStore struct {
	path string
}

// NewTagStore returns a store backed by the text file at path.
func NewTagStore(path string) *TagStore {
	return &TagStore{path: path}
}

// Load returns the saved tags in file order. Blank lines, surrounding
// whitespace and repeated tags are dropped. A missing file is an empty
// universe.
func (s *TagStore) Load() ([]string, error) {
	data, found, err := readFile(s.path)
	if err != nil || !found {
		return []string{}, err
	}
	return normalize(strings.Split(string(data), "\n")), nil
}

// Save replaces the saved tags with tags.
func (s *TagStore) Save(tags []string) error {
	tags = normalize(tags)
	content := strings.Join(tags, "\n")
	if len(tags) > 0 {
		content += "\n"
	}
	return writeFile(s.path, []byte(content))
}

func normalize(lines []string) []string {
	out := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		tag := strings.TrimSpace(line)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
