// Package category loads the ordered list of labels an annotator may assign.
package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrConfig is returned when the category definition is missing or malformed.
var ErrConfig = errors.New("category config")

// Set is an ordered, immutable list of category labels.
type Set struct {
	names []string
	index map[string]int
}

// Load reads a JSON array of strings from path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrConfig, path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse builds a Set from the raw JSON bytes of a category file.
func Parse(data []byte) (*Set, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("%w: parsing categories: %w", ErrConfig, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", ErrConfig)
	}
	return New(names)
}

// New builds a Set from names, keeping their order.
func New(names []string) (*Set, error) {
	s := &Set{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("%w: entry %d is blank", ErrConfig, i)
		}
		if _, dup := s.index[n]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrConfig, n)
		}
		s.index[n] = len(s.names)
		s.names = append(s.names, n)
	}
	return s, nil
}

// Len returns the number of categories.
func (s *Set) Len() int { return len(s.names) }

// At returns the category at position i.
func (s *Set) At(i int) string { return s.names[i] }

// Index returns the position of name, or -1.
func (s *Set) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Contains reports whether name is a permitted category.
func (s *Set) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns a copy of the categories in file order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
