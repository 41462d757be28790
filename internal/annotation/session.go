// Package annotation accumulates labelled time ranges for one audio file and
// persists them as a JSON label set.
package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwulff/audiolabel/internal/audio"
	"github.com/jwulff/audiolabel/internal/selection"
)

var (
	// ErrEmptySelection is returned when committing without a loaded buffer.
	ErrEmptySelection = errors.New("no audio loaded")

	// ErrInvalidCategory is returned for categories the text format cannot carry.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrIO is returned when a label set cannot be written.
	ErrIO = errors.New("write annotations")
)

// Delimiters cannot appear inside a category.
const Delimiters = "-,"

// Record is one labelled event. Start and End are fractions of the file's
// duration.
type Record struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Category string  `json:"category"`
}

// Session holds the pending records for a single file.
type Session struct {
	path    string
	records []Record
	saved   bool
	dirty   bool
}

// NewSession starts an empty session for the audio file at path.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Path returns the audio file this session annotates.
func (s *Session) Path() string { return s.path }

// Len returns the number of pending records.
func (s *Session) Len() int { return len(s.records) }

// Records returns a copy of the pending records.
func (s *Session) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Saved reports whether Save has succeeded at least once in this session.
func (s *Session) Saved() bool { return s.saved }

// Dirty reports whether records changed since the last save.
func (s *Session) Dirty() bool { return s.dirty }

// Commit normalizes the selection against buf and appends a record.
func (s *Session) Commit(sel selection.State, category string, buf *audio.Buffer) (Record, error) {
	if buf == nil {
		return Record{}, ErrEmptySelection
	}
	if err := ValidateCategory(category); err != nil {
		return Record{}, err
	}

	start, end := sel.Bounds()
	duration := buf.Seconds()
	rec := Record{
		Start:    buf.IndexSeconds(start) / duration,
		End:      buf.IndexSeconds(end) / duration,
		Category: category,
	}
	s.records = append(s.records, rec)
	s.dirty = true
	return rec, nil
}

// Adopt replaces the pending records with a previously saved label set.
// The session is not marked modified.
func (s *Session) Adopt(records []Record) {
	s.records = append([]Record(nil), records...)
	s.dirty = false
}

// ValidateCategory rejects blank categories and ones containing delimiters.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: blank", ErrInvalidCategory)
	}
	if strings.ContainsAny(category, Delimiters) {
		return fmt.Errorf("%w: %q contains one of %q", ErrInvalidCategory, category, Delimiters)
	}
	return nil
}

// OutputPath returns <dir>/<stem>.json for the audio file at audioPath.
func OutputPath(dir, audioPath string) string {
	base := filepath.Base(audioPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+".json")
}

// Save writes the pending records to dir, creating it if needed, and returns
// the path written. Any existing file is overwritten.
func (s *Session) Save(dir string) (string, error) {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		r.Category = strings.TrimSpace(r.Category)
		out[i] = r
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("%w: marshalling: %w", ErrIO, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", ErrIO, dir, err)
	}

	path := OutputPath(dir, s.path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}

	s.saved = true
	s.dirty = false
	return path, nil
}

// LoadExisting reads a label set previously written by Save.
func LoadExisting(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading annotations: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}
