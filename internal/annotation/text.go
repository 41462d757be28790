package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwulff/audiolabel/internal/audio"
	"github.com/jwulff/audiolabel/internal/category"
)

// LineError describes a line of annotation text that could not be parsed.
type LineError struct {
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// FormatLine renders a record in the editable "start-end, category" form,
// with times in seconds.
func FormatLine(startSec, endSec float64, category string) string {
	return formatSeconds(startSec) + "-" + formatSeconds(endSec) + ", " + category
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseText parses "start-end,category" lines and normalizes them by
// duration (seconds). Blank lines are ignored. Lines that cannot be parsed
// produce a LineError and no record.
func ParseText(text string, duration float64) ([]Record, []*LineError) {
	return parseText(text, duration, nil)
}

func parseText(text string, duration float64, cats *category.Set) ([]Record, []*LineError) {
	var (
		records []Record
		errs    []*LineError
	)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		rec, reason := parseLine(line, duration, cats)
		if reason != "" {
			errs = append(errs, &LineError{Line: i + 1, Text: line, Reason: reason})
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

func parseLine(line string, duration float64, cats *category.Set) (Record, string) {
	startStr, rest, ok := strings.Cut(line, "-")
	if !ok {
		return Record{}, "missing '-' between start and end"
	}
	endStr, category, ok := strings.Cut(rest, ",")
	if !ok {
		return Record{}, "missing ',' before category"
	}

	start, err := strconv.ParseFloat(strings.TrimSpace(startStr), 64)
	if err != nil {
		return Record{}, "start is not a number"
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(endStr), 64)
	if err != nil {
		return Record{}, "end is not a number"
	}

	category = strings.TrimSpace(category)
	if err := ValidateCategory(category); err != nil {
		return Record{}, err.Error()
	}
	if cats != nil && !cats.Contains(category) {
		return Record{}, "unknown category " + strconv.Quote(category)
	}
	if duration <= 0 {
		return Record{}, "no audio loaded"
	}
	if start > end {
		return Record{}, "start is after end"
	}
	if end > duration+1e-9 {
		return Record{}, "end is past the end of the file"
	}

	return Record{Start: start / duration, End: end / duration, Category: category}, ""
}

// Text renders the pending records as editable lines, in seconds of buf.
func (s *Session) Text(buf *audio.Buffer) string {
	if buf == nil || len(s.records) == 0 {
		return ""
	}
	d := buf.Seconds()
	lines := make([]string, len(s.records))
	for i, r := range s.records {
		lines[i] = FormatLine(r.Start*d, r.End*d, r.Category)
	}
	return strings.Join(lines, "\n")
}

// ReplaceFromText replaces the pending records with those parsed from text.
// When cats is non-nil, lines naming a category outside it are rejected.
// If any line fails to parse, the session is left unchanged and the line
// errors are returned.
func (s *Session) ReplaceFromText(text string, buf *audio.Buffer, cats *category.Set) ([]*LineError, error) {
	if buf == nil {
		return nil, ErrEmptySelection
	}
	records, errs := parseText(text, buf.Seconds(), cats)
	if len(errs) > 0 {
		return errs, nil
	}
	s.records = records
	s.dirty = true
	return nil, nil
}
