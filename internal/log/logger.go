// Package log appends structured annotation events to a JSONL file.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventFileLoaded          = "file_loaded"
	EventDecodeFailed        = "decode_failed"
	EventAnnotationCommitted = "annotation_committed"
	EventAnnotationsSaved    = "annotations_saved"
	EventSaveFailed          = "save_failed"
	EventParseFailed         = "parse_failed"
	EventUnhandledError      = "unhandled_error"
)

// FileName is the log file created inside the data directory.
const FileName = "log.jsonl"

// Event is a single structured line in the log.
type Event struct {
	Time       time.Time `json:"time"`
	Event      string    `json:"event"`
	SessionID  string    `json:"session,omitempty"`
	File       string    `json:"file,omitempty"`
	Output     string    `json:"output,omitempty"`
	Category   string    `json:"category,omitempty"`
	Start      *float64  `json:"start,omitempty"`
	End        *float64  `json:"end,omitempty"`
	Records    int       `json:"records,omitempty"`
	SampleRate int       `json:"sample_rate,omitempty"`
	DurationMs int64     `json:"duration_ms,omitempty"`
	DecodeMs   int64     `json:"decode_ms,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Logger writes append-only JSONL events. A nil *Logger discards events.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger writing to dir/log.jsonl, creating dir if needed.
// An existing log is appended to.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &Logger{path: filepath.Join(dir, FileName)}, nil
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Append writes event as one JSON line, stamping Time if unset.
func (l *Logger) Append(event Event) error {
	if l == nil {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}
	return nil
}

// ReadAll parses every event in the log. A missing file yields no events.
func (l *Logger) ReadAll() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024) // 1MB max line
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return events, nil
}

// Float returns a pointer to v, for the optional Start/End fields.
func Float(v float64) *float64 { return &v }
