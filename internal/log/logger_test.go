package log

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".audiolabel")
	l, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	if err := l.Append(Event{Event: EventFileLoaded, File: "a.wav", SampleRate: 22050}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append(Event{Event: EventAnnotationCommitted, Category: "siren", Start: Float(0), End: Float(0.5)}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Event != EventFileLoaded || events[0].SampleRate != 22050 {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[0].Time.IsZero() {
		t.Error("Time should be stamped")
	}
	if events[1].Start == nil || *events[1].Start != 0 || *events[1].End != 0.5 {
		t.Errorf("events[1] start/end = %v/%v", events[1].Start, events[1].End)
	}
}

func TestOmitsEmptyFields(t *testing.T) {
	l, _ := NewLogger(t.TempDir())
	l.Append(Event{Event: EventSaveFailed, Error: "disk full", Time: time.Unix(0, 0).UTC()})

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	for _, key := range []string{`"category"`, `"start"`, `"records"`} {
		if strings.Contains(line, key) {
			t.Errorf("line %s should omit %s", line, key)
		}
	}
	if !strings.Contains(line, `"error":"disk full"`) {
		t.Errorf("line %s missing error", line)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	l := &Logger{path: filepath.Join(t.TempDir(), "none.jsonl")}
	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestReadAllCorruptLine(t *testing.T) {
	l, _ := NewLogger(t.TempDir())
	os.WriteFile(l.Path(), []byte("{\"event\":\"file_loaded\"}\nnot json\n"), 0644)
	if _, err := l.ReadAll(); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want parse error on line 2", err)
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	if err := l.Append(Event{Event: EventFileLoaded}); err != nil {
		t.Errorf("nil logger Append: %v", err)
	}
}

func TestConcurrentAppends(t *testing.T) {
	l, _ := NewLogger(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(Event{Event: EventAnnotationCommitted})
		}()
	}
	wg.Wait()

	events, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 20 {
		t.Errorf("got %d events, want 20", len(events))
	}
}
