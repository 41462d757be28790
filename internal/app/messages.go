package app

import (
	"time"

	"github.com/jwulff/audiolabel/internal/annotation"
	"github.com/jwulff/audiolabel/internal/audio"
	"github.com/jwulff/audiolabel/internal/db"
)

// AudioLoadedMsg carries the result of decoding a file.
type AudioLoadedMsg struct {
	Path      string
	Buffer    *audio.Buffer
	Existing  []annotation.Record // previously saved labels, when resuming
	ResumeErr error
	Elapsed   time.Duration
	Err       error
}

// HistoryRecordedMsg reports the outcome of writing a save to the history store.
type HistoryRecordedMsg struct {
	Entry db.SaveEntry
	Err   error
}

// PlaybackTickMsg refreshes the transport indicator while audio plays.
type PlaybackTickMsg struct {
	ID int
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
