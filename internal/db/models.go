// Package db records annotation saves in a local SQLite database.
package db

import "time"

// SaveEntry is one successful write of an annotation file.
type SaveEntry struct {
	ID         int64
	SessionID  string
	AudioPath  string
	OutputPath string
	Records    int
	SavedAt    time.Time
}
