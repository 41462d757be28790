package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS saves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sessionId TEXT NOT NULL,
		audioPath TEXT NOT NULL,
		outputPath TEXT NOT NULL,
		records INTEGER NOT NULL,
		savedAt REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS saves_audio ON saves(audioPath, savedAt);
`

// Store provides access to the save history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path with WAL.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return newStore(db)
}

func newStore(db *sql.DB) (*Store, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewSessionID returns a fresh identifier for one run of the tool.
func NewSessionID() string {
	return uuid.NewString()
}

// RecordSave inserts entry and returns it with ID and SavedAt filled in.
// An empty SessionID is replaced with a new one.
func (s *Store) RecordSave(entry SaveEntry) (SaveEntry, error) {
	if entry.SessionID == "" {
		entry.SessionID = NewSessionID()
	}
	if entry.SavedAt.IsZero() {
		entry.SavedAt = time.Now()
	}

	res, err := s.db.Exec(`
		INSERT INTO saves (sessionId, audioPath, outputPath, records, savedAt)
		VALUES (?, ?, ?, ?, ?)
	`, entry.SessionID, entry.AudioPath, entry.OutputPath, entry.Records, unixFromTime(entry.SavedAt))
	if err != nil {
		return entry, fmt.Errorf("insert save: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return entry, fmt.Errorf("insert save: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// SavesForFile returns every save of audioPath, newest first.
func (s *Store) SavesForFile(audioPath string) ([]SaveEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, sessionId, audioPath, outputPath, records, savedAt
		FROM saves
		WHERE audioPath = ?
		ORDER BY savedAt DESC, id DESC
	`, audioPath)
	if err != nil {
		return nil, fmt.Errorf("query saves: %w", err)
	}
	return scanSaves(rows)
}

// RecentSaves returns up to limit saves across all files, newest first.
func (s *Store) RecentSaves(limit int) ([]SaveEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, sessionId, audioPath, outputPath, records, savedAt
		FROM saves
		ORDER BY savedAt DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query saves: %w", err)
	}
	return scanSaves(rows)
}

func scanSaves(rows *sql.Rows) ([]SaveEntry, error) {
	defer rows.Close()

	var saves []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var savedAt float64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.AudioPath, &e.OutputPath,
			&e.Records, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		e.SavedAt = timeFromUnix(savedAt)
		saves = append(saves, e)
	}
	return saves, rows.Err()
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
