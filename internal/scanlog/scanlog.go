// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scanlog persists watermark scan results in a SQLite database so
// repeated scans of a document set can be compared over time.
package scanlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/texkit/internal/watermark"
)

// Store manages the scan history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the scan history database at path, creating the
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			file TEXT NOT NULL,
			scanned_at TEXT NOT NULL,
			modifications INTEGER NOT NULL,
			chars_removed INTEGER NOT NULL,
			risk TEXT NOT NULL,
			stats TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_file ON scans(file)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_scanned_at ON scans(scanned_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Entry is one recorded scan.
type Entry struct {
	File          string                             `json:"file" yaml:"file"`
	ScannedAt     time.Time                          `json:"scanned_at" yaml:"scanned_at"`
	Modifications int                                `json:"modifications" yaml:"modifications"`
	CharsRemoved  int                                `json:"chars_removed" yaml:"chars_removed"`
	Risk          string                             `json:"risk" yaml:"risk"`
	Stats         map[string]watermark.CategoryStats `json:"stats" yaml:"stats"`
}

// NewEntry builds an Entry from an analysis result.
func NewEntry(file string, res *watermark.Result, scannedAt time.Time) Entry {
	return Entry{
		File:          file,
		ScannedAt:     scannedAt.UTC(),
		Modifications: res.TotalModifications,
		CharsRemoved:  res.CharDifference,
		Risk:          res.Impact.Risk,
		Stats:         res.Stats,
	}
}

// Record inserts a scan into the history.
func (s *Store) Record(ctx context.Context, e Entry) error {
	statsJSON, err := json.Marshal(e.Stats)
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scans (file, scanned_at, modifications, chars_removed, risk, stats)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.File, e.ScannedAt.UTC().Format(time.RFC3339), e.Modifications,
		e.CharsRemoved, e.Risk, string(statsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting scan: %w", err)
	}
	return nil
}

// List returns the most recent scans, newest first. A limit of zero or
// less returns all entries.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT file, scanned_at, modifications, chars_removed, risk, stats
		FROM scans ORDER BY scanned_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var scannedAt, statsJSON string
		if err := rows.Scan(&e.File, &scannedAt, &e.Modifications,
			&e.CharsRemoved, &e.Risk, &statsJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.ScannedAt, err = time.Parse(time.RFC3339, scannedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing scan time: %w", err)
		}
		if err := json.Unmarshal([]byte(statsJSON), &e.Stats); err != nil {
			return nil, fmt.Errorf("parsing stats: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportYAML writes the scan history to w as a YAML document, newest
// first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.List(ctx, 0)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
