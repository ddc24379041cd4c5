// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite journal of completed conversions so an
// operator can see which exports were turned into import documents and when.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/portfolio-import/pkg/types"
)

// DefaultLimit caps List when no limit is given.
const DefaultLimit = 20

// Store manages the run journal database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the journal at path, creating parent directories and
// the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			custom_field_rows INTEGER NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_input_path ON runs(input_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a run and returns its id.
func (s *Store) Record(ctx context.Context, r types.RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (input_path, output_path, row_count, custom_field_rows, converted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.InputPath, r.OutputPath, r.Rows, r.CustomFieldRows,
		r.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. A non-positive limit
// uses DefaultLimit.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_path, output_path, row_count, custom_field_rows, converted_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var (
			r  types.RunRecord
			at string
		)
		if err := rows.Scan(&r.ID, &r.InputPath, &r.OutputPath, &r.Rows, &r.CustomFieldRows, &at); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.ConvertedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("run %d: parsing timestamp %q: %w", r.ID, at, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
