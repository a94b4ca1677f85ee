package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS dml_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	dml_type TEXT NOT NULL,
	success INTEGER NOT NULL,
	preview INTEGER NOT NULL DEFAULT 0,
	record_count INTEGER NOT NULL DEFAULT 0,
	execution_time_ms INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dml_history_created_at ON dml_history(created_at);
`

// Store is the SQLite-backed attempt log. It is the one sink the admin
// API reads back; the DML subsystem itself only ever writes.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the history database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Write implements Sink.
func (s *Store) Write(entry Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO dml_history
			(query, dml_type, success, preview, record_count, execution_time_ms, error, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Query, entry.DMLType, entry.Success, entry.Preview,
		entry.RecordCount, entry.ExecutionTimeMS, entry.Error, entry.Message,
		entry.Timestamp.UTC(),
	)
	return err
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT query, dml_type, success, preview, record_count, execution_time_ms, error, message, created_at
		 FROM dml_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts time.Time
		if err := rows.Scan(&e.Query, &e.DMLType, &e.Success, &e.Preview,
			&e.RecordCount, &e.ExecutionTimeMS, &e.Error, &e.Message, &ts); err != nil {
			return nil, err
		}
		e.Timestamp = ts
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close implements Sink.
func (s *Store) Close() error {
	return s.db.Close()
}
