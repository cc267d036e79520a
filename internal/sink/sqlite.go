package sink

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"engage/internal/pager"
)

//go:embed sqlite_schema.sql
var sqliteSchemaDDL string

// SQLite records submitted sections in a SQLite database. It shares the
// quiz_entries layout and retry semantics of DuckDB.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path. An empty path
// opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		dsn = "file:" + filepath.ToSlash(path) + "?_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Each in-memory connection is its own database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Log inserts entry, replacing a row with the same attempt and section.
func (s *SQLite) Log(ctx context.Context, entry pager.Entry) error {
	payload, err := CanonicalJSON(entry.Payload)
	if err != nil {
		return err
	}
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO quiz_entries (entry_id, attempt_id, quiz_id, section, payload_json, payload_fingerprint, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (attempt_id, section) DO UPDATE SET
  payload_json = excluded.payload_json,
  payload_fingerprint = excluded.payload_fingerprint,
  recorded_at = excluded.recorded_at`,
		uuid.NewString(),
		entry.AttemptID,
		entry.QuizID,
		entry.Section,
		string(payload),
		fingerprintBytes(payload),
		at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert quiz entry: %w", err)
	}
	return nil
}

// Entries returns stored entries in insertion order. An empty quizID returns
// entries for every quiz.
func (s *SQLite) Entries(ctx context.Context, quizID string) ([]StoredEntry, error) {
	return queryEntries(ctx, s.db, "entry_id", quizID)
}
