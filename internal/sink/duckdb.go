package sink

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"engage/internal/pager"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

// StoredEntry is an entry read back from DuckDB.
type StoredEntry struct {
	ID          string
	Fingerprint string
	pager.Entry
}

// DuckDB records submitted sections in a DuckDB database. A retry of the same
// attempt replaces the section stored by the earlier try.
type DuckDB struct {
	db *sql.DB
}

// OpenDuckDB opens (or creates) the database at path. An empty path opens an
// in-memory database.
func OpenDuckDB(ctx context.Context, path string) (*DuckDB, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create duckdb dir: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DuckDB{db: db}, nil
}

// Close releases the database.
func (d *DuckDB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Log inserts entry, replacing a row with the same attempt and section.
func (d *DuckDB) Log(ctx context.Context, entry pager.Entry) error {
	payload, err := CanonicalJSON(entry.Payload)
	if err != nil {
		return err
	}
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err = d.db.ExecContext(ctx, `
INSERT INTO quiz_entries (entry_id, attempt_id, quiz_id, section, payload_json, payload_fingerprint, recorded_at)
VALUES (CAST(? AS UUID), ?, ?, ?, ?, ?, ?)
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
func (d *DuckDB) Entries(ctx context.Context, quizID string) ([]StoredEntry, error) {
	return queryEntries(ctx, d.db, "CAST(entry_id AS VARCHAR)", quizID)
}

// queryEntries reads quiz_entries ordered by seq. idColumn selects entry_id
// as text in the dialect of db.
func queryEntries(ctx context.Context, db *sql.DB, idColumn, quizID string) ([]StoredEntry, error) {
	query := "SELECT " + idColumn + `, attempt_id, quiz_id, section, payload_json, payload_fingerprint, recorded_at
FROM quiz_entries`
	var args []any
	if quizID = strings.TrimSpace(quizID); quizID != "" {
		query += " WHERE quiz_id = ?"
		args = append(args, quizID)
	}
	query += " ORDER BY seq"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz entries: %w", err)
	}
	defer rows.Close()

	var entries []StoredEntry
	for rows.Next() {
		var (
			stored  StoredEntry
			payload string
		)
		if err := rows.Scan(
			&stored.ID,
			&stored.AttemptID,
			&stored.QuizID,
			&stored.Section,
			&payload,
			&stored.Fingerprint,
			&stored.At,
		); err != nil {
			return nil, fmt.Errorf("scan quiz entry: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &stored.Payload); err != nil {
			return nil, fmt.Errorf("decode payload for %s: %w", stored.ID, err)
		}
		entries = append(entries, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz entries: %w", err)
	}
	return entries, nil
}
