package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"engage/internal/pager"
)

// Logbook appends submitted sections to a JSON Lines file.
type Logbook struct {
	path string
	mu   sync.Mutex
}

// NewLogbook creates a logbook that writes to path, creating parent directories.
func NewLogbook(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create logbook dir: %w", err)
	}
	return &Logbook{path: path}, nil
}

// Log appends entry as a single JSON line.
func (l *Logbook) Log(ctx context.Context, entry pager.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open logbook: %w", err)
	}
	defer file.Close()
	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write logbook: %w", err)
	}
	return nil
}

// Entries reads every entry recorded in the logbook.
func (l *Logbook) Entries() ([]pager.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open logbook: %w", err)
	}
	defer file.Close()

	var entries []pager.Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry pager.Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("logbook line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read logbook: %w", err)
	}
	return entries, nil
}
