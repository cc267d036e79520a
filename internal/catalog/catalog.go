package catalog

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"engage/internal/quiz"
)

//go:embed quizzes/*.yml
var builtinFS embed.FS

// BuiltinSource marks quizzes that ship with the binary.
const BuiltinSource = "builtin"

// Entry is a quiz definition together with where it was loaded from.
type Entry struct {
	Quiz   quiz.Quiz
	Source string
}

// Catalog indexes quiz definitions by id.
type Catalog struct {
	entries map[string]Entry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: map[string]Entry{}}
}

// Builtin returns a catalog holding the embedded quizzes.
func Builtin() (*Catalog, error) {
	c := New()
	files, err := builtinFS.ReadDir("quizzes")
	if err != nil {
		return nil, fmt.Errorf("read builtin quizzes: %w", err)
	}
	for _, file := range files {
		data, err := builtinFS.ReadFile(path.Join("quizzes", file.Name()))
		if err != nil {
			return nil, fmt.Errorf("read builtin quiz %s: %w", file.Name(), err)
		}
		q, err := quiz.ParseQuiz(data, quiz.FormatYAML)
		if err != nil {
			return nil, fmt.Errorf("builtin quiz %s: %w", file.Name(), err)
		}
		c.Add(q, BuiltinSource)
	}
	return c, nil
}

// Add registers q, replacing any definition with the same id.
func (c *Catalog) Add(q quiz.Quiz, source string) {
	c.entries[q.ID] = Entry{Quiz: q, Source: source}
}

// AddDir loads every quiz file in dir. A missing directory is not an error.
func (c *Catalog) AddDir(dir string) error {
	files, err := Files(dir)
	if err != nil {
		return err
	}
	for _, full := range files {
		q, err := quiz.LoadQuiz(full)
		if err != nil {
			return fmt.Errorf("load quiz %q: %w", full, err)
		}
		c.Add(q, full)
	}
	return nil
}

// Files lists the .yml, .yaml and .json files in dir in name order. A missing
// directory yields no files.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read quiz dir %q: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isQuizFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Get returns the quiz registered under id.
func (c *Catalog) Get(id string) (quiz.Quiz, bool) {
	entry, ok := c.entries[strings.TrimSpace(id)]
	return entry.Quiz, ok
}

// Lookup returns the entry registered under id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	entry, ok := c.entries[strings.TrimSpace(id)]
	return entry, ok
}

// List returns all entries sorted by quiz id.
func (c *Catalog) List() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Quiz.ID < entries[j].Quiz.ID
	})
	return entries
}

// IDs returns the registered quiz ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isQuizFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml", ".json":
		return true
	}
	return false
}
