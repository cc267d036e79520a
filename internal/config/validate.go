package config

import (
	"fmt"
	"os"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config and the paths it references.
func Validate(cfg *Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	switch cfg.UI.Mode {
	case UIModeAuto, UIModeLive, UIModePlain:
	default:
		add("ui.mode", fmt.Sprintf("unsupported mode %q (expected auto|live|plain)", cfg.UI.Mode))
	}
	if cfg.UI.Width < 0 {
		add("ui.width", "must be >= 0")
	}
	if cfg.UI.Height < 0 {
		add("ui.height", "must be >= 0")
	}
	if cfg.UI.TransitionMS < 0 {
		add("ui.transition_ms", "must be >= 0")
	}

	if baseDir == "" {
		baseDir = "."
	}
	logPaths := []struct{ field, path string }{
		{"log.file", cfg.Log.File},
		{"log.duckdb", cfg.Log.DuckDB},
		{"log.sqlite", cfg.Log.SQLite},
	}
	claimed := map[string]string{}
	for _, entry := range logPaths {
		if entry.path == "" {
			continue
		}
		if info, err := os.Stat(resolvePath(baseDir, entry.path)); err == nil && info.IsDir() {
			add(entry.field, fmt.Sprintf("%q is a directory", entry.path))
		}
		if owner, exists := claimed[entry.path]; exists {
			add(entry.field, fmt.Sprintf("must differ from %s", owner))
			continue
		}
		claimed[entry.path] = entry.field
	}

	seen := map[string]struct{}{}
	for i, dir := range cfg.Quizzes.Dirs {
		field := fmt.Sprintf("quizzes.dirs[%d]", i)
		if _, exists := seen[dir]; exists {
			add(field, fmt.Sprintf("duplicate dir %q", dir))
			continue
		}
		seen[dir] = struct{}{}
		info, err := os.Stat(resolvePath(baseDir, dir))
		if err != nil {
			if os.IsNotExist(err) {
				add(field, fmt.Sprintf("dir %q does not exist", dir))
			} else {
				add(field, fmt.Sprintf("stat %q: %v", dir, err))
			}
			continue
		}
		if !info.IsDir() {
			add(field, fmt.Sprintf("%q is not a directory", dir))
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
