package config

import (
	"path/filepath"
	"strings"
)

// Normalize trims values and fills defaults.
func Normalize(cfg *Config) {
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = UIModeAuto
	}
	if cfg.UI.Width == 0 {
		cfg.UI.Width = DefaultWidth
	}
	if cfg.UI.Height == 0 {
		cfg.UI.Height = DefaultHeight
	}
	if cfg.UI.TransitionMS == 0 {
		cfg.UI.TransitionMS = DefaultTransitionMS
	}
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
	cfg.Log.DuckDB = strings.TrimSpace(cfg.Log.DuckDB)
	cfg.Log.SQLite = strings.TrimSpace(cfg.Log.SQLite)

	dirs := make([]string, 0, len(cfg.Quizzes.Dirs))
	for _, dir := range cfg.Quizzes.Dirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	cfg.Quizzes.Dirs = dirs
}

// Resolve makes relative paths absolute against root.
func Resolve(cfg *Config, root string) {
	cfg.Log.File = resolvePath(root, cfg.Log.File)
	cfg.Log.DuckDB = resolvePath(root, cfg.Log.DuckDB)
	cfg.Log.SQLite = resolvePath(root, cfg.Log.SQLite)
	for i, dir := range cfg.Quizzes.Dirs {
		cfg.Quizzes.Dirs[i] = resolvePath(root, dir)
	}
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
