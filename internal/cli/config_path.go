package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"engage/internal/catalog"
	"engage/internal/config"
)

// loadConfig loads an explicit config path, or searches upward from the
// working directory and falls back to defaults when none exists.
func loadConfig(configPath string) (config.Config, string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.LoadFrom("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(abs)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, config.RepoRootFromConfigPath(abs), nil
}

// buildCatalog layers the configured quiz directories over the built-ins.
func buildCatalog(cfg config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Builtin()
	if err != nil {
		return nil, err
	}
	for _, dir := range cfg.Quizzes.Dirs {
		if err := cat.AddDir(dir); err != nil {
			return nil, err
		}
	}
	return cat, nil
}
