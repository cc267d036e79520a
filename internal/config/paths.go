package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout of the per-repo engage directory.
const (
	ConfigDirName  = ".engage"
	ConfigFileName = "config.yml"
	QuizDirName    = "quizzes"
)

// ErrConfigNotFound indicates no config file exists in the searched directories.
var ErrConfigNotFound = errors.New("config not found")

// ConfigDir returns the .engage directory under the repo root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns the full config file path under the repo root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RepoRootFromConfigPath derives the repo root from a config file path. A
// config outside a .engage directory roots the repo at its own directory.
func RepoRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// Locate searches upward from startDir (default: the working directory) for
// a .engage directory. It returns the absolute start directory, the root
// holding the first .engage found, and its config file, which is empty when
// the directory carries only logs or a .env file. When no .engage exists up to
// the filesystem root, root is empty and err wraps ErrConfigNotFound.
func Locate(startDir string) (start, root, configPath string, err error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return "", "", "", fmt.Errorf("get working directory: %w", err)
		}
	}
	if start, err = filepath.Abs(dir); err != nil {
		return "", "", "", fmt.Errorf("resolve start directory: %w", err)
	}

	for dir = start; ; dir = filepath.Dir(dir) {
		info, statErr := os.Stat(ConfigDir(dir))
		switch {
		case statErr == nil && info.IsDir():
			configPath, err = configIn(dir)
			return start, dir, configPath, err
		case statErr != nil && !os.IsNotExist(statErr):
			return start, "", "", fmt.Errorf("stat %q: %w", ConfigDir(dir), statErr)
		}
		if filepath.Dir(dir) == dir {
			return start, "", "", fmt.Errorf("%w: no %s in %s or parent directories",
				ErrConfigNotFound, filepath.Join(ConfigDirName, ConfigFileName), start)
		}
	}
}

func configIn(root string) (string, error) {
	path := ConfigPath(root)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", fmt.Errorf("config path %q is a directory", path)
	case err == nil:
		return path, nil
	case os.IsNotExist(err):
		return "", nil
	default:
		return "", fmt.Errorf("stat config path %q: %w", path, err)
	}
}

// FindConfigPath searches upward from a directory for a config file. A
// .engage directory without config.yml ends the search with ErrConfigNotFound.
func FindConfigPath(startDir string) (string, error) {
	_, root, path, err := Locate(startDir)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("%w: %s has no %s", ErrConfigNotFound, ConfigDir(root), ConfigFileName)
	}
	return path, nil
}
