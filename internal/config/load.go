package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, normalizes, and validates a config file. Overrides from
// the environment and a .env file beside the config apply before validation.
// Relative paths in the result are resolved against the repo root.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	return finish(cfg, filepath.Dir(path), RepoRootFromConfigPath(path))
}

func finish(cfg Config, envDir, root string) (Config, error) {
	env, err := ReadEnv(envDir)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, env); err != nil {
		return Config{}, fmt.Errorf("apply env: %w", err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg, root); err != nil {
		return Config{}, err
	}
	Resolve(&cfg, root)
	return cfg, nil
}

// LoadFrom finds the config by searching upward from startDir and loads it.
// When none exists it returns the defaults with environment overrides. The
// root is the directory holding .engage, or the start directory when there is
// none.
func LoadFrom(startDir string) (Config, string, error) {
	start, root, path, err := Locate(startDir)
	if errors.Is(err, ErrConfigNotFound) {
		root = start
	} else if err != nil {
		return Config{}, "", err
	}
	if path == "" {
		cfg, err := finish(Config{Version: 1}, ConfigDir(root), root)
		if err != nil {
			return Config{}, "", err
		}
		return cfg, root, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, root, nil
}

// Parse decodes a single strict YAML document.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config: empty document")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var trailing yaml.Node
	if err := decoder.Decode(&trailing); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
