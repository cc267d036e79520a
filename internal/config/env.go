package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileName is the dotenv file read from the config directory.
const EnvFileName = ".env"

// Environment variables that override config values. The process
// environment takes precedence over the dotenv file.
const (
	EnvUIMode         = "ENGAGE_UI_MODE"
	EnvUINoColor      = "ENGAGE_UI_NO_COLOR"
	EnvLogFile        = "ENGAGE_LOG_FILE"
	EnvLogDuckDB      = "ENGAGE_LOG_DUCKDB"
	EnvLogSQLite      = "ENGAGE_LOG_SQLITE"
	EnvLogDiagnostics = "ENGAGE_LOG_DIAGNOSTICS"
)

var envKeys = []string{EnvUIMode, EnvUINoColor, EnvLogFile, EnvLogDuckDB, EnvLogSQLite, EnvLogDiagnostics}

// ReadEnv collects the override variables from dir/.env and the process
// environment. A missing dotenv file is not an error.
func ReadEnv(dir string) (map[string]string, error) {
	values := map[string]string{}
	path := filepath.Join(dir, EnvFileName)
	fileValues, err := godotenv.Read(path)
	switch {
	case err == nil:
		for _, key := range envKeys {
			if value, ok := fileValues[key]; ok {
				values[key] = value
			}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, key := range envKeys {
		if value, ok := os.LookupEnv(key); ok {
			values[key] = value
		}
	}
	return values, nil
}

// ApplyEnv overlays override variables onto cfg. Empty values are ignored.
func ApplyEnv(cfg *Config, env map[string]string) error {
	if cfg == nil {
		return nil
	}
	set := func(key string, target *string) {
		if value := strings.TrimSpace(env[key]); value != "" {
			*target = value
		}
	}
	set(EnvUIMode, &cfg.UI.Mode)
	set(EnvLogFile, &cfg.Log.File)
	set(EnvLogDuckDB, &cfg.Log.DuckDB)
	set(EnvLogSQLite, &cfg.Log.SQLite)

	if value := strings.TrimSpace(env[EnvUINoColor]); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUINoColor, err)
		}
		cfg.UI.NoColor = parsed
	}
	if value := strings.TrimSpace(env[EnvLogDiagnostics]); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogDiagnostics, err)
		}
		cfg.Log.Diagnostics = &parsed
	}
	return nil
}
