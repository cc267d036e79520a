package config

import "time"

// UI modes accepted by ui.mode and the --ui flag.
const (
	UIModeAuto  = "auto"
	UIModeLive  = "live"
	UIModePlain = "plain"
)

// Defaults applied during normalization.
const (
	DefaultWidth        = 360
	DefaultHeight       = 560
	DefaultTransitionMS = 320
)

// Config is the top-level .engage/config.yml document.
type Config struct {
	Version int           `yaml:"version"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
	Quizzes QuizzesConfig `yaml:"quizzes"`
}

// UIConfig controls the terminal host.
type UIConfig struct {
	Mode         string `yaml:"mode"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	TransitionMS int    `yaml:"transition_ms"`
	NoColor      bool   `yaml:"no_color"`
}

// Transition returns the per-phase transition duration.
func (ui UIConfig) Transition() time.Duration {
	return time.Duration(ui.TransitionMS) * time.Millisecond
}

// LogConfig selects where submitted sections are recorded.
type LogConfig struct {
	File        string `yaml:"file"`
	DuckDB      string `yaml:"duckdb"`
	SQLite      string `yaml:"sqlite"`
	Diagnostics *bool  `yaml:"diagnostics"`
}

// DiagnosticsEnabled reports whether "[quiz log]" lines go to stderr. It
// defaults to true when no other sink is configured.
func (l LogConfig) DiagnosticsEnabled() bool {
	if l.Diagnostics != nil {
		return *l.Diagnostics
	}
	return l.File == "" && l.DuckDB == "" && l.SQLite == ""
}

// QuizzesConfig lists extra directories of quiz definitions.
type QuizzesConfig struct {
	Dirs []string `yaml:"dirs"`
}

// Default returns the built-in configuration, before environment overrides.
func Default() Config {
	cfg := Config{Version: 1}
	Normalize(&cfg)
	return cfg
}
