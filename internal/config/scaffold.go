package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultConfig = `version: 1
ui:
  mode: auto
  width: 360
  height: 560
  transition_ms: 320
  no_color: false

log:
  file: ".engage/answers.jsonl"
  duckdb: ".engage/answers.duckdb"
  # sqlite: ".engage/answers.sqlite"
  diagnostics: false

quizzes:
  dirs:
    - ".engage/quizzes"
`

const exampleQuiz = `version: 1
id: weekend
title: Weekend Plans
pages:
  - id: plans
    title: Plans
    fields:
      - id: activity
        label: What are you doing this weekend?
        type: single
        options: ["Resting", "Volunteering", "Going out"]
        required: true
      - id: companions
        label: Who with?
        type: multi
        options: ["Friends", "Family", "Coworkers"]
        max: 2
  - id: notes
    title: Notes
    fields:
      - id: notes
        label: Anything else?
        type: textarea
        max_length: 280
        rows: 4
submission:
  sections:
    - key: plans
      fields: [activity, companions]
    - key: notes
      fields: [notes]
  result:
    mode: fields
    fields: [activity]
`

// Scaffold writes a default config and an example quiz next to it.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if err := ensureAbsent(configPath, "config"); err != nil {
		return err
	}

	quizDir := filepath.Join(filepath.Dir(configPath), QuizDirName)
	if err := os.MkdirAll(quizDir, 0o755); err != nil {
		return fmt.Errorf("create quizzes dir: %w", err)
	}
	quizPath := filepath.Join(quizDir, "weekend.yml")
	if err := ensureAbsent(quizPath, "quiz"); err != nil {
		return err
	}

	body := defaultConfig
	if filepath.Base(filepath.Dir(configPath)) != ConfigDirName {
		// Paths in the config are relative to the repo root, which is the
		// config's own directory outside a .engage folder.
		body = strings.ReplaceAll(body, ConfigDirName+"/", "")
	}
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(quizPath, []byte(exampleQuiz), 0o644); err != nil {
		return fmt.Errorf("write quiz file: %w", err)
	}
	return nil
}

func ensureAbsent(path, kind string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s path %q is a directory", kind, path)
		}
		return fmt.Errorf("%s file already exists at %q", kind, path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s file: %w", kind, err)
	}
	return nil
}
