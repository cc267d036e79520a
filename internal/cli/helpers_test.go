package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"engage/internal/config"
)

const plainConfig = `version: 1
ui:
  mode: plain
  transition_ms: 1
log:
  file: answers.jsonl
  duckdb: answers.duckdb
  diagnostics: false
`

// writeTestConfig writes body to <root>/.engage/config.yml in a fresh temp dir.
func writeTestConfig(t *testing.T, body string) (string, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(config.ConfigDir(root), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	path := config.ConfigPath(root)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return root, path
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// withInput points a stdin override at input for the duration of the test.
func withInput(t *testing.T, target *io.Reader, input string) {
	t.Helper()
	original := *target
	*target = strings.NewReader(input)
	t.Cleanup(func() { *target = original })
}

// withTTY makes every writer look like a terminal.
func withTTY(t *testing.T) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = original })
}
