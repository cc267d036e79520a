package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryAfterTake(t *testing.T) {
	root, configPath := writeTestConfig(t, plainConfig)
	for _, input := range []string{"Newark\n", "Lisbon\n"} {
		withInput(t, &takeInput, input)
		var out, err bytes.Buffer
		if code := Run([]string{"take", "--config", configPath, "location"}, &out, &err); code != ExitOK {
			t.Fatalf("take: expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
		}
	}

	var out, err bytes.Buffer
	code := Run([]string{"history", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", out.String())
	}
	if !strings.Contains(lines[0], "RECORDED") || !strings.Contains(lines[1], `{"location":"Newark"}`) || !strings.Contains(lines[2], `{"location":"Lisbon"}`) {
		t.Fatalf("unexpected history output %q", out.String())
	}

	out.Reset()
	code = Run([]string{"history", "--duckdb", filepath.Join(root, "answers.duckdb"), "--quiz", "lifestyle"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "No sections recorded.") {
		t.Fatalf("expected empty history, got %q", out.String())
	}
}

func TestHistoryRequiresDatabase(t *testing.T) {
	_, configPath := writeTestConfig(t, "version: 1\n")

	var out, err bytes.Buffer
	code := Run([]string{"history", "--config", configPath}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "No database log configured") {
		t.Fatalf("expected missing database message, got %q", err.String())
	}

	err.Reset()
	code = Run([]string{"history", "--duckdb", filepath.Join(t.TempDir(), "missing.duckdb")}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "missing.duckdb") {
		t.Fatalf("expected path in error, got %q", err.String())
	}
}

func TestHistoryReadsSQLite(t *testing.T) {
	root, configPath := writeTestConfig(t, `version: 1
ui:
  mode: plain
  transition_ms: 1
log:
  sqlite: answers.sqlite
  diagnostics: false
`)
	withInput(t, &takeInput, "Newark\n")
	var out, err bytes.Buffer
	if code := Run([]string{"take", "--config", configPath, "location"}, &out, &err); code != ExitOK {
		t.Fatalf("take: expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}

	for _, args := range [][]string{
		{"history", "--config", configPath},
		{"history", "--sqlite", filepath.Join(root, "answers.sqlite")},
	} {
		out.Reset()
		if code := Run(args, &out, &err); code != ExitOK {
			t.Fatalf("%v: expected exit %d, got %d (stderr %q)", args, ExitOK, code, err.String())
		}
		if !strings.Contains(out.String(), `{"location":"Newark"}`) {
			t.Fatalf("%v: unexpected history output %q", args, out.String())
		}
	}
}

func TestHistoryRejectsBothDatabases(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"history", "--duckdb", "a.duckdb", "--sqlite", "a.sqlite"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
