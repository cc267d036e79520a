package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

const petsQuiz = `version: 1
id: pets
title: Pets
pages:
  - id: pets
    title: Pets
    fields:
      - id: pet
        label: Favourite pet?
        type: single
        options: ["Cat", "Dog"]
        required: true
`

// TestValidateCommandSuccess verifies validate command success path.
func TestValidateCommandSuccess(t *testing.T) {
	root, configPath := writeTestConfig(t, "version: 1\nquizzes:\n  dirs: [quizzes]\n")
	writeFile(t, filepath.Join(root, "quizzes", "pets.yml"), petsQuiz)

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Quizzes OK (5 checked)") {
		t.Fatalf("expected success message, got %q", out.String())
	}
}

// TestValidateCommandFailure verifies every broken file is reported.
func TestValidateCommandFailure(t *testing.T) {
	root, configPath := writeTestConfig(t, "version: 1\nquizzes:\n  dirs: [quizzes]\n")
	writeFile(t, filepath.Join(root, "quizzes", "a.yml"), "version: 1\nid: a\n")
	writeFile(t, filepath.Join(root, "quizzes", "b.yml"), "version: 2\nid: b\npages: []\n")

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	output := err.String()
	if !strings.Contains(output, "Validation failed:") || !strings.Contains(output, "a.yml") || !strings.Contains(output, "b.yml") {
		t.Fatalf("expected both files reported, got %q", output)
	}
}

func TestValidateCommandExplicitQuizFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "pets.yml")
	writeFile(t, good, petsQuiz)

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--quiz", good, "--quiz", good}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Quizzes OK (2 checked)") {
		t.Fatalf("expected success message, got %q", out.String())
	}

	out.Reset()
	err.Reset()
	code = Run([]string{"validate", "--quiz", filepath.Join(dir, "missing.yml")}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "missing.yml") {
		t.Fatalf("expected missing file reported, got %q", err.String())
	}
}

func TestValidateCommandBadConfig(t *testing.T) {
	_, configPath := writeTestConfig(t, "version: 1\nui:\n  mode: fancy\n")

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "ui.mode") {
		t.Fatalf("expected config issue, got %q", err.String())
	}
}
