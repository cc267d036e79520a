package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"engage/internal/quiz"
)

func TestBuiltinQuizzes(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	ids := strings.Join(c.IDs(), ",")
	if ids != "interests,lifestyle,location,personality" {
		t.Fatalf("unexpected ids: %s", ids)
	}

	interests, _ := c.Get("interests")
	if len(interests.Pages) != 2 || interests.Pages[0].Skippable || interests.Pages[1].Skippable {
		t.Fatalf("unexpected interests pages: %+v", interests.Pages)
	}
	field, _ := interests.Field("causes")
	if field.Max != 3 || field.RequiredCount != 3 || len(field.Options) != 25 {
		t.Fatalf("unexpected causes field: %+v", field)
	}
	if interests.Submission.Result.Mode != quiz.ResultNone {
		t.Fatalf("expected result none, got %q", interests.Submission.Result.Mode)
	}

	location, _ := c.Get("location")
	text, _ := location.Field("location")
	if text.Kind != quiz.KindText || text.MaxLength != 120 || !text.Required {
		t.Fatalf("unexpected location field: %+v", text)
	}

	lifestyle, _ := c.Get("lifestyle")
	freeDays, _ := lifestyle.Field("freeDays")
	if freeDays.Kind != quiz.KindMulti || freeDays.MinSelect != 1 || freeDays.AtMax != quiz.AtMaxTruncate {
		t.Fatalf("unexpected freeDays field: %+v", freeDays)
	}
	if lifestyle.FieldCount() != 9 {
		t.Fatalf("expected 9 lifestyle fields, got %d", lifestyle.FieldCount())
	}
}

func TestAddDirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := `version: 1
id: location
title: Hometown
pages:
  - id: hometown
    fields:
      - id: city
        label: City
        type: text
        required: true
`
	if err := os.WriteFile(filepath.Join(dir, "location.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write quiz: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	c, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	if err := c.AddDir(dir); err != nil {
		t.Fatalf("add dir: %v", err)
	}
	entry, ok := c.Lookup("location")
	if !ok || entry.Quiz.Title != "Hometown" {
		t.Fatalf("expected override, got %+v", entry)
	}
	if entry.Source != filepath.Join(dir, "location.yaml") {
		t.Fatalf("unexpected source %q", entry.Source)
	}
	if len(c.List()) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(c.List()))
	}
}

func TestAddDirMissing(t *testing.T) {
	c := New()
	if err := c.AddDir(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Fatalf("expected missing dir to be ignored, got %v", err)
	}
	if len(c.List()) != 0 {
		t.Fatalf("expected empty catalog")
	}
}

func TestAddDirInvalidQuiz(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("version: 1\nid: broken\n"), 0o644); err != nil {
		t.Fatalf("write quiz: %v", err)
	}
	err := New().AddDir(dir)
	if err == nil || !strings.Contains(err.Error(), "broken.yml") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestFilesFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "c.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.yml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files, err := Files(dir)
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	var names []string
	for _, file := range files {
		names = append(names, filepath.Base(file))
	}
	if got := strings.Join(names, ","); got != "a.yml,b.yaml,c.json" {
		t.Fatalf("unexpected files %q", got)
	}
}
