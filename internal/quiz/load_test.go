package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadQuizYAML verifies YAML quizzes load and normalize properly.
func TestLoadQuizYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quiz.yml")
	payload := `version: 1
id: " personality "
title: Personality
pages:
  - id: personality-1
    title: Personality
    fields:
      - id: decisionStyle
        label: "  Logic or gut? "
        type: single
        options: [" Logic ", "Gut instinct"]
        required: true
      - id: hobbies
        label: Hobbies
        options: [Chess, Film]
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write quiz: %v", err)
	}
	q, err := LoadQuiz(path)
	if err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	if q.ID != "personality" {
		t.Fatalf("expected trimmed id, got %q", q.ID)
	}
	field := q.Pages[0].Fields[0]
	if field.Label != "Logic or gut?" || field.Options[0] != "Logic" {
		t.Fatalf("expected trimmed field, got %+v", field)
	}
	hobbies := q.Pages[0].Fields[1]
	if hobbies.Kind != KindMulti || hobbies.AtMax != AtMaxTruncate {
		t.Fatalf("expected multi default with truncate policy, got %+v", hobbies)
	}
	if q.Submission.Result.Mode != ResultAll {
		t.Fatalf("expected default result mode all, got %q", q.Submission.Result.Mode)
	}
}

// TestLoadQuizJSON verifies JSON quizzes are parsed and validated.
func TestLoadQuizJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quiz.json")
	payload := `{
  "version": 1,
  "id": "location",
  "pages": [
    {"id": "locationPage", "fields": [{"id": "location", "type": "text", "required": true, "max_length": 120}]}
  ],
  "submission": {"result": {"fields": ["location"]}}
}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write quiz: %v", err)
	}
	q, err := LoadQuiz(path)
	if err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	if q.Submission.Result.Mode != ResultFields {
		t.Fatalf("expected fields mode inferred, got %q", q.Submission.Result.Mode)
	}
}

// TestLoadQuizUnknownField verifies strict decoding.
func TestLoadQuizUnknownField(t *testing.T) {
	_, err := ParseQuiz([]byte("version: 1\nid: x\ncolour: blue\n"), FormatYAML)
	if err == nil || !strings.Contains(err.Error(), "parse yaml") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

// TestLoadQuizValidationErrors verifies configuration errors are collected.
func TestLoadQuizValidationErrors(t *testing.T) {
	payload := `version: 1
id: broken
pages:
  - id: p1
    fields:
      - id: dup
        type: multi
        options: [a, b]
        required_count: 3
      - id: dup
        type: text
        options: [x]
  - id: p1
    fields:
      - id: pick
        type: radio
submission:
  sections:
    - key: s
      fields: [missing]
  result:
    mode: fields
`
	_, err := ParseQuiz([]byte(payload), FormatYAML)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{
		"pages[0].fields[0].required_count",
		"pages[0].fields[1].id",
		"pages[0].fields[1].options",
		"pages[1].id",
		"pages[1].fields[0].type",
		"submission.sections[0].fields[0]",
		"submission.result.fields",
	}
	for _, field := range want {
		if !hasIssue(validationErr, field) {
			t.Fatalf("expected issue for %s, got %v", field, validationErr)
		}
	}
}

func hasIssue(err *ValidationError, field string) bool {
	for _, issue := range err.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

func TestParseQuizRejectsMultipleDocuments(t *testing.T) {
	yamlDocs := "version: 1\nid: first\n---\nversion: 1\nid: second\n"
	if _, err := ParseQuiz([]byte(yamlDocs), FormatYAML); err == nil || !strings.Contains(err.Error(), "multiple documents") {
		t.Fatalf("expected multiple document error for yaml, got %v", err)
	}
	jsonDocs := `{"version": 1, "id": "first"} {"version": 1, "id": "second"}`
	if _, err := ParseQuiz([]byte(jsonDocs), FormatJSON); err == nil || !strings.Contains(err.Error(), "multiple documents") {
		t.Fatalf("expected multiple document error for json, got %v", err)
	}
}
