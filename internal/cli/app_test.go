package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"engage/internal/quiz"
	"engage/internal/ui/home"
	"engage/internal/ui/swiper"
)

func TestAppRequiresTerminal(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"app"}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "needs a terminal") {
		t.Fatalf("expected terminal message, got %q", err.String())
	}
}

func TestAppReportsCompletedQuizzes(t *testing.T) {
	_, configPath := writeTestConfig(t, "version: 1\nlog:\n  diagnostics: false\n")
	withTTY(t)
	original := runHomeProgram
	runHomeProgram = func(_ context.Context, model home.Model, _ io.Reader, _ io.Writer) (home.Model, error) {
		next, _ := model.Update(swiper.DoneMsg{QuizID: "location", Result: quiz.Answers{"location": quiz.Text("Lisbon")}})
		model = next.(home.Model)
		next, _ = model.Update(swiper.DoneMsg{QuizID: "lifestyle"})
		return next.(home.Model), nil
	}
	t.Cleanup(func() { runHomeProgram = original })

	var out, err bytes.Buffer
	code := Run([]string{"app", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Completed: lifestyle, location") {
		t.Fatalf("expected completed list, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Additional information: 33% complete") {
		t.Fatalf("expected completion, got %q", out.String())
	}
}

func TestAppNothingCompleted(t *testing.T) {
	_, configPath := writeTestConfig(t, "version: 1\n")
	withTTY(t)
	original := runHomeProgram
	runHomeProgram = func(_ context.Context, model home.Model, _ io.Reader, _ io.Writer) (home.Model, error) {
		next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		return next.(home.Model), nil
	}
	t.Cleanup(func() { runHomeProgram = original })

	var out, err bytes.Buffer
	if code := Run([]string{"app", "--config", configPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "No quizzes completed.") {
		t.Fatalf("expected empty summary, got %q", out.String())
	}
}
