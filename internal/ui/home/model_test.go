package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"engage/internal/catalog"
	"engage/internal/pager"
	"engage/internal/testutil"
	"engage/internal/ui/swiper"
)

func newHome(t *testing.T) Model {
	t.Helper()
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("builtin catalog: %v", err)
	}
	m, err := New(Options{
		Catalog: c,
		NoColor: true,
		Swiper: swiper.Options{
			Clock:  testutil.NewFakeClock(time.Unix(0, 0)),
			Logger: pager.LoggerFunc(func(context.Context, pager.Entry) error { return nil }),
		},
	})
	if err != nil {
		t.Fatalf("new home: %v", err)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func keys(t *testing.T, m Model, types ...tea.KeyType) Model {
	t.Helper()
	for _, kind := range types {
		m, _ = send(t, m, tea.KeyMsg{Type: kind})
	}
	return m
}

func TestNavigateToAdditionalInformation(t *testing.T) {
	m := newHome(t)
	if m.view != viewHome || !strings.Contains(m.View(), "Welcome") {
		t.Fatalf("expected home view")
	}
	m = keys(t, m, tea.KeyDown, tea.KeyEnter)
	if m.view != viewAdditional {
		t.Fatalf("expected additional view, got %s", m.view)
	}
	if !strings.Contains(m.View(), "0 of 3 sections complete") {
		t.Fatalf("expected progress caption:\n%s", m.View())
	}
	m = keys(t, m, tea.KeyEsc)
	if m.view != viewHome {
		t.Fatalf("expected esc to return home, got %s", m.view)
	}
}

func TestCompletedQuizUpdatesProgress(t *testing.T) {
	m := newHome(t)
	m = keys(t, m, tea.KeyDown, tea.KeyEnter)
	// personality, interests, location
	m = keys(t, m, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	if m.view != viewQuiz || m.active != "location" {
		t.Fatalf("expected location quiz, got %s/%s", m.view, m.active)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Newark")})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected submission command")
	}
	m, cmd = send(t, m, cmd())
	if cmd == nil {
		t.Fatalf("expected completion command")
	}
	m, _ = send(t, m, cmd())

	if m.view != viewAdditional {
		t.Fatalf("expected to return to additional view, got %s", m.view)
	}
	if got := m.Results()["location"]["location"].String(); got != "Newark" {
		t.Fatalf("expected location result, got %q", got)
	}
	if m.Completion() < 0.33 || m.Completion() > 0.34 {
		t.Fatalf("unexpected completion %f", m.Completion())
	}
	if !strings.Contains(m.View(), "1 of 3 sections complete") || !strings.Contains(m.View(), "✓ Completed") {
		t.Fatalf("expected completed section in view:\n%s", m.View())
	}
}

func TestCancelReturnsToMenu(t *testing.T) {
	m := newHome(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewQuiz || m.active != "lifestyle" {
		t.Fatalf("expected lifestyle quiz, got %s/%s", m.view, m.active)
	}
	m, _ = send(t, m, swiper.CancelMsg{QuizID: "lifestyle"})
	if m.view != viewHome {
		t.Fatalf("expected home after cancel, got %s", m.view)
	}
	if _, ok := m.Results()["lifestyle"]; ok {
		t.Fatalf("expected no result for a canceled quiz")
	}
}

func TestDoneWithoutResultFields(t *testing.T) {
	m := newHome(t)
	m.back = viewAdditional
	m.view = viewQuiz
	m, _ = send(t, m, swiper.DoneMsg{QuizID: "interests"})
	if m.view != viewAdditional {
		t.Fatalf("expected additional view, got %s", m.view)
	}
	if result, ok := m.Results()["interests"]; !ok || result == nil {
		t.Fatalf("expected empty result to be recorded")
	}
}

func TestNewRequiresCatalog(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without catalog")
	}
	if _, err := New(Options{Catalog: catalog.New()}); err == nil {
		t.Fatalf("expected error for missing quizzes")
	}
}

func TestMenuCursorFollowsKeys(t *testing.T) {
	m := newHome(t)
	m = keys(t, m, tea.KeyDown)
	if got := m.home.Index(); got != 1 {
		t.Fatalf("expected home cursor on row 1, got %d", got)
	}
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = keys(t, m, tea.KeyDown)
	if got := m.home.Index(); got != 2 {
		t.Fatalf("expected home cursor on row 2 after resize, got %d", got)
	}
	m = keys(t, m, tea.KeyUp, tea.KeyEnter)
	if m.view != viewAdditional {
		t.Fatalf("expected additional view, got %s", m.view)
	}
	m = keys(t, m, tea.KeyDown, tea.KeyDown)
	if got := m.extra.Index(); got != 2 {
		t.Fatalf("expected submenu cursor on row 2, got %d", got)
	}
	if got := m.home.Index(); got != 1 {
		t.Fatalf("expected home cursor to stay on row 1, got %d", got)
	}
}
