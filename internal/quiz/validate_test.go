package quiz

import "testing"

// TestIsPageValidRequiredCount verifies both directions for exact counts.
func TestIsPageValidRequiredCount(t *testing.T) {
	page := Page{ID: "interestsPage", Fields: []Field{pickThree()}}
	cases := map[int]bool{0: false, 1: false, 2: false, 3: true}
	options := pickThree().Options
	for n, want := range cases {
		answers := Answers{"interests": Choices(options[:n]...)}
		if got := IsPageValid(page, answers); got != want {
			t.Fatalf("%d selections: expected %v, got %v", n, want, got)
		}
	}
}

// TestIsPageValidRequired verifies required fields of every kind.
func TestIsPageValidRequired(t *testing.T) {
	page := Page{ID: "p", Fields: []Field{
		{ID: "age", Kind: KindSingle, Options: []string{"a", "b"}, Required: true},
		{ID: "days", Kind: KindMulti, Options: []string{"Mon", "Tue"}, Required: true},
		{ID: "city", Kind: KindText, Required: true},
	}}
	answers := Answers{}
	if IsPageValid(page, answers) {
		t.Fatalf("expected empty answers to be invalid")
	}
	answers["age"] = Text("a")
	answers["days"] = Choices("Mon")
	answers["city"] = Text("   ")
	if IsPageValid(page, answers) {
		t.Fatalf("expected whitespace text to be invalid")
	}
	answers["city"] = Text("Newark")
	if !IsPageValid(page, answers) {
		t.Fatalf("expected page to be valid")
	}
	answers["days"] = Choices()
	if IsPageValid(page, answers) {
		t.Fatalf("expected empty multi to be invalid")
	}
}

// TestIsPageValidMinSelect verifies the lower bound on required multi fields.
func TestIsPageValidMinSelect(t *testing.T) {
	page := Page{ID: "p", Fields: []Field{
		{ID: "days", Kind: KindMulti, Options: []string{"Mon", "Tue", "Wed"}, Required: true, MinSelect: 2},
	}}
	if IsPageValid(page, Answers{"days": Choices("Mon")}) {
		t.Fatalf("expected one selection to be invalid")
	}
	if !IsPageValid(page, Answers{"days": Choices("Mon", "Wed")}) {
		t.Fatalf("expected two selections to be valid")
	}
}

// TestIsPageValidUnconstrained verifies optional fields always pass.
func TestIsPageValidUnconstrained(t *testing.T) {
	page := Page{ID: "goals", Fields: []Field{
		{ID: "volunteerHours", Kind: KindSingle, Options: []string{"1–3"}},
		{ID: "notes", Kind: KindTextarea},
	}}
	if !IsPageValid(page, Answers{}) {
		t.Fatalf("expected unconstrained page to be valid")
	}
}

// TestPageHints verifies hint text for unmet constraints.
func TestPageHints(t *testing.T) {
	page := Page{ID: "p", Fields: []Field{
		pickThree(),
		{ID: "age", Kind: KindSingle, Options: []string{"a"}, Required: true},
		{ID: "opt", Kind: KindSingle, Options: []string{"a"}},
	}}
	hints := PageHints(page, Answers{"interests": Choices("Art")})
	if len(hints) != 2 {
		t.Fatalf("expected 2 hints, got %+v", hints)
	}
	if hints[0].FieldID != "interests" || hints[0].Message != "Select exactly 3" {
		t.Fatalf("unexpected first hint: %+v", hints[0])
	}
	if hints[1].FieldID != "age" {
		t.Fatalf("unexpected second hint: %+v", hints[1])
	}
}

// TestProgress verifies percentage bounds.
func TestProgress(t *testing.T) {
	if got := Progress(0, 4); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
	if got := Progress(3, 4); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := Progress(9, 4); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
	if got := Progress(0, 0); got != 0 {
		t.Fatalf("expected 0 for empty quiz, got %v", got)
	}
}
