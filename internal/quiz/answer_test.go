package quiz

import (
	"errors"
	"testing"
)

func pickThree() Field {
	return Field{
		ID:            "interests",
		Kind:          KindMulti,
		Options:       []string{"Music", "Art", "Reading", "Hiking", "Coding"},
		Max:           3,
		RequiredCount: 3,
		AtMax:         AtMaxTruncate,
	}
}

// TestNormalizeValueDedupesAndTruncates verifies the multi cap and dedupe.
func TestNormalizeValueDedupesAndTruncates(t *testing.T) {
	value, err := NormalizeValue(pickThree(), Choices("Art", "Art", "Music", "Reading", "Hiking", "Music"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	got := value.List()
	want := []string{"Art", "Music", "Reading"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestNormalizeValueNeverExceedsMax checks every input length and duplicate mix.
func TestNormalizeValueNeverExceedsMax(t *testing.T) {
	field := pickThree()
	options := append(field.Options, field.Options...)
	for n := 0; n <= len(options); n++ {
		value, err := NormalizeValue(field, Choices(options[:n]...))
		if err != nil {
			t.Fatalf("normalize %d: %v", n, err)
		}
		if value.Len() > field.Max {
			t.Fatalf("input %d: stored %d selections, max %d", n, value.Len(), field.Max)
		}
		seen := map[string]bool{}
		for _, choice := range value.List() {
			if seen[choice] {
				t.Fatalf("input %d: duplicate %q in %v", n, choice, value.List())
			}
			seen[choice] = true
		}
	}
}

// TestNormalizeValueDropsUnknownOptions verifies stray options are ignored.
func TestNormalizeValueDropsUnknownOptions(t *testing.T) {
	value, err := NormalizeValue(pickThree(), Choices("Nope", "Art"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if value.Len() != 1 || !value.Contains("Art") {
		t.Fatalf("expected only Art, got %v", value.List())
	}
}

// TestNormalizeValueRejectPolicy verifies the strict cap refuses overflow.
func TestNormalizeValueRejectPolicy(t *testing.T) {
	field := pickThree()
	field.AtMax = AtMaxReject
	if _, err := NormalizeValue(field, Choices("Art", "Music", "Reading")); err != nil {
		t.Fatalf("expected three selections to pass, got %v", err)
	}
	_, err := NormalizeValue(field, Choices("Art", "Music", "Reading", "Coding"))
	if !errors.Is(err, ErrSelectionLimit) {
		t.Fatalf("expected selection limit error, got %v", err)
	}
}

// TestNormalizeValueSingle verifies option membership for single fields.
func TestNormalizeValueSingle(t *testing.T) {
	field := Field{ID: "age", Kind: KindSingle, Options: []string{"<18", "18–20"}}
	if _, err := NormalizeValue(field, Text("18–20")); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if _, err := NormalizeValue(field, Text("99")); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected unknown option, got %v", err)
	}
	if _, err := NormalizeValue(field, Choices("<18")); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}

// TestNormalizeValueTextLimit verifies rune truncation for text fields.
func TestNormalizeValueTextLimit(t *testing.T) {
	field := Field{ID: "location", Kind: KindText, MaxLength: 5}
	value, err := NormalizeValue(field, Text("Zürich, CH"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if value.String() != "Züric" {
		t.Fatalf("expected first five runes, got %q", value.String())
	}
}

// TestToggleMulti verifies toggle adds and removes choices.
func TestToggleMulti(t *testing.T) {
	field := pickThree()
	value := Toggle(field, Choices(), "Art")
	value = Toggle(field, value, "Music")
	value = Toggle(field, value, "Art")
	if value.Len() != 1 || !value.Contains("Music") {
		t.Fatalf("expected only Music, got %v", value.List())
	}
}
