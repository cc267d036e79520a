package quiz

import "fmt"

// Hint explains why a field blocks progress.
type Hint struct {
	FieldID string
	Message string
}

// IsPageValid reports whether every field on page satisfies its constraint.
func IsPageValid(page Page, answers Answers) bool {
	for _, field := range page.Fields {
		if !FieldSatisfied(field, answers[field.ID]) {
			return false
		}
	}
	return true
}

// FieldSatisfied reports whether value meets the field's constraint. Fields
// with neither a required flag nor a required count always pass.
func FieldSatisfied(field Field, value Value) bool {
	if field.RequiredCount > 0 {
		return value.multi && len(value.choices) == field.RequiredCount
	}
	if !field.Required {
		return true
	}
	if field.Kind == KindMulti {
		return value.multi && len(value.choices) >= minSelect(field)
	}
	return !value.IsEmpty()
}

// PageHints lists the unmet constraints on page in field order.
func PageHints(page Page, answers Answers) []Hint {
	var hints []Hint
	for _, field := range page.Fields {
		if FieldSatisfied(field, answers[field.ID]) {
			continue
		}
		hints = append(hints, Hint{FieldID: field.ID, Message: hintFor(field)})
	}
	return hints
}

func hintFor(field Field) string {
	if field.RequiredCount > 0 {
		return fmt.Sprintf("Select exactly %d", field.RequiredCount)
	}
	switch field.Kind {
	case KindMulti:
		if n := minSelect(field); n > 1 {
			return fmt.Sprintf("Select at least %d", n)
		}
		return "Select at least one option"
	case KindSingle:
		return "Select an option"
	default:
		return "Please fill in this field"
	}
}

func minSelect(field Field) int {
	if field.MinSelect > 1 {
		return field.MinSelect
	}
	return 1
}

// Progress returns the percentage of pages reached when index is current.
func Progress(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= total {
		index = total - 1
	}
	return float64(index+1) / float64(total) * 100
}
