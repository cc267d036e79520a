package quiz

import (
	"errors"
	"fmt"
)

// ErrUnknownOption indicates a single-choice value outside the option list.
var ErrUnknownOption = errors.New("unknown option")

// ErrSelectionLimit indicates a multi selection beyond its maximum under the
// reject policy.
var ErrSelectionLimit = errors.New("selection limit reached")

// ErrKindMismatch indicates a set value for a scalar field or the reverse.
var ErrKindMismatch = errors.New("value does not match field kind")

// NormalizeValue coerces an incoming value into the stored form for field.
// Multi values drop unknown options and duplicates, keeping first occurrence
// order, then are capped at the field maximum. Text values are capped at the
// field's rune limit.
func NormalizeValue(field Field, value Value) (Value, error) {
	switch field.Kind {
	case KindMulti:
		if !value.multi {
			if value.text == "" {
				return Choices(), nil
			}
			return Value{}, fmt.Errorf("field %q: %w", field.ID, ErrKindMismatch)
		}
		return normalizeChoices(field, value.choices)
	case KindSingle:
		if value.multi {
			return Value{}, fmt.Errorf("field %q: %w", field.ID, ErrKindMismatch)
		}
		if value.text == "" {
			return Text(""), nil
		}
		if !field.HasOption(value.text) {
			return Value{}, fmt.Errorf("field %q: %w %q", field.ID, ErrUnknownOption, value.text)
		}
		return Text(value.text), nil
	default:
		if value.multi {
			return Value{}, fmt.Errorf("field %q: %w", field.ID, ErrKindMismatch)
		}
		return Text(truncateRunes(value.text, field.MaxLength)), nil
	}
}

func normalizeChoices(field Field, choices []string) (Value, error) {
	seen := make(map[string]struct{}, len(choices))
	unique := make([]string, 0, len(choices))
	for _, choice := range choices {
		if !field.HasOption(choice) {
			continue
		}
		if _, ok := seen[choice]; ok {
			continue
		}
		seen[choice] = struct{}{}
		unique = append(unique, choice)
	}
	if field.Max > 0 && len(unique) > field.Max {
		if field.AtMax == AtMaxReject {
			return Value{}, fmt.Errorf("field %q: %w (max %d)", field.ID, ErrSelectionLimit, field.Max)
		}
		unique = unique[:field.Max]
	}
	return Value{choices: unique, multi: true}, nil
}

// Toggle returns value with option added or removed. Scalar fields take the
// option as their value.
func Toggle(field Field, value Value, option string) Value {
	if field.Kind != KindMulti {
		return Text(option)
	}
	if value.Contains(option) {
		kept := make([]string, 0, len(value.choices))
		for _, choice := range value.choices {
			if choice != option {
				kept = append(kept, choice)
			}
		}
		return Choices(kept...)
	}
	return Choices(append(value.List(), option)...)
}

func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
