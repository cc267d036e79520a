package quiz

import (
	"encoding/json"
	"sort"
	"strings"
)

// Value is a single answer: a string for single/text fields, or an ordered
// duplicate-free set of strings for multi fields.
type Value struct {
	text    string
	choices []string
	multi   bool
}

// Text builds a string value for single, text, and textarea fields.
func Text(text string) Value {
	return Value{text: text}
}

// Choices builds a set value for multi fields. Duplicates are kept until the
// value is normalized against its field.
func Choices(choices ...string) Value {
	copied := make([]string, len(choices))
	copy(copied, choices)
	return Value{choices: copied, multi: true}
}

// IsMulti reports whether the value is a set.
func (v Value) IsMulti() bool {
	return v.multi
}

// String returns the string form of a scalar value.
func (v Value) String() string {
	return v.text
}

// List returns a copy of the selected choices.
func (v Value) List() []string {
	if len(v.choices) == 0 {
		return nil
	}
	out := make([]string, len(v.choices))
	copy(out, v.choices)
	return out
}

// Len returns the number of selected choices.
func (v Value) Len() int {
	return len(v.choices)
}

// Contains reports whether choice is selected.
func (v Value) Contains(choice string) bool {
	for _, candidate := range v.choices {
		if candidate == choice {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing meaningful has been answered.
func (v Value) IsEmpty() bool {
	if v.multi {
		return len(v.choices) == 0
	}
	return strings.TrimSpace(v.text) == ""
}

// Equal compares two values for identical content and shape.
func (v Value) Equal(other Value) bool {
	if v.multi != other.multi || v.text != other.text || len(v.choices) != len(other.choices) {
		return false
	}
	for i := range v.choices {
		if v.choices[i] != other.choices[i] {
			return false
		}
	}
	return true
}

// trimmed returns the value with scalar text whitespace-trimmed.
func (v Value) trimmed() Value {
	if v.multi {
		return v
	}
	return Text(strings.TrimSpace(v.text))
}

// MarshalJSON encodes scalars as strings and sets as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		list := v.choices
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = Text(text)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = Choices(list...)
	return nil
}

// Answers maps field ids to values.
type Answers map[string]Value

// Clone returns an independent copy of the answers.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for id, value := range a {
		out[id] = Value{text: value.text, choices: value.List(), multi: value.multi}
	}
	return out
}

// Project returns the subset of answers for the listed field ids. Missing
// fields are omitted and text values are trimmed.
func (a Answers) Project(ids []string) Answers {
	out := make(Answers, len(ids))
	for _, id := range ids {
		value, ok := a[id]
		if !ok {
			continue
		}
		out[id] = value.trimmed()
	}
	return out
}

// IDs returns the answered field ids in sorted order.
func (a Answers) IDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
