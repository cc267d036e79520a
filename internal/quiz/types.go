package quiz

// Kind identifies how a field collects its value.
type Kind string

const (
	// KindSingle selects exactly one option.
	KindSingle Kind = "single"
	// KindMulti selects a set of options.
	KindMulti Kind = "multi"
	// KindText collects a single line of free text.
	KindText Kind = "text"
	// KindTextarea collects multi-line free text.
	KindTextarea Kind = "textarea"
)

// IsText reports whether the kind collects free-form text.
func (k Kind) IsText() bool {
	return k == KindText || k == KindTextarea
}

// IsChoice reports whether the kind picks from an option list.
func (k Kind) IsChoice() bool {
	return k == KindSingle || k == KindMulti
}

// AtMax controls what happens when a multi selection exceeds its maximum.
type AtMax string

const (
	// AtMaxTruncate silently drops selections beyond the maximum.
	AtMaxTruncate AtMax = "truncate"
	// AtMaxReject refuses a change that would exceed the maximum.
	AtMaxReject AtMax = "reject"
)

// Quiz is an ordered, immutable set of pages plus its submission policy.
type Quiz struct {
	Version    int        `json:"version" yaml:"version"`
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Pages      []Page     `json:"pages" yaml:"pages"`
	Submission Submission `json:"submission" yaml:"submission"`
}

// Page is one screen of fields.
type Page struct {
	ID        string  `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Skippable bool    `json:"skippable,omitempty" yaml:"skippable,omitempty"`
	Fields    []Field `json:"fields" yaml:"fields"`
}

// Field describes one question on a page.
type Field struct {
	ID            string   `json:"id" yaml:"id"`
	Label         string   `json:"label" yaml:"label"`
	Kind          Kind     `json:"type" yaml:"type"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	Required      bool     `json:"required,omitempty" yaml:"required,omitempty"`
	RequiredCount int      `json:"required_count,omitempty" yaml:"required_count,omitempty"`
	MinSelect     int      `json:"min_select,omitempty" yaml:"min_select,omitempty"`
	Max           int      `json:"max,omitempty" yaml:"max,omitempty"`
	AtMax         AtMax    `json:"at_max,omitempty" yaml:"at_max,omitempty"`
	MaxLength     int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Placeholder   string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Helper        string   `json:"helper,omitempty" yaml:"helper,omitempty"`
	Rows          int      `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// HasOption reports whether option is one of the field's options.
func (f Field) HasOption(option string) bool {
	for _, candidate := range f.Options {
		if candidate == option {
			return true
		}
	}
	return false
}

// Submission controls how answers leave the pager.
type Submission struct {
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
	Result   Result    `json:"result" yaml:"result"`
}

// Section is one call to the logging port. Payload maps payload keys to field
// ids; when empty, Fields are copied under their own ids.
type Section struct {
	Key     string            `json:"key" yaml:"key"`
	Fields  []string          `json:"fields,omitempty" yaml:"fields,omitempty"`
	Payload map[string]string `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// ResultMode selects the projection handed to the completion callback.
type ResultMode string

const (
	// ResultAll hands over every answer.
	ResultAll ResultMode = "all"
	// ResultFields hands over the listed fields only.
	ResultFields ResultMode = "fields"
	// ResultNone hands over an empty answer set.
	ResultNone ResultMode = "none"
)

// Result describes the completion projection.
type Result struct {
	Mode   ResultMode `json:"mode,omitempty" yaml:"mode,omitempty"`
	Fields []string   `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field looks up a field by id across every page.
func (q Quiz) Field(id string) (Field, bool) {
	for _, page := range q.Pages {
		for _, field := range page.Fields {
			if field.ID == id {
				return field, true
			}
		}
	}
	return Field{}, false
}

// FieldCount returns the number of fields across all pages.
func (q Quiz) FieldCount() int {
	count := 0
	for _, page := range q.Pages {
		count += len(page.Fields)
	}
	return count
}
