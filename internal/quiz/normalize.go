package quiz

import (
	"fmt"
	"sort"
	"strings"
)

// Issue captures a validation problem in a quiz definition.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("quiz validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeQuiz trims whitespace, applies defaults, and validates a quiz.
func NormalizeQuiz(q Quiz) (Quiz, error) {
	q.ID = strings.TrimSpace(q.ID)
	q.Title = strings.TrimSpace(q.Title)
	pages := make([]Page, len(q.Pages))
	for i, page := range q.Pages {
		page.ID = strings.TrimSpace(page.ID)
		page.Title = strings.TrimSpace(page.Title)
		fields := make([]Field, len(page.Fields))
		for j, field := range page.Fields {
			fields[j] = normalizeField(field)
		}
		page.Fields = fields
		pages[i] = page
	}
	q.Pages = pages

	sections := make([]Section, len(q.Submission.Sections))
	for i, section := range q.Submission.Sections {
		section.Key = strings.TrimSpace(section.Key)
		section.Fields = normalizeStringSlice(section.Fields)
		sections[i] = section
	}
	q.Submission.Sections = sections
	q.Submission.Result.Fields = normalizeStringSlice(q.Submission.Result.Fields)
	if q.Submission.Result.Mode == "" {
		if len(q.Submission.Result.Fields) > 0 {
			q.Submission.Result.Mode = ResultFields
		} else {
			q.Submission.Result.Mode = ResultAll
		}
	}

	if err := Validate(q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func normalizeField(field Field) Field {
	field.ID = strings.TrimSpace(field.ID)
	field.Label = strings.TrimSpace(field.Label)
	field.Kind = Kind(strings.ToLower(strings.TrimSpace(string(field.Kind))))
	if field.Kind == "" {
		field.Kind = KindMulti
	}
	field.Options = normalizeStringSlice(field.Options)
	if field.Kind == KindMulti && field.AtMax == "" {
		field.AtMax = AtMaxTruncate
	}
	return field
}

// Validate checks a quiz for configuration errors without modifying it.
func Validate(q Quiz) error {
	collector := &issueCollector{}
	if q.Version == 0 {
		collector.add("version", "is required")
	} else if q.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", q.Version))
	}
	if q.ID == "" {
		collector.add("id", "is required")
	}
	if len(q.Pages) == 0 {
		collector.add("pages", "must include at least one entry")
	}

	pageIDs := map[string]struct{}{}
	fieldIDs := map[string]struct{}{}
	for i, page := range q.Pages {
		prefix := fmt.Sprintf("pages[%d]", i)
		if page.ID == "" {
			collector.add(prefix+".id", "is required")
		} else if _, exists := pageIDs[page.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", page.ID))
		} else {
			pageIDs[page.ID] = struct{}{}
		}
		if len(page.Fields) == 0 {
			collector.add(prefix+".fields", "must include at least one entry")
		}
		for j, field := range page.Fields {
			fieldPrefix := fmt.Sprintf("%s.fields[%d]", prefix, j)
			if field.ID == "" {
				collector.add(fieldPrefix+".id", "is required")
			} else if _, exists := fieldIDs[field.ID]; exists {
				collector.add(fieldPrefix+".id", fmt.Sprintf("duplicate id %q", field.ID))
			} else {
				fieldIDs[field.ID] = struct{}{}
			}
			validateField(collector, fieldPrefix, field)
		}
	}

	validateSubmission(collector, q.Submission, fieldIDs)
	return collector.result()
}

func validateField(collector *issueCollector, prefix string, field Field) {
	switch field.Kind {
	case KindSingle, KindMulti:
		if len(field.Options) == 0 {
			collector.add(prefix+".options", "must include at least one entry")
		}
		seen := map[string]struct{}{}
		for k, option := range field.Options {
			if option == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, k), "is required")
				continue
			}
			if _, exists := seen[option]; exists {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, k), fmt.Sprintf("duplicate option %q", option))
			}
			seen[option] = struct{}{}
		}
	case KindText, KindTextarea:
		if len(field.Options) > 0 {
			collector.add(prefix+".options", "not allowed for text fields")
		}
	default:
		collector.add(prefix+".type", fmt.Sprintf("unknown kind %q", field.Kind))
		return
	}

	if field.Kind != KindMulti {
		if field.RequiredCount != 0 {
			collector.add(prefix+".required_count", "only allowed for multi fields")
		}
		if field.Max != 0 {
			collector.add(prefix+".max", "only allowed for multi fields")
		}
		if field.MinSelect != 0 {
			collector.add(prefix+".min_select", "only allowed for multi fields")
		}
		if field.AtMax != "" {
			collector.add(prefix+".at_max", "only allowed for multi fields")
		}
	} else {
		options := len(field.Options)
		if field.RequiredCount < 0 {
			collector.add(prefix+".required_count", "must be positive")
		} else if field.RequiredCount > options {
			collector.add(prefix+".required_count", fmt.Sprintf("exceeds option count %d", options))
		}
		if field.Max < 0 {
			collector.add(prefix+".max", "must be positive")
		} else if field.Max > options {
			collector.add(prefix+".max", fmt.Sprintf("exceeds option count %d", options))
		}
		if field.Max > 0 && field.RequiredCount > field.Max {
			collector.add(prefix+".required_count", fmt.Sprintf("exceeds max %d", field.Max))
		}
		if field.MinSelect < 0 {
			collector.add(prefix+".min_select", "must be positive")
		} else if field.MinSelect > options {
			collector.add(prefix+".min_select", fmt.Sprintf("exceeds option count %d", options))
		}
		if field.Max > 0 && field.MinSelect > field.Max {
			collector.add(prefix+".min_select", fmt.Sprintf("exceeds max %d", field.Max))
		}
		switch field.AtMax {
		case "", AtMaxTruncate, AtMaxReject:
		default:
			collector.add(prefix+".at_max", fmt.Sprintf("unknown policy %q (expected truncate|reject)", field.AtMax))
		}
	}

	if !field.Kind.IsText() && field.MaxLength != 0 {
		collector.add(prefix+".max_length", "only allowed for text fields")
	}
	if field.MaxLength < 0 {
		collector.add(prefix+".max_length", "must be positive")
	}
}

func validateSubmission(collector *issueCollector, submission Submission, fieldIDs map[string]struct{}) {
	keys := map[string]struct{}{}
	for i, section := range submission.Sections {
		prefix := fmt.Sprintf("submission.sections[%d]", i)
		if section.Key == "" {
			collector.add(prefix+".key", "is required")
		} else if _, exists := keys[section.Key]; exists {
			collector.add(prefix+".key", fmt.Sprintf("duplicate key %q", section.Key))
		} else {
			keys[section.Key] = struct{}{}
		}
		if len(section.Fields) == 0 && len(section.Payload) == 0 {
			collector.add(prefix, "must list fields or payload")
		}
		for j, id := range section.Fields {
			if _, ok := fieldIDs[id]; !ok {
				collector.add(fmt.Sprintf("%s.fields[%d]", prefix, j), fmt.Sprintf("unknown field %q", id))
			}
		}
		payloadKeys := make([]string, 0, len(section.Payload))
		for key := range section.Payload {
			payloadKeys = append(payloadKeys, key)
		}
		sort.Strings(payloadKeys)
		for _, key := range payloadKeys {
			if strings.TrimSpace(key) == "" {
				collector.add(prefix+".payload", "keys must not be empty")
				continue
			}
			if _, ok := fieldIDs[section.Payload[key]]; !ok {
				collector.add(fmt.Sprintf("%s.payload.%s", prefix, key), fmt.Sprintf("unknown field %q", section.Payload[key]))
			}
		}
	}

	result := submission.Result
	switch result.Mode {
	case "", ResultAll, ResultNone:
		if len(result.Fields) > 0 {
			collector.add("submission.result.fields", fmt.Sprintf("not allowed with mode %q", result.Mode))
		}
	case ResultFields:
		if len(result.Fields) == 0 {
			collector.add("submission.result.fields", "must include at least one entry")
		}
		for i, id := range result.Fields {
			if _, ok := fieldIDs[id]; !ok {
				collector.add(fmt.Sprintf("submission.result.fields[%d]", i), fmt.Sprintf("unknown field %q", id))
			}
		}
	default:
		collector.add("submission.result.mode", fmt.Sprintf("unknown mode %q (expected all|fields|none)", result.Mode))
	}
}

func normalizeStringSlice(values []string) []string {
	if values == nil {
		return nil
	}
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
