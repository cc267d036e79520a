package quiz

// SectionPayload is the data handed to the logging port for one section.
type SectionPayload struct {
	Key     string
	Payload map[string]any
}

// Sections builds the per-section payloads for a completed answer set. A quiz
// without configured sections logs every answer under its own id.
func Sections(q Quiz, answers Answers) []SectionPayload {
	if len(q.Submission.Sections) == 0 {
		return []SectionPayload{{Key: q.ID, Payload: payloadFor(answers.Project(allFieldIDs(q)))}}
	}
	out := make([]SectionPayload, 0, len(q.Submission.Sections))
	for _, section := range q.Submission.Sections {
		payload := map[string]any{}
		for _, id := range section.Fields {
			payload[id] = exportValue(q, id, answers)
		}
		for key, id := range section.Payload {
			payload[key] = exportValue(q, id, answers)
		}
		out = append(out, SectionPayload{Key: section.Key, Payload: payload})
	}
	return out
}

// ResultFor applies the quiz's completion projection to answers.
func ResultFor(q Quiz, answers Answers) Answers {
	switch q.Submission.Result.Mode {
	case ResultNone:
		return Answers{}
	case ResultFields:
		return answers.Project(q.Submission.Result.Fields)
	default:
		return answers.Project(allFieldIDs(q))
	}
}

// exportValue returns the plain form of an answer; unanswered fields export
// as an empty string or empty list depending on kind.
func exportValue(q Quiz, id string, answers Answers) any {
	value, ok := answers[id]
	if !ok {
		if field, found := q.Field(id); found && field.Kind == KindMulti {
			return []string{}
		}
		return ""
	}
	value = value.trimmed()
	if value.multi {
		list := value.List()
		if list == nil {
			list = []string{}
		}
		return list
	}
	return value.text
}

func payloadFor(answers Answers) map[string]any {
	payload := make(map[string]any, len(answers))
	for id, value := range answers {
		if value.multi {
			list := value.List()
			if list == nil {
				list = []string{}
			}
			payload[id] = list
			continue
		}
		payload[id] = value.text
	}
	return payload
}

func allFieldIDs(q Quiz) []string {
	ids := make([]string, 0, q.FieldCount())
	for _, page := range q.Pages {
		for _, field := range page.Fields {
			ids = append(ids, field.ID)
		}
	}
	return ids
}
