package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a quiz definition encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the encoding from a file extension.
func FormatForPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// LoadQuiz reads, parses, and validates a quiz definition file.
func LoadQuiz(path string) (Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Quiz{}, fmt.Errorf("read quiz: %w", err)
	}
	return ParseQuiz(data, FormatForPath(path))
}

// ParseQuiz decodes and validates a quiz definition.
func ParseQuiz(data []byte, format Format) (Quiz, error) {
	var (
		q   Quiz
		err error
	)
	if format == FormatJSON {
		q, err = parseJSONQuiz(data)
	} else {
		q, err = parseYAMLQuiz(data)
	}
	if err != nil {
		return Quiz{}, err
	}
	return NormalizeQuiz(q)
}

func parseJSONQuiz(data []byte) (Quiz, error) {
	var q Quiz
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&q); err != nil {
		return Quiz{}, fmt.Errorf("parse json: %w", err)
	}
	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); err != io.EOF {
		if err == nil {
			return Quiz{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Quiz{}, fmt.Errorf("parse json: %w", err)
	}
	return q, nil
}

func parseYAMLQuiz(data []byte) (Quiz, error) {
	var q Quiz
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&q); err != nil {
		return Quiz{}, fmt.Errorf("parse yaml: %w", err)
	}
	var trailing yaml.Node
	if err := decoder.Decode(&trailing); err != io.EOF {
		if err == nil {
			return Quiz{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Quiz{}, fmt.Errorf("parse yaml: %w", err)
	}
	return q, nil
}
