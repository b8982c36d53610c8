// Package resource loads the static question document from a file or a URL.
package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"clubcine-quiz/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a question document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Decode parses a document holding an array of questions.
func Decode(data []byte, format Format) ([]domain.Question, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]domain.Question, error) {
	var questions []domain.Question
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("parse json: trailing data after question array")
	}
	if questions == nil {
		return nil, fmt.Errorf("parse json: expected an array of questions")
	}
	return questions, nil
}

func decodeYAML(data []byte) ([]domain.Question, error) {
	var questions []domain.Question
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return questions, nil
}
