package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clubcine-quiz/internal/domain"
)

// FileLoader reads a question document from disk. .yaml and .yml files are parsed as YAML,
// anything else as JSON.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return Decode(data, formatFor(l.path))
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
