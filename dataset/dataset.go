// Package dataset loads the evaluation questions a run is scored
// against. Each question carries its gold references: the keywords an
// answer should mention and the documents it must be grounded in.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/ragmark/codec"
	"gopkg.in/yaml.v3"
)

// Question is one evaluation item.
type Question struct {
	ID               string   `json:"id" yaml:"id"`
	Text             string   `json:"question" yaml:"question"`
	ExpectedKeywords []string `json:"expected_keywords" yaml:"expected_keywords"`
	MustBeGroundedIn []string `json:"must_be_grounded_in" yaml:"must_be_grounded_in"`
}

// GoldContext joins the texts of the question's gold documents with
// newlines. Gold IDs missing from the corpus are skipped, so a
// partially matched dataset still evaluates.
func (q Question) GoldContext(texts map[string]string) string {
	var parts []string
	for _, id := range q.MustBeGroundedIn {
		if text, ok := texts[id]; ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// Load reads and validates a dataset file. The format is chosen by
// extension: .json decodes with the configured codec, .yaml/.yml with
// YAML.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", path, err)
	}

	var questions []Question

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := codec.Default.Unmarshal(data, &questions); err != nil {
			return nil, fmt.Errorf("decode dataset %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &questions); err != nil {
			return nil, fmt.Errorf("decode dataset %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}

	if err := Validate(questions); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}

	return questions, nil
}

// Validate checks that every question has a unique, non-empty ID and
// non-empty question text.
func Validate(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))

	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: empty id", i)
		}
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %q: empty question text", q.ID)
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("question %q: duplicate id", q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	return nil
}
