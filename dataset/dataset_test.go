package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "eval.json", `[
		{
			"id": "q1",
			"question": "What systemic therapy is recommended?",
			"expected_keywords": ["endocrine", "adjuvant"],
			"must_be_grounded_in": ["note_01.md"]
		},
		{
			"id": "q2",
			"question": "Which mutation was detected?"
		}
	]`)

	questions, err := Load(path)
	require.NoError(t, err)

	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "What systemic therapy is recommended?", questions[0].Text)
	assert.Equal(t, []string{"endocrine", "adjuvant"}, questions[0].ExpectedKeywords)
	assert.Equal(t, []string{"note_01.md"}, questions[0].MustBeGroundedIn)
	assert.Empty(t, questions[1].ExpectedKeywords)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "eval.yaml", `
- id: q1
  question: What systemic therapy is recommended?
  expected_keywords: [endocrine]
  must_be_grounded_in: [note_01.md]
`)

	questions, err := Load(path)
	require.NoError(t, err)

	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, []string{"endocrine"}, questions[0].ExpectedKeywords)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "eval.csv", "id,question\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported dataset format")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "eval.json", `[{"id": "q1", "question": ""}]`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "empty question text")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantErr   string
	}{
		{
			name: "valid",
			questions: []Question{
				{ID: "q1", Text: "first?"},
				{ID: "q2", Text: "second?"},
			},
		},
		{
			name:      "empty id",
			questions: []Question{{Text: "first?"}},
			wantErr:   "empty id",
		},
		{
			name: "duplicate id",
			questions: []Question{
				{ID: "q1", Text: "first?"},
				{ID: "q1", Text: "second?"},
			},
			wantErr: "duplicate id",
		},
		{
			name:      "blank question",
			questions: []Question{{ID: "q1", Text: "   "}},
			wantErr:   "empty question text",
		},
		{
			name: "empty dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.questions)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestQuestion_GoldContext(t *testing.T) {
	texts := map[string]string{
		"note_01.md": "endocrine therapy recommended",
		"note_02.md": "PIK3CA mutation detected",
	}

	q := Question{
		ID:               "q1",
		Text:             "therapy?",
		MustBeGroundedIn: []string{"note_01.md", "missing.md", "note_02.md"},
	}

	got := q.GoldContext(texts)
	assert.Equal(t, "endocrine therapy recommended\nPIK3CA mutation detected", got)

	assert.Empty(t, Question{ID: "q2", Text: "x?"}.GoldContext(texts))
	assert.Empty(t, Question{
		ID:               "q3",
		Text:             "y?",
		MustBeGroundedIn: []string{"missing.md"},
	}.GoldContext(texts))
}
