package metrics

import (
	"testing"

	"github.com/hupe1980/ragmark/model"
	"github.com/stretchr/testify/assert"
)

func TestKeywordCoverage(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		keywords []string
		want     float64
	}{
		{
			name:     "half covered",
			answer:   "endocrine therapy is recommended",
			keywords: []string{"endocrine", "adjuvant"},
			want:     0.5,
		},
		{
			name:     "case insensitive",
			answer:   "PIK3CA mutation detected",
			keywords: []string{"pik3ca"},
			want:     1.0,
		},
		{
			name:     "multi word keyword",
			answer:   "adjuvant endocrine therapy is recommended",
			keywords: []string{"endocrine therapy"},
			want:     1.0,
		},
		{
			name:     "no keywords",
			answer:   "some answer",
			keywords: nil,
			want:     0.0,
		},
		{
			name:     "empty answer",
			answer:   "",
			keywords: []string{"endocrine"},
			want:     0.0,
		},
		{
			name:     "nothing covered",
			answer:   "imaging shows no abnormality",
			keywords: []string{"endocrine", "adjuvant"},
			want:     0.0,
		},
		{
			name:     "empty keyword always hits",
			answer:   "imaging shows no abnormality",
			keywords: []string{"", "endocrine"},
			want:     0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordCoverage(tt.answer, tt.keywords)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestContextOverlap(t *testing.T) {
	t.Run("shared clinical tokens", func(t *testing.T) {
		got := ContextOverlap(
			"pi3k inhibitors for pik3ca mutations",
			"PIK3CA mutations may respond to PI3K inhibitors",
		)
		assert.Greater(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	})

	t.Run("identical text", func(t *testing.T) {
		got := ContextOverlap("endocrine therapy", "Endocrine therapy!")
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("disjoint text", func(t *testing.T) {
		got := ContextOverlap("apple banana", "imaging pathology")
		assert.InDelta(t, 0.0, got, 1e-12)
	})

	t.Run("empty answer", func(t *testing.T) {
		assert.InDelta(t, 0.0, ContextOverlap("", "reference text"), 1e-12)
		assert.InDelta(t, 0.0, ContextOverlap("...", "reference text"), 1e-12)
	})

	t.Run("empty reference", func(t *testing.T) {
		assert.InDelta(t, 0.0, ContextOverlap("some answer", ""), 1e-12)
	})

	t.Run("repeated answer tokens weighted", func(t *testing.T) {
		// The answer side is a sequence: two of three occurrences are
		// grounded, even though only one distinct token is.
		got := ContextOverlap("endocrine endocrine therapy", "endocrine")
		assert.InDelta(t, 2.0/3.0, got, 1e-12)
	})

	t.Run("fully repeated answer", func(t *testing.T) {
		got := ContextOverlap("therapy therapy", "therapy")
		assert.InDelta(t, 1.0, got, 1e-12)
	})
}

func TestHitAtK(t *testing.T) {
	tests := []struct {
		name      string
		retrieved any
		gold      []string
		k         int
		want      float64
	}{
		{
			name:      "gold within k",
			retrieved: []string{"a", "b", "c"},
			gold:      []string{"x", "b"},
			k:         3,
			want:      1.0,
		},
		{
			name:      "gold outside k",
			retrieved: []string{"a", "c"},
			gold:      []string{"x", "b"},
			k:         2,
			want:      0.0,
		},
		{
			name:      "gold beyond cutoff",
			retrieved: []string{"a", "b", "c"},
			gold:      []string{"c"},
			k:         2,
			want:      0.0,
		},
		{
			name:      "k larger than ranking",
			retrieved: []string{"a", "b"},
			gold:      []string{"b"},
			k:         10,
			want:      1.0,
		},
		{
			name:      "zero k",
			retrieved: []string{"a", "b"},
			gold:      []string{"a"},
			k:         0,
			want:      0.0,
		},
		{
			name:      "no gold",
			retrieved: []string{"a", "b"},
			gold:      nil,
			k:         5,
			want:      0.0,
		},
		{
			name:      "empty ranking",
			retrieved: []string{},
			gold:      []string{"a"},
			k:         5,
			want:      0.0,
		},
		{
			name: "scored documents",
			retrieved: model.Ranking{
				{DocID: "note_01", Score: 2.1},
				{DocID: "note_02", Score: 0.3},
			},
			gold: []string{"note_02"},
			k:    2,
			want: 1.0,
		},
		{
			name: "decoded generic records",
			retrieved: []any{
				map[string]any{"doc_id": "note_01", "score": 2.1},
				[]any{"note_02", 0.3},
			},
			gold: []string{"note_02"},
			k:    2,
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HitAtK(tt.retrieved, tt.gold, tt.k), 1e-12)
		})
	}
}

func TestCitationRecall(t *testing.T) {
	answer := model.Answer{
		Claim: "endocrine therapy is recommended",
		Citations: []model.Citation{
			{DocID: "note_01", Quote: "endocrine therapy"},
			{DocID: "note_03", Quote: "imaging"},
		},
	}

	tests := []struct {
		name string
		gold []string
		want float64
	}{
		{name: "all cited", gold: []string{"note_01", "note_03"}, want: 1.0},
		{name: "half cited", gold: []string{"note_01", "note_02"}, want: 0.5},
		{name: "none cited", gold: []string{"note_02"}, want: 0.0},
		{name: "no gold", gold: nil, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CitationRecall(answer, tt.gold), 1e-12)
		})
	}

	t.Run("no citations", func(t *testing.T) {
		got := CitationRecall(model.Answer{Claim: "text"}, []string{"note_01"})
		assert.InDelta(t, 0.0, got, 1e-12)
	})
}

func TestDocIDs(t *testing.T) {
	tests := []struct {
		name      string
		retrieved any
		want      []string
	}{
		{
			name:      "nil",
			retrieved: nil,
			want:      nil,
		},
		{
			name:      "plain ids",
			retrieved: []string{"a", "b"},
			want:      []string{"a", "b"},
		},
		{
			name: "ranking",
			retrieved: model.Ranking{
				{DocID: "a", Score: 1.0},
				{DocID: "b", Score: 0.5},
			},
			want: []string{"a", "b"},
		},
		{
			name: "citations",
			retrieved: []model.Citation{
				{DocID: "a", Quote: "q"},
				{DocID: "", Quote: "orphan"},
				{DocID: "b"},
			},
			want: []string{"a", "b"},
		},
		{
			name: "mixed generic entries",
			retrieved: []any{
				"a",
				map[string]any{"doc_id": "b"},
				map[string]any{"id": "c"},
				[]any{"d", 0.25},
				42,
				map[string]any{"score": 1.0},
				"",
			},
			want: []string{"a", "b", "c", "d"},
		},
		{
			name:      "unsupported shape",
			retrieved: "not-a-ranking",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocIDs(tt.retrieved))
		})
	}
}

func TestBundle_Score(t *testing.T) {
	b := Bundle{KeywordCoverage: 1.0, ContextOverlap: 0.5}

	assert.InDelta(t, 0.75, b.Score(DefaultScoreAlpha), 1e-12)
	assert.InDelta(t, 1.0, b.Score(1.0), 1e-12)
	assert.InDelta(t, 0.5, b.Score(0.0), 1e-12)
}
