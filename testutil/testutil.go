package testutil

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hupe1980/ragmark/dataset"
)

// ClinicalCorpus returns a small fixed corpus of clinical notes keyed
// by document ID. The first two notes carry section markers, the third
// does not, so quote picking exercises both paths.
func ClinicalCorpus() map[string]string {
	return map[string]string{
		"note_01.md": "## HPI\nBreast cancer follow-up.\n\n## Assessment and Plan\nStart adjuvant endocrine therapy with tamoxifen.",
		"note_02.md": "## HPI\nHypertension follow-up.\n\n## Assessment and Plan\nContinue lisinopril and check renal function.",
		"note_03.md": "Unstructured note about diet and exercise counseling.",
	}
}

// ClinicalQuestions returns evaluation questions matched to
// ClinicalCorpus. Both resolve to the leading section of their gold
// note, so a stub-generated answer covers the expected keywords.
func ClinicalQuestions() []dataset.Question {
	return []dataset.Question{
		{
			ID:               "q1",
			Text:             "What adjuvant endocrine therapy was started?",
			ExpectedKeywords: []string{"breast cancer"},
			MustBeGroundedIn: []string{"note_01.md"},
		},
		{
			ID:               "q2",
			Text:             "Which medication treats the hypertension?",
			ExpectedKeywords: []string{"hypertension"},
			MustBeGroundedIn: []string{"note_02.md"},
		},
	}
}

// KeywordEmbedder is a deterministic embedder: component i counts
// occurrences of the i-th keyword, and a constant final component
// keeps every vector off the origin.
type KeywordEmbedder struct {
	keywords []string
}

// NewKeywordEmbedder creates an embedder over the given keywords.
// Keywords are matched case-insensitively as substrings.
func NewKeywordEmbedder(keywords ...string) *KeywordEmbedder {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	return &KeywordEmbedder{keywords: lowered}
}

// Embed returns one count vector per text, in input order.
func (e *KeywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	for i, text := range texts {
		lower := strings.ToLower(text)

		vec := make([]float32, len(e.keywords)+1)
		for j, kw := range e.keywords {
			vec[j] = float32(strings.Count(lower, kw))
		}
		vec[len(e.keywords)] = 1

		vectors[i] = vec
	}

	return vectors, nil
}

// Dimension returns the vector width: one component per keyword plus
// the constant.
func (e *KeywordEmbedder) Dimension() int { return len(e.keywords) + 1 }

// Name identifies the embedder in logs and run metadata.
func (e *KeywordEmbedder) Name() string { return "keyword" }

// vocab is intentionally small so synthetic queries hit many documents.
var vocab = []string{
	"patient", "therapy", "dose", "cardiac", "renal", "hepatic",
	"biopsy", "margin", "lesion", "stable", "acute", "chronic",
	"follow", "plan", "assessment", "medication", "imaging", "labs",
	"oncology", "radiation",
}

// GenerateCorpus returns n synthetic documents of wordsPerDoc words
// each, drawn from a fixed vocabulary. The same seed yields the same
// corpus.
func GenerateCorpus(n, wordsPerDoc int, seed int64) map[string]string {
	rng := rand.New(rand.NewSource(seed))
	docs := make(map[string]string, n)

	var sb strings.Builder

	for i := 0; i < n; i++ {
		sb.Reset()

		for w := 0; w < wordsPerDoc; w++ {
			if w > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(vocab[rng.Intn(len(vocab))])
		}

		docs[fmt.Sprintf("doc_%04d.md", i)] = sb.String()
	}

	return docs
}

// GenerateQueries returns n deterministic two-word queries drawn from
// the same vocabulary as GenerateCorpus.
func GenerateQueries(n int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	queries := make([]string, n)

	for i := range queries {
		queries[i] = vocab[rng.Intn(len(vocab))] + " " + vocab[rng.Intn(len(vocab))]
	}

	return queries
}
