package metrics

import (
	"strings"

	"github.com/hupe1980/ragmark/model"
	"github.com/hupe1980/ragmark/tokenizer"
)

// tokenSet tokenizes text and returns the distinct tokens.
func tokenSet(text string) map[string]struct{} {
	return tokenizer.Set(tokenizer.Tokenize(text))
}

// KeywordCoverage returns the fraction of expected keywords whose
// case-insensitive literal form appears as a substring of the answer
// text. An empty keyword list scores 0.0.
func KeywordCoverage(answerText string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}

	text := strings.ToLower(answerText)

	hits := 0
	for _, kw := range keywords {
		// The empty keyword is a substring of any answer and counts
		// as a hit.
		if strings.Contains(text, strings.ToLower(kw)) {
			hits++
		}
	}

	return float64(hits) / float64(len(keywords))
}

// ContextOverlap returns the fraction of answer tokens that also occur
// in the reference text. The answer side is a token sequence, so a
// repeated token counts once per occurrence; the reference side is a
// set. An answer that tokenizes to nothing scores 0.0.
func ContextOverlap(answerText, referenceText string) float64 {
	answer := tokenizer.Tokenize(answerText)
	if len(answer) == 0 {
		return 0.0
	}

	reference := tokenSet(referenceText)

	hits := 0
	for _, tok := range answer {
		if _, ok := reference[tok]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(answer))
}

// HitAtK returns 1.0 if any of the first k retrieved documents is a
// gold document, else 0.0.
//
// The retrieved ranking may be a []string of IDs, a model.Ranking,
// citation records, or the loosely typed shapes produced by decoding
// persisted run records. Entries that cannot be normalized to a
// document ID are ignored.
func HitAtK(retrieved any, gold []string, k int) float64 {
	ids := DocIDs(retrieved)

	if k > len(ids) {
		k = len(ids)
	}
	if k <= 0 || len(gold) == 0 {
		return 0.0
	}

	goldSet := make(map[string]struct{}, len(gold))
	for _, id := range gold {
		goldSet[id] = struct{}{}
	}

	for _, id := range ids[:k] {
		if _, ok := goldSet[id]; ok {
			return 1.0
		}
	}

	return 0.0
}

// CitationRecall returns the fraction of gold documents that the answer
// cites. An empty gold set scores 0.0.
func CitationRecall(answer model.Answer, gold []string) float64 {
	if len(gold) == 0 {
		return 0.0
	}

	cited := make(map[string]struct{})
	for _, id := range answer.CitedDocIDs() {
		cited[id] = struct{}{}
	}

	hits := 0
	for _, id := range gold {
		if _, ok := cited[id]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(gold))
}

// DocIDs extracts document IDs from a loosely shaped ranking. It
// accepts plain IDs, scored documents, citations, and the generic
// slices and maps produced by JSON decoding. Entries without a usable
// ID are skipped.
func DocIDs(retrieved any) []string {
	switch v := retrieved.(type) {
	case nil:
		return nil
	case []string:
		return v
	case model.Ranking:
		return v.DocIDs()
	case []model.ScoredDoc:
		return model.Ranking(v).DocIDs()
	case []model.Citation:
		ids := make([]string, 0, len(v))
		for _, c := range v {
			if c.DocID != "" {
				ids = append(ids, c.DocID)
			}
		}
		return ids
	case []any:
		ids := make([]string, 0, len(v))
		for _, entry := range v {
			if id, ok := docID(entry); ok {
				ids = append(ids, id)
			}
		}
		return ids
	default:
		return nil
	}
}

// docID normalizes a single ranking entry to a document ID.
func docID(entry any) (string, bool) {
	switch e := entry.(type) {
	case string:
		return e, e != ""
	case model.ScoredDoc:
		return e.DocID, e.DocID != ""
	case model.Citation:
		return e.DocID, e.DocID != ""
	case map[string]any:
		for _, key := range []string{"doc_id", "id"} {
			if id, ok := e[key].(string); ok && id != "" {
				return id, true
			}
		}
		return "", false
	case []any:
		// (id, score) pair decoded from JSON.
		if len(e) > 0 {
			if id, ok := e[0].(string); ok && id != "" {
				return id, true
			}
		}
		return "", false
	default:
		return "", false
	}
}
