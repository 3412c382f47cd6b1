package model

import (
	"fmt"
	"strings"
)

// ScoredDoc is a document identifier paired with a relevance score.
type ScoredDoc struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// String returns a string representation of the ScoredDoc.
func (s ScoredDoc) String() string {
	return fmt.Sprintf("%s(%.4f)", s.DocID, s.Score)
}

// Ranking is an ordered sequence of scored documents, highest score first.
// Ties keep the order in which the producing algorithm enumerated them.
type Ranking []ScoredDoc

// DocIDs returns the document identifiers in rank order.
func (r Ranking) DocIDs() []string {
	ids := make([]string, len(r))
	for i, s := range r {
		ids[i] = s.DocID
	}
	return ids
}

// Score returns the score recorded for id and whether id is ranked at all.
func (r Ranking) Score(id string) (float64, bool) {
	for _, s := range r {
		if s.DocID == id {
			return s.Score, true
		}
	}
	return 0, false
}

// Truncate returns the first k entries. A negative k is treated as zero;
// k larger than the ranking returns the ranking unchanged.
func (r Ranking) Truncate(k int) Ranking {
	if k < 0 {
		k = 0
	}
	if k > len(r) {
		k = len(r)
	}
	return r[:k]
}

// Citation is an evidentiary span asserted by an answer.
type Citation struct {
	DocID string `json:"doc_id"`
	Quote string `json:"quote"`
}

// Answer is the output of an answer generator: a claim, the citations it
// rests on, and open metadata (model name, retriever mode, ...).
//
// Generators are untrusted; fields may be empty. Consumers treat missing
// pieces as the zero-floor of the affected metric, never as an error.
type Answer struct {
	Claim     string         `json:"claim"`
	Citations []Citation     `json:"citations"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Text returns the claim text. This is the single normalization point for
// answer shapes; metrics never re-derive it.
func (a Answer) Text() string {
	return strings.TrimSpace(a.Claim)
}

// CitedDocIDs returns the distinct doc ids cited by the answer, in first
// citation order. Citations without a doc id are skipped.
func (a Answer) CitedDocIDs() []string {
	seen := make(map[string]struct{}, len(a.Citations))
	ids := make([]string, 0, len(a.Citations))
	for _, c := range a.Citations {
		if c.DocID == "" {
			continue
		}
		if _, ok := seen[c.DocID]; ok {
			continue
		}
		seen[c.DocID] = struct{}{}
		ids = append(ids, c.DocID)
	}
	return ids
}
