package metrics

// DefaultScoreAlpha is the default weight of keyword coverage in the
// composite score.
const DefaultScoreAlpha = 0.5

// Bundle is the fixed set of metrics computed for one question. It is
// created once per question and never mutated afterwards.
type Bundle struct {
	HitAtK                float64 `json:"hit@k"`
	CitationRecall        float64 `json:"citation_recall"`
	KeywordCoverage       float64 `json:"keyword_coverage"`
	ContextOverlap        float64 `json:"context_overlap"`
	FaithfulnessStub      float64 `json:"faithfulness_stub"`
	FaithfulnessPrecision float64 `json:"faithfulness_precision"`
	FaithfulnessRecall    float64 `json:"faithfulness_recall"`
	FaithfulnessF1        float64 `json:"faithfulness_f1"`
}

// Score collapses the bundle into the single scalar used to compare
// runs: alpha*coverage + (1-alpha)*overlap.
func (b Bundle) Score(alpha float64) float64 {
	return alpha*b.KeywordCoverage + (1-alpha)*b.ContextOverlap
}
