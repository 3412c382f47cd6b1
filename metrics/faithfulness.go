package metrics

import (
	"strings"

	"github.com/hupe1980/ragmark/model"
)

// ClaimEvidencePR compares the claim's token set against the union of
// all citation quote tokens. Precision is the fraction of claim tokens
// supported by evidence, recall the fraction of evidence tokens used by
// the claim, and f1 their harmonic mean. All three are 0.0 when either
// token set is empty.
func ClaimEvidencePR(claim string, citations []model.Citation) (precision, recall, f1 float64) {
	claimSet := tokenSet(claim)

	var quotes strings.Builder
	for _, c := range citations {
		quotes.WriteString(c.Quote)
		quotes.WriteString(" ")
	}
	evidenceSet := tokenSet(quotes.String())

	if len(claimSet) == 0 || len(evidenceSet) == 0 {
		return 0.0, 0.0, 0.0
	}

	shared := 0
	for tok := range claimSet {
		if _, ok := evidenceSet[tok]; ok {
			shared++
		}
	}

	precision = float64(shared) / float64(len(claimSet))
	recall = float64(shared) / float64(len(evidenceSet))

	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return precision, recall, f1
}

// FaithfulnessStub returns the fraction of citations whose quote shares
// at least one token with the claim. It is a cheap stand-in for an
// entailment model; an answer without citations scores 0.0.
func FaithfulnessStub(answer model.Answer) float64 {
	if len(answer.Citations) == 0 {
		return 0.0
	}

	claimSet := tokenSet(answer.Text())

	supported := 0
	for _, c := range answer.Citations {
		for tok := range tokenSet(c.Quote) {
			if _, ok := claimSet[tok]; ok {
				supported++
				break
			}
		}
	}

	return float64(supported) / float64(len(answer.Citations))
}
