// Package report persists and summarizes evaluation runs.
//
// A run produces one Record per question. Records serialize to JSONL
// for auditing, flatten to CSV for spreadsheets, render to a
// self-contained HTML page, and can be mirrored to a DynamoDB run
// ledger (see the ddb subpackage).
package report

import (
	"strings"

	"github.com/hupe1980/ragmark/metrics"
	"github.com/hupe1980/ragmark/model"
)

// DefaultPreviewLen is the rune budget for answer previews.
const DefaultPreviewLen = 120

// Record is the persisted result of evaluating one question.
type Record struct {
	RunID            string         `json:"run_id,omitempty"`
	ID               string         `json:"id"`
	Question         string         `json:"question"`
	AnswerPreview    string         `json:"answer_preview"`
	Answer           *model.Answer  `json:"answer,omitempty"`
	ExpectedKeywords []string       `json:"expected_keywords,omitempty"`
	MustBeGroundedIn []string       `json:"must_be_grounded_in,omitempty"`
	RetrievedDocs    model.Ranking  `json:"retrieved_docs"`
	Metrics          metrics.Bundle `json:"metrics"`
	Score            float64        `json:"score"`
	Tags             []string       `json:"tags,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// Preview shortens an answer text for reports: newlines collapse to
// spaces and anything beyond maxLen runes is cut at the previous word
// boundary.
func Preview(text string, maxLen int) string {
	s := strings.ReplaceAll(text, "\n", " ")

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i >= 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// Summary aggregates one run.
type Summary struct {
	RunID       string         `json:"run_id,omitempty"`
	Items       int            `json:"items"`
	Errors      int            `json:"errors"`
	AvgScore    float64        `json:"avg_score"`
	AvgCoverage float64        `json:"avg_coverage"`
	AvgOverlap  float64        `json:"avg_overlap"`
	AvgHitAtK   float64        `json:"avg_hit_at_k"`
	TagCounts   map[string]int `json:"tag_counts,omitempty"`
}

// Summarize computes run aggregates over all records, failed ones
// included: a record that errored carries a zero bundle and drags the
// averages down rather than disappearing from them.
func Summarize(records []Record) Summary {
	s := Summary{Items: len(records)}
	if len(records) == 0 {
		return s
	}

	s.RunID = records[0].RunID
	s.TagCounts = make(map[string]int)

	for _, rec := range records {
		if rec.Error != "" {
			s.Errors++
		}
		s.AvgScore += rec.Score
		s.AvgCoverage += rec.Metrics.KeywordCoverage
		s.AvgOverlap += rec.Metrics.ContextOverlap
		s.AvgHitAtK += rec.Metrics.HitAtK

		for _, tag := range rec.Tags {
			s.TagCounts[tag]++
		}
	}

	n := float64(len(records))
	s.AvgScore /= n
	s.AvgCoverage /= n
	s.AvgOverlap /= n
	s.AvgHitAtK /= n

	if len(s.TagCounts) == 0 {
		s.TagCounts = nil
	}

	return s
}
