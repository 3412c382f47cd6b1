// Package metrics scores generated answers against gold references
// using lexical proxies.
//
// Every function is pure and returns values in [0, 1]. Degenerate
// inputs (no keywords, empty answers, missing citations) score 0.0
// rather than erroring, so a single malformed answer never aborts an
// evaluation run. A 0.0 therefore means "no signal", not necessarily
// "failure"; callers that need to distinguish the two must inspect the
// inputs.
//
// # Usage
//
//	bundle := metrics.Bundle{
//		HitAtK:          metrics.HitAtK(ranked, gold, 5),
//		KeywordCoverage: metrics.KeywordCoverage(answer.Text(), keywords),
//		ContextOverlap:  metrics.ContextOverlap(answer.Text(), reference),
//	}
//
//	tags := metrics.TagBundle(bundle, metrics.DefaultThresholds())
package metrics
