// Package testutil provides fixtures and generators for ragmark's
// tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Clinical Fixture
//
// A three-note corpus with matching questions, small enough to assert
// exact rankings against:
//
//	source := corpus.FromMap(testutil.ClinicalCorpus())
//	questions := testutil.ClinicalQuestions()
//
// # Deterministic Embeddings
//
// KeywordEmbedder maps texts to keyword-count vectors, so dense and
// hybrid retrieval become fully predictable:
//
//	embedder := testutil.NewKeywordEmbedder("endocrine", "lisinopril")
//
// # Synthetic Corpora
//
// Benchmarks index larger corpora generated from a fixed vocabulary:
//
//	docs := testutil.GenerateCorpus(1000, 120, 42)
//	queries := testutil.GenerateQueries(50, 42)
package testutil
