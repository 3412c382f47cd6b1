// Package model defines core types used throughout ragmark.
//
// # Ranking Types
//
//   - ScoredDoc: A document identifier with a relevance score
//   - Ranking: An ordered sequence of ScoredDocs, highest score first
//
// # Answer Types
//
//   - Citation: An evidentiary span (doc id + quote) asserted by an answer
//   - Answer: A generated claim with its citations and open metadata
//
// Answers arrive from external generators and are normalized once at the
// boundary (Text, CitedDocIDs); the metric suite consumes them read-only.
package model
