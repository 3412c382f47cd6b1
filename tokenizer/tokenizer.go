// Package tokenizer normalizes text into comparable token sequences.
//
// Tokenization is deliberately simple: split on whitespace, lower-case,
// strip everything that is not a letter or digit, drop empties. There is
// no stemming, stopword removal or locale-aware normalization; every
// downstream ranking and metric inherits exactly this behavior, which
// keeps scores reproducible across runs and platforms.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits text into normalized tokens. It is pure and total:
// the same input always yields the same sequence, and no input fails.
// Empty or whitespace-only text yields an empty sequence.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))

	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}

	return tokens
}

// Frequencies counts token occurrences.
func Frequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}

// Set returns the distinct tokens as a set.
func Set(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
