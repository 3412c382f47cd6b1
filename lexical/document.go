package lexical

import (
	"github.com/hupe1980/ragmark/tokenizer"
)

// Document is an indexed document: its identifier, raw text and the token
// statistics derived at build time. Immutable once constructed.
type Document struct {
	ID     string
	Text   string
	Length int

	freqs map[string]int
}

func newDocument(id, text string) Document {
	tokens := tokenizer.Tokenize(text)
	return Document{
		ID:     id,
		Text:   text,
		Length: len(tokens),
		freqs:  tokenizer.Frequencies(tokens),
	}
}

// TermCount returns how often term occurs in the document.
func (d Document) TermCount(term string) int {
	return d.freqs[term]
}
