// Package answer generates grounded answers from retrieved contexts.
//
// A Generator receives the retrieved contexts as citation records (doc
// ID plus supporting quote) and returns a claim with those citations
// attached, so the metric suite can score the claim against the exact
// evidence the generator saw.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/ragmark/model"
)

// DefaultMaxClaimChars bounds the stub generator's claim length.
const DefaultMaxClaimChars = 280

// SystemPrompt instructs hosted models to stay within the supplied
// evidence.
const SystemPrompt = "Answer the question strictly from the provided context quotes. " +
	"Do not use outside knowledge. If the context does not contain the answer, " +
	"say that no grounded answer is possible. Keep the answer to a few sentences."

// Generator produces an answer to a question from retrieved contexts.
type Generator interface {
	Generate(ctx context.Context, question string, contexts []model.Citation) (model.Answer, error)
	// Name identifies the generator in logs and answer metadata.
	Name() string
}

// Prompt renders the user prompt hosted generators send: the question
// followed by the numbered context quotes.
func Prompt(question string, contexts []model.Citation) string {
	var sb strings.Builder

	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nContext:\n")

	for i, c := range contexts {
		fmt.Fprintf(&sb, "[%d] (%s) %s\n", i+1, c.DocID, c.Quote)
	}

	return sb.String()
}
