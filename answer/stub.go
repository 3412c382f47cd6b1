package answer

import (
	"context"
	"strings"

	"github.com/hupe1980/ragmark/model"
)

// FallbackClaim is the stub's answer when no context supplies a quote.
const FallbackClaim = "No grounded answer."

// Stub is a deterministic extractive generator: the claim is the
// context quotes spliced together, no model behind it. It keeps
// evaluation runs reproducible and free of network calls.
type Stub struct {
	name     string
	maxChars int
}

// StubOption configures the stub generator.
type StubOption func(*Stub)

// WithMaxClaimChars caps the claim length in runes before the ellipsis
// is appended.
func WithMaxClaimChars(n int) StubOption {
	return func(s *Stub) {
		s.maxChars = n
	}
}

// NewStub creates the extractive stub generator.
func NewStub(optFns ...StubOption) *Stub {
	s := &Stub{
		name:     "stub",
		maxChars: DefaultMaxClaimChars,
	}

	for _, fn := range optFns {
		fn(s)
	}

	return s
}

var _ Generator = (*Stub)(nil)

// Generate splices the context quotes into the claim, truncating at the
// configured rune budget. The contexts pass through as citations
// unchanged.
func (s *Stub) Generate(_ context.Context, _ string, contexts []model.Citation) (model.Answer, error) {
	var quotes []string
	for _, c := range contexts {
		if c.Quote != "" {
			quotes = append(quotes, c.Quote)
		}
	}

	claim := strings.Join(quotes, " ")
	if runes := []rune(claim); len(runes) > s.maxChars {
		claim = string(runes[:s.maxChars]) + "..."
	}
	if claim == "" {
		claim = FallbackClaim
	}

	return model.Answer{
		Claim:     claim,
		Citations: contexts,
		Metadata:  map[string]any{"model": s.name},
	}, nil
}

// Name returns "stub".
func (s *Stub) Name() string {
	return s.name
}
