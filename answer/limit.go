package answer

import (
	"context"

	"github.com/hupe1980/ragmark/model"
	"golang.org/x/time/rate"
)

// Limit wraps a Generator with a client-side rate limit, consuming one
// token per Generate call.
type Limit struct {
	inner   Generator
	limiter *rate.Limiter
}

// NewLimit allows rps Generate calls per second with the given burst.
func NewLimit(inner Generator, rps float64, burst int) *Limit {
	return &Limit{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

var _ Generator = (*Limit)(nil)

// Generate waits for the limiter, then delegates.
func (l *Limit) Generate(ctx context.Context, question string, contexts []model.Citation) (model.Answer, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return model.Answer{}, err
	}
	return l.inner.Generate(ctx, question, contexts)
}

// Name returns the wrapped generator's name.
func (l *Limit) Name() string {
	return l.inner.Name()
}
