package dense

import (
	"context"

	"golang.org/x/time/rate"
)

// LimitEmbedder wraps an Embedder with a client-side rate limit,
// consuming one token per Embed call.
type LimitEmbedder struct {
	inner   Embedder
	limiter *rate.Limiter
}

// NewLimitEmbedder allows rps Embed calls per second with the given
// burst.
func NewLimitEmbedder(inner Embedder, rps float64, burst int) *LimitEmbedder {
	return &LimitEmbedder{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

var _ Embedder = (*LimitEmbedder)(nil)

// Embed waits for the limiter, then delegates.
func (l *LimitEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.inner.Embed(ctx, texts)
}

// Dimension returns the wrapped embedder's dimension.
func (l *LimitEmbedder) Dimension() int {
	return l.inner.Dimension()
}

// Name returns the wrapped embedder's name.
func (l *LimitEmbedder) Name() string {
	return l.inner.Name()
}
