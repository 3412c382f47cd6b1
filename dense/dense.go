// Package dense ranks corpus documents by embedding similarity.
//
// An Index embeds every document once at build time and scores queries
// with a configurable metric: cosine (the default, computed as the dot
// product of L2-normalized vectors), raw dot product, or L2 distance.
// The index is flat: every query scores every document. That is exact
// and fast enough for evaluation-sized corpora.
package dense

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/ragmark/corpus"
	"github.com/hupe1980/ragmark/distance"
	"github.com/hupe1980/ragmark/model"
)

// ErrInvalidTopK is returned when a retrieval is requested with a
// negative topK.
var ErrInvalidTopK = errors.New("top k must be non-negative")

// Embedder turns texts into vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the vector width the embedder produces.
	Dimension() int
	// Name identifies the embedder in logs and run metadata.
	Name() string
}

type options struct {
	metric distance.Metric
}

// Option configures the index.
type Option func(*options)

// WithMetric selects the similarity metric. The default is cosine.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// Index is a flat similarity index over a corpus.
type Index struct {
	embedder Embedder
	metric   distance.Metric
	fn       distance.Func
	ids      []string
	vectors  [][]float32
}

// Build embeds all documents and returns the ready index. Under the
// cosine metric a document that embeds to a zero vector keeps a zero
// score for every query.
func Build(ctx context.Context, embedder Embedder, docs []corpus.Document, optFns ...Option) (*Index, error) {
	opts := options{
		metric: distance.MetricCosine,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	fn, err := distance.Provider(opts.metric)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(docs))
	texts := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		texts[i] = d.Text
	}

	vectors := make([][]float32, len(docs))

	if len(docs) > 0 {
		embedded, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed corpus: %w", err)
		}
		if len(embedded) != len(docs) {
			return nil, fmt.Errorf("embedder %s returned %d vectors for %d documents", embedder.Name(), len(embedded), len(docs))
		}

		for i, v := range embedded {
			if opts.metric == distance.MetricCosine {
				if normalized, ok := distance.NormalizeL2Copy(v); ok {
					vectors[i] = normalized
				}

				continue
			}

			vectors[i] = slices.Clone(v)
		}
	}

	return &Index{
		embedder: embedder,
		metric:   opts.metric,
		fn:       fn,
		ids:      ids,
		vectors:  vectors,
	}, nil
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	return len(i.ids)
}

// Metric returns the similarity metric the index was built with.
func (i *Index) Metric() distance.Metric {
	return i.metric
}

// Retrieve embeds the query and scores every indexed document. Results
// are sorted best-first; ties keep the corpus enumeration order. A
// negative topK is an error, a topK beyond the corpus size returns the
// full ranking.
func (i *Index) Retrieve(ctx context.Context, query string, topK int) (model.Ranking, error) {
	if topK < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopK, topK)
	}

	ranking := make(model.Ranking, len(i.ids))
	for j, id := range i.ids {
		ranking[j] = model.ScoredDoc{DocID: id}
	}

	if len(i.ids) == 0 {
		return ranking.Truncate(topK), nil
	}

	embedded, err := i.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embedded) != 1 {
		return nil, fmt.Errorf("embedder %s returned %d vectors for one query", i.embedder.Name(), len(embedded))
	}

	switch i.metric {
	case distance.MetricCosine:
		// A zero-norm query leaves every score at zero.
		if q, ok := distance.NormalizeL2Copy(embedded[0]); ok {
			for j := range i.ids {
				if i.vectors[j] != nil {
					ranking[j].Score = float64(i.fn(q, i.vectors[j]))
				}
			}
		}
	case distance.MetricDot:
		for j := range i.ids {
			ranking[j].Score = float64(i.fn(embedded[0], i.vectors[j]))
		}
	case distance.MetricL2:
		// Negated so the descending sort ranks the nearest first.
		for j := range i.ids {
			ranking[j].Score = -float64(i.fn(embedded[0], i.vectors[j]))
		}
	}

	slices.SortStableFunc(ranking, func(a, b model.ScoredDoc) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranking.Truncate(topK), nil
}
