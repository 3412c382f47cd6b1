package ragmark

import (
	"log/slog"

	"github.com/hupe1980/ragmark/answer"
	"github.com/hupe1980/ragmark/dense"
	"github.com/hupe1980/ragmark/distance"
	"github.com/hupe1980/ragmark/fusion"
	"github.com/hupe1980/ragmark/lexical"
	"github.com/hupe1980/ragmark/metrics"
)

// DefaultTopK is the number of documents retrieved per question when
// not configured otherwise.
const DefaultTopK = 5

// DefaultConcurrency bounds parallel question evaluation when not
// configured otherwise.
const DefaultConcurrency = 4

type options struct {
	logger      *Logger
	collector   Collector
	mode        Mode
	topK        int
	k1          float64
	b           float64
	fusionMode  fusion.Mode
	alpha       float64
	rrfK        int
	embedder    dense.Embedder
	denseMetric distance.Metric
	generator   answer.Generator
	markers     []string
	scoreAlpha  float64
	hitK        int
	thresholds  metrics.Thresholds
	concurrency int
}

// Option configures pipeline and evaluator construction.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ragmark.NewJSONLogger(slog.LevelInfo)
//	p, _ := ragmark.New(ctx, source, ragmark.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCollector configures a collector for run statistics.
//
// Example with BasicCollector:
//
//	collector := &ragmark.BasicCollector{}
//	p, _ := ragmark.New(ctx, source, ragmark.WithCollector(collector))
//	// ... run ...
//	stats := collector.Stats()
func WithCollector(c Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

// WithMode selects the retrieval mode. ModeDense and ModeHybrid
// require an embedder (see WithEmbedder).
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithTopK sets how many documents each retrieval returns.
func WithTopK(topK int) Option {
	return func(o *options) {
		o.topK = topK
	}
}

// WithBM25 overrides the BM25 parameters of the lexical index.
func WithBM25(k1, b float64) Option {
	return func(o *options) {
		o.k1 = k1
		o.b = b
	}
}

// WithFusion selects how hybrid mode combines the lexical and dense
// rankings. alpha only applies to linear fusion and is the weight of
// the lexical side.
func WithFusion(mode fusion.Mode, alpha float64) Option {
	return func(o *options) {
		o.fusionMode = mode
		o.alpha = alpha
	}
}

// WithRRFK overrides the reciprocal-rank fusion constant.
func WithRRFK(k int) Option {
	return func(o *options) {
		o.rrfK = k
	}
}

// WithEmbedder supplies the embedding capability for dense and hybrid
// retrieval.
func WithEmbedder(e dense.Embedder) Option {
	return func(o *options) {
		o.embedder = e
	}
}

// WithDenseMetric selects the similarity metric of the dense index.
// Defaults to cosine.
func WithDenseMetric(m distance.Metric) Option {
	return func(o *options) {
		o.denseMetric = m
	}
}

// WithGenerator supplies the answer generator. The deterministic stub
// generator is used when none is configured.
func WithGenerator(g answer.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithSectionMarkers overrides the section headings used when
// extracting citation quotes from retrieved documents.
func WithSectionMarkers(markers ...string) Option {
	return func(o *options) {
		o.markers = markers
	}
}

// WithScoreAlpha sets the coverage weight of the composite score.
func WithScoreAlpha(alpha float64) Option {
	return func(o *options) {
		o.scoreAlpha = alpha
	}
}

// WithHitK sets the rank cutoff for the hit@k metric. Defaults to the
// configured top k.
func WithHitK(k int) Option {
	return func(o *options) {
		o.hitK = k
	}
}

// WithThresholds overrides the error-tagging thresholds.
func WithThresholds(t metrics.Thresholds) Option {
	return func(o *options) {
		o.thresholds = t
	}
}

// WithConcurrency bounds how many questions are evaluated in parallel.
// Non-positive values fall back to DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// applyOptions leaves logger and collector nil so constructors can
// tell "not configured" apart from an explicit noop: New falls back to
// the noop implementations, NewEvaluator inherits from the pipeline.
func applyOptions(optFns []Option) options {
	o := options{
		mode:        ModeLexical,
		topK:        DefaultTopK,
		k1:          lexical.DefaultK1,
		b:           lexical.DefaultB,
		fusionMode:  fusion.ModeLinear,
		alpha:       0.5,
		rrfK:        fusion.DefaultK,
		denseMetric: distance.MetricCosine,
		scoreAlpha:  metrics.DefaultScoreAlpha,
		thresholds:  metrics.DefaultThresholds(),
		concurrency: DefaultConcurrency,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
