package ragmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/ragmark/answer"
	"github.com/hupe1980/ragmark/corpus"
	"github.com/hupe1980/ragmark/dense"
	"github.com/hupe1980/ragmark/fusion"
	"github.com/hupe1980/ragmark/lexical"
	"github.com/hupe1980/ragmark/model"
)

// quoteFallbackLen bounds the quote taken from the head of a document
// that yields no section chunks.
const quoteFallbackLen = 280

// Mode selects how documents are ranked for a question.
type Mode uint8

const (
	// ModeLexical ranks with BM25 only.
	ModeLexical Mode = iota

	// ModeDense ranks with embedding similarity only.
	ModeDense

	// ModeHybrid fuses the lexical and dense rankings.
	ModeHybrid
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeLexical:
		return "lexical"
	case ModeDense:
		return "dense"
	case ModeHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// ParseMode parses a retrieval mode name. The alias "bm25" is accepted
// for lexical.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lexical", "bm25":
		return ModeLexical, nil
	case "dense":
		return ModeDense, nil
	case "hybrid":
		return ModeHybrid, nil
	default:
		return ModeLexical, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Pipeline owns one corpus snapshot together with the retrieval and
// answering capabilities built over it. It is immutable after New and
// safe for concurrent use.
type Pipeline struct {
	mode       Mode
	topK       int
	fusionMode fusion.Mode
	alpha      float64
	rrfK       int

	texts     map[string]string
	lexical   *lexical.Index
	dense     *dense.Index
	generator answer.Generator
	markers   []string

	collector Collector
	logger    *Logger
}

// New loads the corpus from source and builds the indexes the
// configured mode needs. Dense and hybrid modes require an embedder
// (WithEmbedder); without a generator the deterministic stub is used.
func New(ctx context.Context, source corpus.Source, optFns ...Option) (*Pipeline, error) {
	opts := applyOptions(optFns)

	if opts.topK < 0 {
		return nil, ErrInvalidTopK
	}
	if opts.alpha < 0 || opts.alpha > 1 {
		return nil, ErrInvalidAlpha
	}
	if opts.mode != ModeLexical && opts.embedder == nil {
		return nil, ErrNoEmbedder
	}

	logger := opts.logger
	if logger == nil {
		logger = NoopLogger()
	}
	collector := opts.collector
	if collector == nil {
		collector = NoopCollector{}
	}

	docs, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	generator := opts.generator
	if generator == nil {
		generator = answer.NewStub()
	}

	p := &Pipeline{
		mode:       opts.mode,
		topK:       opts.topK,
		fusionMode: opts.fusionMode,
		alpha:      opts.alpha,
		rrfK:       opts.rrfK,
		texts:      corpus.TextByID(docs),
		lexical:    lexical.New(docs, lexical.WithK1(opts.k1), lexical.WithB(opts.b)),
		generator:  generator,
		markers:    opts.markers,
		collector:  collector,
		logger:     logger,
	}

	if opts.mode != ModeLexical {
		di, err := dense.Build(ctx, opts.embedder, docs, dense.WithMetric(opts.denseMetric))
		if err != nil {
			logger.LogIndexBuild(ctx, len(docs), true, err)
			return nil, fmt.Errorf("build dense index: %w", err)
		}
		p.dense = di
	}

	logger.LogIndexBuild(ctx, len(docs), p.dense != nil, nil)

	return p, nil
}

// Mode returns the configured retrieval mode.
func (p *Pipeline) Mode() Mode { return p.mode }

// TopK returns the configured retrieval depth.
func (p *Pipeline) TopK() int { return p.topK }

// Len returns the number of documents in the corpus snapshot.
func (p *Pipeline) Len() int { return p.lexical.Len() }

// Texts returns the doc id to text lookup of the corpus snapshot. The
// map is shared; callers must not mutate it.
func (p *Pipeline) Texts() map[string]string { return p.texts }

// Lexical exposes the lexical index for diagnostics and benchmarks.
func (p *Pipeline) Lexical() *lexical.Index { return p.lexical }

// Retrieve ranks the corpus for query in the configured mode and
// returns the first topK entries.
func (p *Pipeline) Retrieve(ctx context.Context, query string, topK int) (model.Ranking, error) {
	start := time.Now()

	ranking, err := p.retrieve(ctx, query, topK)
	err = translateError(err)

	p.collector.RecordRetrieve(time.Since(start), err)
	p.logger.LogRetrieve(ctx, p.mode, topK, len(ranking), err)

	return ranking, err
}

func (p *Pipeline) retrieve(ctx context.Context, query string, topK int) (model.Ranking, error) {
	switch p.mode {
	case ModeLexical:
		return p.lexical.Retrieve(query, topK)
	case ModeDense:
		return p.dense.Retrieve(ctx, query, topK)
	case ModeHybrid:
		lex, err := p.lexical.Retrieve(query, topK)
		if err != nil {
			return nil, err
		}

		den, err := p.dense.Retrieve(ctx, query, topK)
		if err != nil {
			return nil, err
		}

		return p.fuse(lex, den, topK)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, p.mode)
	}
}

// fuse combines the two rankings per the configured fusion mode and
// truncates the result back to topK.
func (p *Pipeline) fuse(lex, den model.Ranking, topK int) (model.Ranking, error) {
	if p.fusionMode == fusion.ModeRRF {
		return fusion.RRF(lex, den, p.rrfK).Truncate(topK), nil
	}

	merged, err := fusion.Linear(lex, den, p.alpha)
	if err != nil {
		return nil, err
	}

	return merged.Truncate(topK), nil
}

// Contexts builds the citation contexts handed to the generator: one
// quote per ranked document, section-aware with a raw-prefix fallback.
func (p *Pipeline) Contexts(ranking model.Ranking) []model.Citation {
	contexts := make([]model.Citation, 0, len(ranking))
	for _, sd := range ranking {
		contexts = append(contexts, model.Citation{
			DocID: sd.DocID,
			Quote: corpus.PickQuote(p.texts[sd.DocID], p.markers, quoteFallbackLen),
		})
	}
	return contexts
}

// Ask answers one question end to end: retrieve, build contexts,
// generate. The returned ranking is the canonical record of what was
// retrieved. A failing capability comes back as a *CapabilityError
// naming the stage; on a generation failure the ranking is still
// returned so callers can record what was retrieved.
func (p *Pipeline) Ask(ctx context.Context, id, question string) (model.Answer, model.Ranking, error) {
	ranking, err := p.Retrieve(ctx, question, p.topK)
	if err != nil {
		return model.Answer{}, nil, &CapabilityError{Stage: "retrieve", QuestionID: id, Err: err}
	}

	contexts := p.Contexts(ranking)

	start := time.Now()
	ans, err := p.generator.Generate(ctx, question, contexts)
	p.collector.RecordGenerate(time.Since(start), err)
	p.logger.LogGenerate(ctx, p.generator.Name(), len(contexts), err)
	if err != nil {
		return model.Answer{}, ranking, &CapabilityError{Stage: "generate", QuestionID: id, Err: err}
	}

	if ans.Metadata == nil {
		ans.Metadata = map[string]any{}
	}
	ans.Metadata["retriever"] = p.mode.String()

	return ans, ranking, nil
}
