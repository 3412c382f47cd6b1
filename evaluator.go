package ragmark

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ragmark/dataset"
	"github.com/hupe1980/ragmark/metrics"
	"github.com/hupe1980/ragmark/report"
)

// Evaluator scores a question set against a pipeline, producing one
// report record per question.
type Evaluator struct {
	pipeline    *Pipeline
	scoreAlpha  float64
	hitK        int
	thresholds  metrics.Thresholds
	concurrency int

	collector Collector
	logger    *Logger
}

// NewEvaluator builds an evaluator over an existing pipeline. Logger
// and collector are inherited from the pipeline unless overridden;
// WithHitK defaults to the pipeline's top k.
func NewEvaluator(p *Pipeline, optFns ...Option) *Evaluator {
	opts := applyOptions(optFns)

	hitK := opts.hitK
	if hitK <= 0 {
		hitK = p.topK
	}

	concurrency := opts.concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	logger := opts.logger
	if logger == nil {
		logger = p.logger
	}
	collector := opts.collector
	if collector == nil {
		collector = p.collector
	}

	return &Evaluator{
		pipeline:    p,
		scoreAlpha:  opts.scoreAlpha,
		hitK:        hitK,
		thresholds:  opts.thresholds,
		concurrency: concurrency,
		collector:   collector,
		logger:      logger,
	}
}

// Run evaluates every question and returns one record per question, in
// input order. Each run gets a fresh run id. A capability failure
// marks the affected record and the run keeps going; Run itself only
// fails when the context is canceled.
func (e *Evaluator) Run(ctx context.Context, questions []dataset.Question) ([]report.Record, error) {
	runID := uuid.NewString()
	records := make([]report.Record, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, q := range questions {
		g.Go(func() error {
			records[i] = e.evaluate(gctx, runID, q)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := report.Summarize(records)
	e.logger.LogRunDone(ctx, runID, summary.Items, summary.Errors, summary.AvgScore)

	return records, nil
}

// evaluate handles one question. It never returns an error: capability
// failures land on the record's Error field with a zero metric bundle.
func (e *Evaluator) evaluate(ctx context.Context, runID string, q dataset.Question) report.Record {
	start := time.Now()

	rec := report.Record{
		RunID:            runID,
		ID:               q.ID,
		Question:         q.Text,
		ExpectedKeywords: q.ExpectedKeywords,
		MustBeGroundedIn: q.MustBeGroundedIn,
	}

	ans, ranking, err := e.pipeline.Ask(ctx, q.ID, q.Text)
	rec.RetrievedDocs = ranking
	if err != nil {
		rec.Error = err.Error()
		e.collector.RecordQuestion(time.Since(start), true)
		e.logger.LogQuestionDone(ctx, q.ID, 0, nil, err)
		return rec
	}

	gold := q.GoldContext(e.pipeline.Texts())
	precision, recall, f1 := metrics.ClaimEvidencePR(ans.Text(), ans.Citations)

	bundle := metrics.Bundle{
		HitAtK:                metrics.HitAtK(ranking, q.MustBeGroundedIn, e.hitK),
		CitationRecall:        metrics.CitationRecall(ans, q.MustBeGroundedIn),
		KeywordCoverage:       metrics.KeywordCoverage(ans.Text(), q.ExpectedKeywords),
		ContextOverlap:        metrics.ContextOverlap(ans.Text(), gold),
		FaithfulnessStub:      metrics.FaithfulnessStub(ans),
		FaithfulnessPrecision: precision,
		FaithfulnessRecall:    recall,
		FaithfulnessF1:        f1,
	}

	rec.Answer = &ans
	rec.AnswerPreview = report.Preview(ans.Text(), report.DefaultPreviewLen)
	rec.Metrics = bundle
	rec.Score = bundle.Score(e.scoreAlpha)
	rec.Tags = metrics.TagBundle(bundle, e.thresholds).Active()

	e.collector.RecordQuestion(time.Since(start), false)
	e.logger.LogQuestionDone(ctx, q.ID, rec.Score, rec.Tags, nil)

	return rec
}
