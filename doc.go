// Package ragmark evaluates retrieval-augmented question answering over
// a small document corpus.
//
// A Pipeline ranks candidate documents for a natural-language question
// (BM25, embedding similarity, or a fusion of both), extracts citation
// quotes from the top documents and asks a generator for a grounded
// answer. An Evaluator runs a question set through the pipeline and
// scores every answer against gold references with transparent lexical
// proxies (keyword coverage, context overlap, hit@k, citation recall,
// claim-vs-evidence precision/recall/F1), then applies rule-based error
// tags so weak answers are easy to triage.
//
// # Quick Start
//
// Evaluate a directory of markdown notes with the offline stub
// generator:
//
//	ctx := context.Background()
//
//	p, err := ragmark.New(ctx, corpus.NewDir("./corpus"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	questions, err := dataset.Load("./questions.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	records, err := ragmark.NewEvaluator(p).Run(ctx, questions)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary := report.Summarize(records)
//	fmt.Printf("items=%d avg_score=%.3f\n", summary.Items, summary.AvgScore)
//
// # Retrieval Modes
//
// The default mode is lexical (BM25 over the corpus). Dense and hybrid
// modes need an embedder:
//
//	emb, _ := openai.New(openai.Config{APIKey: os.Getenv("OPENAI_API_KEY")})
//
//	p, err := ragmark.New(ctx, source,
//	    ragmark.WithMode(ragmark.ModeHybrid),
//	    ragmark.WithEmbedder(emb),
//	    ragmark.WithFusion(fusion.ModeRRF, 0),
//	)
//
// Hybrid mode retrieves both rankings and fuses them, linearly weighted
// or by reciprocal rank, truncated back to the configured top k.
//
// # Answer Generators
//
// Without a generator the deterministic stub is used: it joins the
// citation quotes into a claim, so runs are reproducible and free. Real
// models plug in behind the same interface:
//
//	gen, _ := anthropic.New(anthropic.Config{APIKey: os.Getenv("ANTHROPIC_API_KEY")})
//
//	p, err := ragmark.New(ctx, source, ragmark.WithGenerator(gen))
//
// # Artifacts
//
// Evaluation records serialize to JSONL (optionally zstd or lz4
// compressed), flatten to CSV, render to a single-file HTML report and
// can be mirrored to a DynamoDB run ledger. See the report package.
//
// # Observability
//
// The library is silent by default. Wire a logger and a collector to
// watch a run:
//
//	collector := &ragmark.BasicCollector{}
//	p, _ := ragmark.New(ctx, source,
//	    ragmark.WithLogger(ragmark.NewJSONLogger(slog.LevelInfo)),
//	    ragmark.WithCollector(collector),
//	)
package ragmark
