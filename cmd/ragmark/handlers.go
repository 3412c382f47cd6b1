package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/ragmark"
	"github.com/hupe1980/ragmark/answer"
	answeranthropic "github.com/hupe1980/ragmark/answer/anthropic"
	answeropenai "github.com/hupe1980/ragmark/answer/openai"
	"github.com/hupe1980/ragmark/config"
	"github.com/hupe1980/ragmark/corpus"
	corpusminio "github.com/hupe1980/ragmark/corpus/minio"
	corpuss3 "github.com/hupe1980/ragmark/corpus/s3"
	"github.com/hupe1980/ragmark/dataset"
	"github.com/hupe1980/ragmark/dense"
	denseopenai "github.com/hupe1980/ragmark/dense/openai"
	"github.com/hupe1980/ragmark/distance"
	"github.com/hupe1980/ragmark/fusion"
	"github.com/hupe1980/ragmark/metrics"
	"github.com/hupe1980/ragmark/report"
	"github.com/hupe1980/ragmark/report/ddb"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func runEval(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}

	questions, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	evaluator := ragmark.NewEvaluator(pipeline,
		ragmark.WithScoreAlpha(cfg.Eval.ScoreAlpha),
		ragmark.WithHitK(cfg.Eval.HitK),
		ragmark.WithThresholds(metrics.Thresholds{
			LowCoverage: cfg.Eval.Thresholds.LowCoverage,
			LowOverlap:  cfg.Eval.Thresholds.LowOverlap,
		}),
		ragmark.WithConcurrency(cfg.Eval.Concurrency),
	)

	records, err := evaluator.Run(ctx, questions)
	if err != nil {
		return fmt.Errorf("run evaluation: %w", err)
	}

	summary := report.Summarize(records)

	if err := writeArtifacts(cfg.Report, records, logger); err != nil {
		return err
	}

	if cfg.Report.DynamoTable != "" {
		if err := publishRun(ctx, cfg.Report.DynamoTable, summary, records); err != nil {
			return err
		}

		logger.Info("published run", slog.String("table", cfg.Report.DynamoTable))
	}

	logger.Info("evaluation complete",
		slog.String("run_id", summary.RunID),
		slog.Int("items", summary.Items),
		slog.Int("errors", summary.Errors),
		slog.Float64("avg_score", summary.AvgScore),
		slog.Float64("avg_coverage", summary.AvgCoverage),
		slog.Float64("avg_hit_at_k", summary.AvgHitAtK),
	)

	return nil
}

func runBench(ctx context.Context, configPath string, topK int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	source, err := buildSource(ctx, cfg.Corpus)
	if err != nil {
		return err
	}

	// Lexical only. The benchmark isolates BM25 quality and must not
	// require embedding credentials.
	pipeline, err := ragmark.New(ctx, source,
		ragmark.WithMode(ragmark.ModeLexical),
		ragmark.WithTopK(topK),
		ragmark.WithBM25(cfg.Retrieval.K1, cfg.Retrieval.B),
	)
	if err != nil {
		return err
	}

	questions, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	hits := 0

	for _, q := range questions {
		ranking, err := pipeline.Retrieve(ctx, q.Text, topK)
		if err != nil {
			return fmt.Errorf("retrieve %q: %w", q.ID, err)
		}

		if metrics.HitAtK(ranking, q.MustBeGroundedIn, topK) == 1.0 {
			hits++
		}
	}

	avg := 0.0
	if len(questions) > 0 {
		avg = float64(hits) / float64(len(questions))
	}

	fmt.Printf("BM25 hit@%d: %.3f (%d/%d)\n", topK, avg, hits, len(questions))

	return nil
}

func runQuery(ctx context.Context, configPath, query string, topK int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if topK <= 0 {
		topK = pipeline.TopK()
	}

	ranking, err := pipeline.Retrieve(ctx, query, topK)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tDOC\tSCORE\n")

	for i, sd := range ranking {
		fmt.Fprintf(w, "%d\t%s\t%.4f\n", i+1, sd.DocID, sd.Score)
	}

	return w.Flush()
}

func runReport(in, out string) error {
	records, err := report.ReadJSONL(in)
	if err != nil {
		return err
	}

	if err := report.WriteHTML(out, records); err != nil {
		return err
	}

	summary := report.Summarize(records)
	fmt.Printf("rendered %d records (errors: %d, avg score: %.3f) to %s\n",
		summary.Items, summary.Errors, summary.AvgScore, out)

	return nil
}

// buildLogger maps the logging section onto a pipeline logger. The
// level string follows slog conventions (debug, info, warn, error).
func buildLogger(cfg config.LoggingConfig) (*ragmark.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	if strings.EqualFold(cfg.Format, "json") {
		return ragmark.NewJSONLogger(level), nil
	}

	return ragmark.NewTextLogger(level), nil
}

// buildPipeline assembles a pipeline from the full configuration:
// corpus source, retrieval settings, and the embedding and generation
// providers.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *ragmark.Logger) (*ragmark.Pipeline, error) {
	source, err := buildSource(ctx, cfg.Corpus)
	if err != nil {
		return nil, err
	}

	mode, err := ragmark.ParseMode(cfg.Retrieval.Mode)
	if err != nil {
		return nil, err
	}

	fusionMode, err := fusion.ParseMode(cfg.Retrieval.Fusion)
	if err != nil {
		return nil, err
	}

	generator, err := buildGenerator(cfg.Answer)
	if err != nil {
		return nil, err
	}

	opts := []ragmark.Option{
		ragmark.WithLogger(logger),
		ragmark.WithMode(mode),
		ragmark.WithTopK(cfg.Retrieval.TopK),
		ragmark.WithBM25(cfg.Retrieval.K1, cfg.Retrieval.B),
		ragmark.WithFusion(fusionMode, cfg.Retrieval.Alpha),
		ragmark.WithRRFK(cfg.Retrieval.RRFK),
		ragmark.WithGenerator(generator),
	}

	if mode != ragmark.ModeLexical {
		embedder, err := buildEmbedder(cfg.Dense)
		if err != nil {
			return nil, err
		}

		metric, err := distance.ParseMetric(cfg.Dense.Metric)
		if err != nil {
			return nil, fmt.Errorf("dense.metric: %w", err)
		}

		opts = append(opts, ragmark.WithEmbedder(embedder), ragmark.WithDenseMetric(metric))
	}

	return ragmark.New(ctx, source, opts...)
}

func buildSource(ctx context.Context, cfg config.CorpusConfig) (corpus.Source, error) {
	switch {
	case cfg.Dir != "":
		return corpus.NewDir(cfg.Dir), nil
	case cfg.S3 != nil:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		return corpuss3.New(s3.NewFromConfig(awsCfg), cfg.S3.Bucket, cfg.S3.Prefix), nil
	case cfg.Minio != nil:
		client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("create minio client: %w", err)
		}

		return corpusminio.New(client, cfg.Minio.Bucket, cfg.Minio.Prefix), nil
	default:
		return nil, errors.New("config has no corpus source")
	}
}

func buildEmbedder(cfg config.DenseConfig) (dense.Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		embedder, err := denseopenai.New(denseopenai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("create openai embedder: %w", err)
		}

		if cfg.RateLimitRPS > 0 {
			return dense.NewLimitEmbedder(embedder, cfg.RateLimitRPS, 1), nil
		}

		return embedder, nil
	default:
		return nil, fmt.Errorf("unsupported dense provider %q", cfg.Provider)
	}
}

func buildGenerator(cfg config.AnswerConfig) (answer.Generator, error) {
	var (
		generator answer.Generator
		err       error
	)

	switch strings.ToLower(cfg.Provider) {
	case "", "stub":
		var opts []answer.StubOption
		if cfg.MaxClaimChars > 0 {
			opts = append(opts, answer.WithMaxClaimChars(cfg.MaxClaimChars))
		}

		generator = answer.NewStub(opts...)
	case "openai":
		generator, err = answeropenai.New(answeropenai.Config{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	case "anthropic":
		generator, err = answeranthropic.New(answeranthropic.Config{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			MaxTokens: int64(cfg.MaxTokens),
		})
	default:
		err = fmt.Errorf("unsupported answer provider %q", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}

	if cfg.RateLimitRPS > 0 {
		generator = answer.NewLimit(generator, cfg.RateLimitRPS, 1)
	}

	return generator, nil
}

// writeArtifacts writes one file per configured format into the report
// directory. The JSONL artifact carries the compression extension so a
// later "ragmark report --in" can detect it.
func writeArtifacts(cfg config.ReportConfig, records []report.Record, logger *ragmark.Logger) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	compression, err := report.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}

	for _, format := range cfg.Formats {
		var path string

		switch strings.ToLower(format) {
		case "jsonl":
			path = filepath.Join(cfg.Dir, "eval_report.jsonl"+compression.Ext())
			err = report.WriteJSONL(path, records, compression)
		case "csv":
			path = filepath.Join(cfg.Dir, "eval_report.csv")
			err = report.WriteCSV(path, records)
		case "html":
			path = filepath.Join(cfg.Dir, "report.html")
			err = report.WriteHTML(path, records)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}

		if err != nil {
			return fmt.Errorf("write %s artifact: %w", format, err)
		}

		logger.Info("wrote artifact", slog.String("path", path))
	}

	return nil
}

func publishRun(ctx context.Context, table string, summary report.Summary, records []report.Record) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	sink := ddb.NewSink(dynamodb.NewFromConfig(awsCfg), table)
	if err := sink.Publish(ctx, summary, records); err != nil {
		return fmt.Errorf("publish run: %w", err)
	}

	return nil
}
