package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "ragmark.yaml"

// buildRunCmd creates the "run" command that executes a full
// evaluation and writes the configured artifacts.
func buildRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the evaluation pipeline",
		Long: `Run the full evaluation pipeline:

1. Load the corpus from the configured source (directory, S3, or MinIO)
2. Build the lexical index, plus a dense index when configured
3. Answer every dataset question through the configured generator
4. Score each answer and tag its failure modes
5. Write the configured artifacts (JSONL, CSV, HTML) and optionally
   publish the run to DynamoDB`,
		Example: `  # Evaluate with the checked-in config
  ragmark run --config ragmark.yaml

  # Secrets come from the environment via ${VAR} expansion in the config
  OPENAI_API_KEY=sk-... ragmark run --config ragmark.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath,
		"Path to YAML configuration file")

	return cmd
}

// buildBenchCmd creates the "bench" command that measures lexical
// retrieval quality in isolation, without answer generation.
func buildBenchCmd() *cobra.Command {
	var (
		configPath string
		topK       int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark lexical retrieval with hit@k",
		Long: `Benchmark BM25 retrieval against the dataset's gold documents.

Every question is retrieved lexically and counts as a hit when any of
the first k results is one of its gold documents. No answers are
generated, so the benchmark needs no API keys.`,
		Example: `  ragmark bench --config ragmark.yaml
  ragmark bench --config ragmark.yaml --top-k 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), configPath, topK)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath,
		"Path to YAML configuration file")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 5,
		"Number of results considered for a hit")

	return cmd
}

// buildQueryCmd creates the "query" command for ad-hoc retrieval.
func buildQueryCmd() *cobra.Command {
	var (
		configPath string
		query      string
		topK       int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Retrieve documents for a single query",
		Long: `Retrieve documents for a single query and print the ranking.

The retrieval mode, fusion settings, and BM25 parameters come from the
configuration file, so the printed ranking matches what an evaluation
run would retrieve.`,
		Example: `  ragmark query --config ragmark.yaml --q "adjuvant endocrine therapy"
  ragmark query --config ragmark.yaml --q "ACE inhibitor" --top-k 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), configPath, query, topK)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath,
		"Path to YAML configuration file")
	cmd.Flags().StringVar(&query, "q", "",
		"Query text (required)")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0,
		"Number of results (0 uses the configured top_k)")

	_ = cmd.MarkFlagRequired("q")

	return cmd
}

// buildReportCmd creates the "report" command that re-renders an HTML
// report from a previous run's JSONL artifact.
func buildReportCmd() *cobra.Command {
	var (
		in  string
		out string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an HTML report from a JSONL artifact",
		Long: `Render an HTML report from the JSONL artifact of a previous run.

Compression is detected from the input extension, so .jsonl, .jsonl.zst,
and .jsonl.lz4 all work.`,
		Example: `  ragmark report --in reports/eval_report.jsonl --out reports/report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(in, out)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "",
		"Path to the JSONL records of a previous run (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "report.html",
		"Path of the HTML file to write")

	_ = cmd.MarkFlagRequired("in")

	return cmd
}
