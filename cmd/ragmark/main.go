// Package main provides the ragmark command line interface.
//
// ragmark evaluates retrieval-augmented answering over a document
// corpus: it builds an in-memory index, retrieves context for every
// question in a dataset, generates answers, and scores them with a
// token-level metric suite.
//
// # Basic Usage
//
// Run a full evaluation:
//
//	ragmark run --config ragmark.yaml
//
// Benchmark lexical retrieval on its own:
//
//	ragmark bench --config ragmark.yaml
//
// Inspect the ranking for a single query:
//
//	ragmark query --config ragmark.yaml --q "adjuvant endocrine therapy"
//
// Re-render an HTML report from a previous run:
//
//	ragmark report --in reports/eval_report.jsonl --out reports/report.html
//
// # Environment Variables
//
// Configuration files are passed through os.ExpandEnv before parsing,
// so secrets are typically referenced as ${VAR} and provided via the
// environment:
//
//   - OPENAI_API_KEY: OpenAI key for embeddings and answer generation
//   - ANTHROPIC_API_KEY: Anthropic key for answer generation
//   - AWS_REGION, AWS_PROFILE, ...: credentials for S3 corpora and
//     DynamoDB run publishing, resolved by the default AWS chain
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build information, populated by ldflags.
//
// Example build command:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
// Separated from main to facilitate testing.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ragmark",
		Short: "Evaluate retrieval-augmented answering over a corpus",
		Long: `ragmark indexes a document corpus, answers a question set against it,
and scores every answer with a token-level metric suite.

Retrieval modes: lexical (BM25), dense (embeddings), hybrid (fused)
Answer providers: stub (offline), OpenAI, Anthropic
Artifacts: JSONL (plain, zstd, or lz4), CSV, HTML, DynamoDB`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		// SilenceUsage prevents printing usage on every error.
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		buildRunCmd(),
		buildBenchCmd(),
		buildQueryCmd(),
		buildReportCmd(),
	)

	return rootCmd
}
