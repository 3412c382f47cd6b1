package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/ragmark/answer"
	"github.com/hupe1980/ragmark/config"
	"github.com/hupe1980/ragmark/corpus"
	"github.com/hupe1980/ragmark/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRootCmd(t *testing.T) {
	cmd := buildRootCmd()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, name := range []string{"run", "bench", "query", "report"} {
		assert.Truef(t, names[name], "subcommand %q must be registered", name)
	}
}

func TestBuildLogger(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		logger, err := buildLogger(config.LoggingConfig{Level: "info", Format: "text"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("json", func(t *testing.T) {
		logger, err := buildLogger(config.LoggingConfig{Level: "debug", Format: "json"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := buildLogger(config.LoggingConfig{Level: "loud", Format: "text"})
		require.Error(t, err)
		assert.ErrorContains(t, err, "logging.level")
	})
}

func TestBuildSource(t *testing.T) {
	t.Run("dir", func(t *testing.T) {
		source, err := buildSource(context.Background(), config.CorpusConfig{Dir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &corpus.Dir{}, source)
	})

	t.Run("none", func(t *testing.T) {
		_, err := buildSource(context.Background(), config.CorpusConfig{})
		require.Error(t, err)
	})
}

func TestBuildGenerator(t *testing.T) {
	t.Run("stub by default", func(t *testing.T) {
		g, err := buildGenerator(config.AnswerConfig{})
		require.NoError(t, err)
		assert.IsType(t, &answer.Stub{}, g)
	})

	t.Run("rate limited", func(t *testing.T) {
		g, err := buildGenerator(config.AnswerConfig{Provider: "stub", RateLimitRPS: 2})
		require.NoError(t, err)
		assert.IsType(t, &answer.Limit{}, g)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := buildGenerator(config.AnswerConfig{Provider: "parrot"})
		require.Error(t, err)
		assert.ErrorContains(t, err, "parrot")
	})
}

// writeEvalFixture lays out a corpus, a dataset, and a config file in
// a temp directory and returns the config path and the report dir.
func writeEvalFixture(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()

	corpusDir := filepath.Join(dir, "corpus")
	require.NoError(t, os.MkdirAll(corpusDir, 0o755))

	note := "## HPI\nBreast cancer follow-up.\n\n## Assessment and Plan\nStart adjuvant endocrine therapy with tamoxifen."
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "note_01.md"), []byte(note), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "note_02.md"), []byte("Hypertension note. Continue lisinopril."), 0o600))

	datasetPath := filepath.Join(dir, "questions.json")
	questions := `[{"id":"q1","question":"What adjuvant endocrine therapy was started?","expected_keywords":["breast cancer"],"must_be_grounded_in":["note_01.md"]}]`
	require.NoError(t, os.WriteFile(datasetPath, []byte(questions), 0o600))

	reportDir := filepath.Join(dir, "reports")

	configPath := filepath.Join(dir, "ragmark.yaml")
	cfg := fmt.Sprintf(`corpus:
  dir: %s
dataset:
  path: %s
report:
  dir: %s
logging:
  level: error
`, corpusDir, datasetPath, reportDir)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o600))

	return configPath, reportDir
}

func TestRunEval_EndToEnd(t *testing.T) {
	configPath, reportDir := writeEvalFixture(t)

	require.NoError(t, runEval(context.Background(), configPath))

	records, err := report.ReadJSONL(filepath.Join(reportDir, "eval_report.jsonl"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "q1", rec.ID)
	assert.Empty(t, rec.Error)
	assert.NotEmpty(t, rec.RunID)
	assert.Equal(t, 1.0, rec.Metrics.HitAtK)
	assert.Equal(t, 1.0, rec.Metrics.KeywordCoverage)

	assert.FileExists(t, filepath.Join(reportDir, "eval_report.csv"))
	assert.FileExists(t, filepath.Join(reportDir, "report.html"))
}

func TestRunBench(t *testing.T) {
	configPath, _ := writeEvalFixture(t)

	require.NoError(t, runBench(context.Background(), configPath, 5))
}

func TestRunQuery(t *testing.T) {
	configPath, _ := writeEvalFixture(t)

	require.NoError(t, runQuery(context.Background(), configPath, "adjuvant endocrine therapy", 2))
}

func TestRunReport(t *testing.T) {
	configPath, reportDir := writeEvalFixture(t)
	require.NoError(t, runEval(context.Background(), configPath))

	out := filepath.Join(reportDir, "rerendered.html")
	require.NoError(t, runReport(filepath.Join(reportDir, "eval_report.jsonl"), out))

	assert.FileExists(t, out)
}
