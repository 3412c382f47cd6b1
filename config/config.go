// Package config loads the YAML run configuration for the evaluation
// pipeline. Environment variables in the file are expanded before
// parsing, so secrets like ${OPENAI_API_KEY} never have to live in the
// file itself. Zero values take documented defaults; Validate catches
// the combinations the pipeline cannot run with.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/ragmark/distance"
	"github.com/hupe1980/ragmark/metrics"
	"github.com/hupe1980/ragmark/report"
	"gopkg.in/yaml.v3"
)

// Config is the top-level run configuration.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Dense     DenseConfig     `yaml:"dense"`
	Answer    AnswerConfig    `yaml:"answer"`
	Eval      EvalConfig      `yaml:"eval"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CorpusConfig selects exactly one document source.
type CorpusConfig struct {
	Dir   string       `yaml:"dir"`
	S3    *S3Config    `yaml:"s3"`
	Minio *MinioConfig `yaml:"minio"`
}

type S3Config struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type DatasetConfig struct {
	Path string `yaml:"path"`
}

// RetrievalConfig controls ranking. Mode is one of lexical, dense or
// hybrid; Fusion only applies in hybrid mode.
type RetrievalConfig struct {
	Mode   string  `yaml:"mode"`
	TopK   int     `yaml:"top_k"`
	K1     float64 `yaml:"k1"`
	B      float64 `yaml:"b"`
	Fusion string  `yaml:"fusion"`
	Alpha  float64 `yaml:"alpha"`
	RRFK   int     `yaml:"rrf_k"`
}

// DenseConfig configures the embedding provider for dense and hybrid
// retrieval. Leaving Provider empty disables the dense side entirely.
type DenseConfig struct {
	Provider     string  `yaml:"provider"`
	Model        string  `yaml:"model"`
	APIKey       string  `yaml:"api_key"`
	BaseURL      string  `yaml:"base_url"`
	Metric       string  `yaml:"metric"`
	RateLimitRPS float64 `yaml:"rate_limit_rps"`
}

// AnswerConfig configures the answer generator. The stub provider is
// the default and needs no credentials.
type AnswerConfig struct {
	Provider      string  `yaml:"provider"`
	Model         string  `yaml:"model"`
	APIKey        string  `yaml:"api_key"`
	BaseURL       string  `yaml:"base_url"`
	MaxTokens     int     `yaml:"max_tokens"`
	MaxClaimChars int     `yaml:"max_claim_chars"`
	RateLimitRPS  float64 `yaml:"rate_limit_rps"`
}

type EvalConfig struct {
	ScoreAlpha  float64          `yaml:"score_alpha"`
	HitK        int              `yaml:"hit_k"`
	Concurrency int              `yaml:"concurrency"`
	Thresholds  ThresholdsConfig `yaml:"thresholds"`
}

type ThresholdsConfig struct {
	LowCoverage float64 `yaml:"low_coverage"`
	LowOverlap  float64 `yaml:"low_overlap"`
}

// ReportConfig controls which artifacts a run writes. Formats accepts
// jsonl, csv and html; DynamoTable enables the optional run ledger.
type ReportConfig struct {
	Dir         string   `yaml:"dir"`
	Formats     []string `yaml:"formats"`
	Compression string   `yaml:"compression"`
	DynamoTable string   `yaml:"dynamo_table"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads, expands and parses the configuration file, then applies
// defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills zero values with the documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Retrieval.Mode == "" {
		c.Retrieval.Mode = "lexical"
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = 5
	}
	if c.Retrieval.K1 == 0 {
		c.Retrieval.K1 = 1.5
	}
	if c.Retrieval.B == 0 {
		c.Retrieval.B = 0.75
	}
	if c.Retrieval.Fusion == "" {
		c.Retrieval.Fusion = "linear"
	}
	if c.Retrieval.Alpha == 0 {
		c.Retrieval.Alpha = 0.5
	}
	if c.Dense.Metric == "" {
		c.Dense.Metric = "cosine"
	}
	if c.Answer.Provider == "" {
		c.Answer.Provider = "stub"
	}
	if c.Eval.ScoreAlpha == 0 {
		c.Eval.ScoreAlpha = metrics.DefaultScoreAlpha
	}
	if c.Eval.HitK == 0 {
		c.Eval.HitK = c.Retrieval.TopK
	}
	if c.Eval.Concurrency == 0 {
		c.Eval.Concurrency = 4
	}
	if c.Eval.Thresholds.LowCoverage == 0 {
		c.Eval.Thresholds.LowCoverage = metrics.DefaultLowCoverage
	}
	if c.Eval.Thresholds.LowOverlap == 0 {
		c.Eval.Thresholds.LowOverlap = metrics.DefaultLowOverlap
	}
	if c.Report.Dir == "" {
		c.Report.Dir = "reports"
	}
	if len(c.Report.Formats) == 0 {
		c.Report.Formats = []string{"jsonl", "csv", "html"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate reports the first configuration problem it finds.
func (c *Config) Validate() error {
	sources := 0
	if c.Corpus.Dir != "" {
		sources++
	}
	if c.Corpus.S3 != nil {
		sources++
		if c.Corpus.S3.Bucket == "" {
			return fmt.Errorf("corpus.s3.bucket is required")
		}
	}
	if c.Corpus.Minio != nil {
		sources++
		if c.Corpus.Minio.Endpoint == "" || c.Corpus.Minio.Bucket == "" {
			return fmt.Errorf("corpus.minio requires endpoint and bucket")
		}
	}
	if sources == 0 {
		return fmt.Errorf("corpus requires one of dir, s3 or minio")
	}
	if sources > 1 {
		return fmt.Errorf("corpus allows only one of dir, s3 or minio")
	}

	switch c.Retrieval.Mode {
	case "lexical", "dense", "hybrid":
	default:
		return fmt.Errorf("retrieval.mode %q is not one of lexical, dense, hybrid", c.Retrieval.Mode)
	}

	if c.Retrieval.TopK < 0 {
		return fmt.Errorf("retrieval.top_k must not be negative")
	}
	if c.Retrieval.Alpha < 0 || c.Retrieval.Alpha > 1 {
		return fmt.Errorf("retrieval.alpha must be between 0 and 1")
	}

	switch c.Retrieval.Fusion {
	case "linear", "rrf":
	default:
		return fmt.Errorf("retrieval.fusion %q is not one of linear, rrf", c.Retrieval.Fusion)
	}

	if c.Retrieval.Mode != "lexical" && c.Dense.Provider == "" {
		return fmt.Errorf("retrieval.mode %q requires dense.provider", c.Retrieval.Mode)
	}

	if c.Dense.Provider != "" && c.Dense.Provider != "openai" {
		return fmt.Errorf("dense.provider %q is not supported", c.Dense.Provider)
	}

	if _, err := distance.ParseMetric(c.Dense.Metric); err != nil {
		return fmt.Errorf("dense.metric: %w", err)
	}

	switch c.Answer.Provider {
	case "stub", "openai", "anthropic":
	default:
		return fmt.Errorf("answer.provider %q is not one of stub, openai, anthropic", c.Answer.Provider)
	}

	if c.Eval.ScoreAlpha < 0 || c.Eval.ScoreAlpha > 1 {
		return fmt.Errorf("eval.score_alpha must be between 0 and 1")
	}

	for _, format := range c.Report.Formats {
		switch strings.ToLower(format) {
		case "jsonl", "csv", "html":
		default:
			return fmt.Errorf("report.formats entry %q is not one of jsonl, csv, html", format)
		}
	}

	if _, err := report.ParseCompression(c.Report.Compression); err != nil {
		return fmt.Errorf("report.compression: %w", err)
	}

	return nil
}
