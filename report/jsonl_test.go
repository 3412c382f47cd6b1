package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/ragmark/metrics"
	"github.com/hupe1980/ragmark/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{
			RunID:         "run-1",
			ID:            "q1",
			Question:      "What therapy?",
			AnswerPreview: "endocrine therapy recommended",
			Answer: &model.Answer{
				Claim:     "endocrine therapy recommended",
				Citations: []model.Citation{{DocID: "note_01.md", Quote: "endocrine therapy"}},
				Metadata:  map[string]any{"model": "stub"},
			},
			ExpectedKeywords: []string{"endocrine"},
			MustBeGroundedIn: []string{"note_01.md"},
			RetrievedDocs: model.Ranking{
				{DocID: "note_01.md", Score: 2.1},
				{DocID: "note_02.md", Score: 0.0},
			},
			Metrics: metrics.Bundle{
				HitAtK:          1.0,
				KeywordCoverage: 1.0,
				ContextOverlap:  0.5,
			},
			Score: 0.75,
		},
		{
			RunID:         "run-1",
			ID:            "q2",
			Question:      "Which mutation?",
			AnswerPreview: "No grounded answer.",
			Tags:          []string{"no_hit_at_k", "no_citations"},
		},
	}
}

func TestJSONL_RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		compression Compression
	}{
		{name: "plain", file: "run.jsonl", compression: CompressionNone},
		{name: "zstd", file: "run.jsonl.zst", compression: CompressionZstd},
		{name: "lz4", file: "run.jsonl.lz4", compression: CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			records := sampleRecords()

			require.NoError(t, WriteJSONL(path, records, tt.compression))

			got, err := ReadJSONL(path)
			require.NoError(t, err)
			assert.Equal(t, records, got)
		})
	}
}

func TestJSONL_CompressedSmaller(t *testing.T) {
	dir := t.TempDir()

	var records []Record
	for i := 0; i < 50; i++ {
		rec := sampleRecords()[0]
		rec.ID = rec.ID + string(rune('a'+i%26))
		records = append(records, rec)
	}

	plain := filepath.Join(dir, "run.jsonl")
	compressed := filepath.Join(dir, "run.jsonl.zst")

	require.NoError(t, WriteJSONL(plain, records, CompressionNone))
	require.NoError(t, WriteJSONL(compressed, records, CompressionZstd))

	plainInfo, err := os.Stat(plain)
	require.NoError(t, err)
	compressedInfo, err := os.Stat(compressed)
	require.NoError(t, err)

	assert.Less(t, compressedInfo.Size(), plainInfo.Size())
}

func TestReadJSONL_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	content := `{"id":"q1","question":"x?","answer_preview":"","retrieved_docs":null,"metrics":{"hit@k":0,"citation_recall":0,"keyword_coverage":0,"context_overlap":0,"faithfulness_stub":0,"faithfulness_precision":0,"faithfulness_recall":0,"faithfulness_f1":0},"score":0}

{"id":"q2","question":"y?","answer_preview":"","retrieved_docs":null,"metrics":{"hit@k":0,"citation_recall":0,"keyword_coverage":0,"context_overlap":0,"faithfulness_stub":0,"faithfulness_precision":0,"faithfulness_recall":0,"faithfulness_f1":0},"score":0}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	records, err := ReadJSONL(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "q1", records[0].ID)
	assert.Equal(t, "q2", records[1].ID)
}

func TestReadJSONL_MissingFile(t *testing.T) {
	_, err := ReadJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}

func TestCompression_Names(t *testing.T) {
	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())

	assert.Equal(t, "", CompressionNone.Ext())
	assert.Equal(t, ".zst", CompressionZstd.Ext())
	assert.Equal(t, ".lz4", CompressionLZ4.Ext())
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		input   string
		want    Compression
		wantErr bool
	}{
		{input: "", want: CompressionNone},
		{input: "none", want: CompressionNone},
		{input: "zstd", want: CompressionZstd},
		{input: "LZ4", want: CompressionLZ4},
		{input: "gzip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompression(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CompressionNone, DetectCompression("run.jsonl"))
	assert.Equal(t, CompressionZstd, DetectCompression("run.jsonl.zst"))
	assert.Equal(t, CompressionLZ4, DetectCompression("run.jsonl.lz4"))
}
