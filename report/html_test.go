package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/ragmark/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	records := []Record{
		{
			RunID:         "run-1",
			ID:            "q1",
			AnswerPreview: "endocrine therapy recommended",
			Score:         0.75,
			Metrics:       metrics.Bundle{KeywordCoverage: 1.0, ContextOverlap: 0.5},
			Tags:          []string{"low_overlap"},
		},
		{
			RunID: "run-1",
			ID:    "q2",
			Error: "generate: boom",
		},
	}

	require.NoError(t, WriteHTML(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "RAG Evaluation Report")
	assert.Contains(t, html, "<b>Items:</b> 2")
	assert.Contains(t, html, "<b>Errors:</b> 1")
	assert.Contains(t, html, "run-1")
	assert.Contains(t, html, "q1")
	assert.Contains(t, html, "0.750")
	assert.Contains(t, html, "low_overlap")
	assert.Contains(t, html, "generate: boom")
}

func TestWriteHTML_EscapesMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	records := []Record{
		{ID: "q1", AnswerPreview: "<script>alert(1)</script>"},
	}

	require.NoError(t, WriteHTML(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "<script>alert(1)</script>")
	assert.Contains(t, string(data), "&lt;script&gt;")
}

func TestWriteHTML_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	require.NoError(t, WriteHTML(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<b>Items:</b> 0")
}
