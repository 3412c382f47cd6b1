package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// csvColumns is the flat per-question metric table layout.
var csvColumns = []string{"id", "keyword_coverage", "context_overlap", "score"}

// WriteCSV writes the per-question metric table.
func WriteCSV(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)

	if err := w.Write(csvColumns); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	for _, rec := range records {
		row := []string{
			rec.ID,
			formatFloat(rec.Metrics.KeywordCoverage),
			formatFloat(rec.Metrics.ContextOverlap),
			formatFloat(rec.Score),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}

	w.Flush()

	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
