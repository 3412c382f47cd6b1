package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir loads every *.md and *.txt file from a local directory. The file name
// (with extension) becomes the doc id; entries are ordered by name.
type Dir struct {
	path string
}

// NewDir creates a directory-backed corpus source.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Load implements Source.
func (d *Dir) Load(_ context.Context) ([]Document, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %q: %w", d.path, err)
	}

	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !hasCorpusExt(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(d.path, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read corpus file %q: %w", e.Name(), err)
		}
		docs = append(docs, Document{ID: e.Name(), Text: string(data)})
	}

	return docs, nil
}

func hasCorpusExt(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".txt")
}
