// Package corpus supplies the document set one evaluation run is indexed
// over. A corpus is a static set of (doc id, text) pairs with stable, unique
// ids; sources load it wholesale, there is no incremental update.
//
// Subpackages provide remote sources (s3, minio) behind the same Source
// interface.
package corpus

import (
	"context"
	"sort"
)

// Document is one corpus entry.
type Document struct {
	ID   string `json:"doc_id"`
	Text string `json:"text"`
}

// Source loads a corpus snapshot. Load returns documents in a stable
// enumeration order; that order is what ranking tie-breaks fall back to.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
}

// Memory is an in-memory Source, mainly for tests and embedded use.
type Memory []Document

// Load implements Source.
func (m Memory) Load(_ context.Context) ([]Document, error) {
	return m, nil
}

// FromMap builds a Memory source from an id->text map, ordered by id so the
// enumeration order is deterministic.
func FromMap(docs map[string]string) Memory {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	m := make(Memory, 0, len(docs))
	for _, id := range ids {
		m = append(m, Document{ID: id, Text: docs[id]})
	}
	return m
}

// TextByID returns a lookup map from doc id to text.
func TextByID(docs []Document) map[string]string {
	byID := make(map[string]string, len(docs))
	for _, d := range docs {
		byID[d.ID] = d.Text
	}
	return byID
}
