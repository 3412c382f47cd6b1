package lexical

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/ragmark/corpus"
	"github.com/hupe1980/ragmark/model"
	"github.com/hupe1980/ragmark/tokenizer"
)

// BM25 parameter defaults.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// ErrInvalidTopK is returned when a negative top k is requested.
var ErrInvalidTopK = errors.New("top k must be non-negative")

type options struct {
	k1 float64
	b  float64
}

// Option configures index construction.
type Option func(*options)

// WithK1 sets the BM25 term-frequency saturation parameter.
func WithK1(k1 float64) Option {
	return func(o *options) {
		o.k1 = k1
	}
}

// WithB sets the BM25 length-normalization parameter.
func WithB(b float64) Option {
	return func(o *options) {
		o.b = b
	}
}

// Index holds one corpus snapshot with its derived statistics: per-term
// posting bitmaps over document ordinals, per-document token counts and the
// average document length. Immutable after New; safe for concurrent readers.
type Index struct {
	docs     []Document
	ordinals map[string]int
	postings map[string]*roaring.Bitmap
	avgdl    float64
	k1       float64
	b        float64
}

// New builds an index over docs in their given enumeration order. The order
// determines tie-breaking in Retrieve, so callers should pass a stable one.
func New(docs []corpus.Document, optFns ...Option) *Index {
	o := options{k1: DefaultK1, b: DefaultB}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	idx := &Index{
		docs:     make([]Document, 0, len(docs)),
		ordinals: make(map[string]int, len(docs)),
		postings: make(map[string]*roaring.Bitmap),
		k1:       o.k1,
		b:        o.b,
	}

	var totalLen int64
	for _, d := range docs {
		ord := len(idx.docs)
		doc := newDocument(d.ID, d.Text)
		idx.docs = append(idx.docs, doc)
		idx.ordinals[doc.ID] = ord
		totalLen += int64(doc.Length)

		for term := range doc.freqs {
			bm := idx.postings[term]
			if bm == nil {
				bm = roaring.New()
				idx.postings[term] = bm
			}
			bm.Add(uint32(ord))
		}
	}

	if len(idx.docs) > 0 {
		idx.avgdl = float64(totalLen) / float64(len(idx.docs))
	}

	return idx
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.docs)
}

// AvgDocLength returns the average document length in tokens (0 when empty).
func (idx *Index) AvgDocLength() float64 {
	return idx.avgdl
}

// DocumentFrequency returns the number of documents containing term.
func (idx *Index) DocumentFrequency(term string) int {
	bm := idx.postings[term]
	if bm == nil {
		return 0
	}
	return int(bm.GetCardinality())
}

// Doc returns the indexed document with the given id.
func (idx *Index) Doc(id string) (Document, bool) {
	ord, ok := idx.ordinals[id]
	if !ok {
		return Document{}, false
	}
	return idx.docs[ord], true
}

// Retrieve scores every indexed document against query and returns the
// topK highest, sorted descending with ties keeping corpus enumeration
// order. topK larger than the corpus returns the full ranking. Pure and
// deterministic for a fixed index and query.
func (idx *Index) Retrieve(query string, topK int) (model.Ranking, error) {
	if topK < 0 {
		return nil, ErrInvalidTopK
	}

	scores := idx.scoreAll(query)

	ranking := make(model.Ranking, len(idx.docs))
	for ord, doc := range idx.docs {
		ranking[ord] = model.ScoredDoc{DocID: doc.ID, Score: scores[ord]}
	}

	slices.SortStableFunc(ranking, func(a, b model.ScoredDoc) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranking.Truncate(topK), nil
}

// Score computes the BM25 score of query against a single document.
// Unknown doc ids score 0.
func (idx *Index) Score(query, docID string) float64 {
	ord, ok := idx.ordinals[docID]
	if !ok {
		return 0
	}

	doc := idx.docs[ord]
	var score float64
	for _, t := range tokenizer.Tokenize(query) {
		tf := float64(doc.freqs[t])
		if tf == 0 {
			continue
		}
		score += idx.idf(t) * idx.termScore(tf, doc.Length)
	}
	return score
}

// scoreAll computes BM25 scores for every document, zero included.
func (idx *Index) scoreAll(query string) []float64 {
	scores := make([]float64, len(idx.docs))
	if len(idx.docs) == 0 {
		return scores
	}

	for _, t := range tokenizer.Tokenize(query) {
		bm := idx.postings[t]
		if bm == nil {
			continue
		}

		idf := idx.idf(t)

		it := bm.Iterator()
		for it.HasNext() {
			ord := int(it.Next())
			doc := idx.docs[ord]
			tf := float64(doc.freqs[t])
			scores[ord] += idf * idx.termScore(tf, doc.Length)
		}
	}

	return scores
}

// idf computes ln((N - df + 0.5) / (df + 0.5) + 1) for term t.
func (idx *Index) idf(t string) float64 {
	bm := idx.postings[t]
	if bm == nil {
		return 0
	}
	n := float64(len(idx.docs))
	df := float64(bm.GetCardinality())
	return math.Log((n-df+0.5)/(df+0.5) + 1)
}

func (idx *Index) termScore(tf float64, docLen int) float64 {
	avgdl := idx.avgdl
	if avgdl == 0 {
		avgdl = 1.0
	}
	denom := tf + idx.k1*(1-idx.b+idx.b*float64(docLen)/avgdl)
	return tf * (idx.k1 + 1) / denom
}
