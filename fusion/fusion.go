// Package fusion combines rankings produced by different retrievers
// into a single ranking.
//
// Two strategies are provided: a weighted linear combination of raw
// scores and reciprocal-rank fusion, which only looks at positions.
// Neither strategy normalizes scores, so linear fusion assumes both
// inputs are on a comparable scale.
package fusion

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/hupe1980/ragmark/model"
)

// DefaultK is the dampening constant for reciprocal-rank fusion.
const DefaultK = 60

var (
	// ErrInvalidAlpha is returned when the linear fusion weight is
	// outside the closed interval [0, 1].
	ErrInvalidAlpha = errors.New("fusion weight must be between 0 and 1")

	// ErrUnknownMode is returned by ParseMode for unrecognized names.
	ErrUnknownMode = errors.New("unknown fusion mode")
)

// Mode selects the fusion strategy.
type Mode uint8

const (
	// ModeLinear combines raw scores as alpha*a + (1-alpha)*b.
	ModeLinear Mode = iota
	// ModeRRF combines rankings by reciprocal rank.
	ModeRRF
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeRRF:
		return "rrf"
	default:
		return "unknown"
	}
}

// ParseMode parses a fusion mode name as it appears in configuration.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return ModeLinear, nil
	case "rrf":
		return ModeRRF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Linear fuses two rankings by weighted sum over the union of their
// document IDs: alpha*a + (1-alpha)*b, with a missing side contributing
// zero. The result is sorted by fused score descending; documents with
// equal scores keep the order in which they were first encountered,
// scanning a before b.
func Linear(a, b model.Ranking, alpha float64) (model.Ranking, error) {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAlpha, alpha)
	}

	scores := make(map[string]float64, len(a)+len(b))
	order := make([]string, 0, len(a)+len(b))

	for _, sd := range a {
		if _, ok := scores[sd.DocID]; !ok {
			order = append(order, sd.DocID)
		}
		scores[sd.DocID] += alpha * sd.Score
	}

	for _, sd := range b {
		if _, ok := scores[sd.DocID]; !ok {
			order = append(order, sd.DocID)
		}
		scores[sd.DocID] += (1 - alpha) * sd.Score
	}

	return collect(order, scores), nil
}

// RRF fuses two rankings by reciprocal rank: each document scores
// sum(1/(k+rank+1)) over the rankings it appears in, rank counted from
// zero. Raw scores are ignored. A k below 1 falls back to DefaultK.
func RRF(a, b model.Ranking, k int) model.Ranking {
	if k < 1 {
		k = DefaultK
	}

	scores := make(map[string]float64, len(a)+len(b))
	order := make([]string, 0, len(a)+len(b))

	for _, ranking := range []model.Ranking{a, b} {
		for rank, sd := range ranking {
			if _, ok := scores[sd.DocID]; !ok {
				order = append(order, sd.DocID)
			}
			scores[sd.DocID] += 1.0 / float64(k+rank+1)
		}
	}

	return collect(order, scores)
}

func collect(order []string, scores map[string]float64) model.Ranking {
	fused := make(model.Ranking, 0, len(order))
	for _, id := range order {
		fused = append(fused, model.ScoredDoc{DocID: id, Score: scores[id]})
	}

	slices.SortStableFunc(fused, func(x, y model.ScoredDoc) int {
		return cmp.Compare(y.Score, x.Score)
	})

	return fused
}
