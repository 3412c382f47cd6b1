package ragmark

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ragmark/dense"
	"github.com/hupe1980/ragmark/fusion"
	"github.com/hupe1980/ragmark/lexical"
)

var (
	// ErrInvalidTopK is returned when a negative top k is requested.
	ErrInvalidTopK = errors.New("top k must be non-negative")

	// ErrInvalidAlpha is returned when a fusion weight falls outside [0, 1].
	ErrInvalidAlpha = errors.New("fusion weight must be between 0 and 1")

	// ErrUnknownMode is returned for a retrieval or fusion mode that does
	// not exist.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrNoEmbedder is returned when dense or hybrid retrieval is requested
	// without an embedder.
	ErrNoEmbedder = errors.New("dense retrieval requires an embedder")
)

// CapabilityError marks the failure of an external capability (corpus
// source, embedder, answer generator) while handling one question. The
// evaluator surfaces it on the question's record instead of aborting
// the run.
//
// The underlying error can be accessed via errors.Unwrap.
type CapabilityError struct {
	Stage      string
	QuestionID string
	Err        error
}

func (e *CapabilityError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed for question %q: %v", e.Stage, e.QuestionID, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Argument normalization across the retrieval packages.
	if errors.Is(err, lexical.ErrInvalidTopK) || errors.Is(err, dense.ErrInvalidTopK) {
		return fmt.Errorf("%w: %w", ErrInvalidTopK, err)
	}
	if errors.Is(err, fusion.ErrInvalidAlpha) {
		return fmt.Errorf("%w: %w", ErrInvalidAlpha, err)
	}
	if errors.Is(err, fusion.ErrUnknownMode) {
		return fmt.Errorf("%w: %w", ErrUnknownMode, err)
	}

	return err
}
