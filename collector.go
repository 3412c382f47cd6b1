package ragmark

import (
	"sync/atomic"
	"time"
)

// Collector defines an interface for collecting run statistics.
// Implement this interface to integrate with monitoring systems.
type Collector interface {
	// RecordRetrieve is called after each retrieval.
	// duration is the total time taken, err is nil if successful.
	RecordRetrieve(duration time.Duration, err error)

	// RecordGenerate is called after each answer generation.
	RecordGenerate(duration time.Duration, err error)

	// RecordQuestion is called after each question is evaluated.
	// failed reports whether the question's record carries an error.
	RecordQuestion(duration time.Duration, failed bool)
}

// NoopCollector is a no-op implementation of Collector.
// Use this when run statistics are not needed.
type NoopCollector struct{}

func (NoopCollector) RecordRetrieve(time.Duration, error) {}
func (NoopCollector) RecordGenerate(time.Duration, error) {}
func (NoopCollector) RecordQuestion(time.Duration, bool)  {}

// BasicCollector provides simple in-memory run statistics.
// Useful for debugging and basic monitoring without external dependencies.
type BasicCollector struct {
	RetrieveCount      atomic.Int64
	RetrieveErrors     atomic.Int64
	RetrieveTotalNanos atomic.Int64
	GenerateCount      atomic.Int64
	GenerateErrors     atomic.Int64
	GenerateTotalNanos atomic.Int64
	QuestionCount      atomic.Int64
	QuestionFailures   atomic.Int64
	QuestionTotalNanos atomic.Int64
}

// RecordRetrieve implements Collector.
func (b *BasicCollector) RecordRetrieve(duration time.Duration, err error) {
	b.RetrieveCount.Add(1)
	b.RetrieveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RetrieveErrors.Add(1)
	}
}

// RecordGenerate implements Collector.
func (b *BasicCollector) RecordGenerate(duration time.Duration, err error) {
	b.GenerateCount.Add(1)
	b.GenerateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GenerateErrors.Add(1)
	}
}

// RecordQuestion implements Collector.
func (b *BasicCollector) RecordQuestion(duration time.Duration, failed bool) {
	b.QuestionCount.Add(1)
	b.QuestionTotalNanos.Add(duration.Nanoseconds())
	if failed {
		b.QuestionFailures.Add(1)
	}
}

// Stats returns a snapshot of current statistics.
func (b *BasicCollector) Stats() CollectorStats {
	return CollectorStats{
		RetrieveCount:    b.RetrieveCount.Load(),
		RetrieveErrors:   b.RetrieveErrors.Load(),
		RetrieveAvgNanos: avgNanos(b.RetrieveTotalNanos.Load(), b.RetrieveCount.Load()),
		GenerateCount:    b.GenerateCount.Load(),
		GenerateErrors:   b.GenerateErrors.Load(),
		GenerateAvgNanos: avgNanos(b.GenerateTotalNanos.Load(), b.GenerateCount.Load()),
		QuestionCount:    b.QuestionCount.Load(),
		QuestionFailures: b.QuestionFailures.Load(),
		QuestionAvgNanos: avgNanos(b.QuestionTotalNanos.Load(), b.QuestionCount.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// CollectorStats is a snapshot of BasicCollector state.
type CollectorStats struct {
	RetrieveCount    int64
	RetrieveErrors   int64
	RetrieveAvgNanos int64
	GenerateCount    int64
	GenerateErrors   int64
	GenerateAvgNanos int64
	QuestionCount    int64
	QuestionFailures int64
	QuestionAvgNanos int64
}
