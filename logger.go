package ragmark

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ragmark-specific helpers so every
// operation logs the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithQuestionID adds a question_id field to the logger.
func (l *Logger) WithQuestionID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("question_id", id),
	}
}

// WithMode adds a retrieval mode field to the logger.
func (l *Logger) WithMode(mode Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode.String()),
	}
}

// LogIndexBuild logs corpus indexing.
func (l *Logger) LogIndexBuild(ctx context.Context, docs int, dense bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"docs", docs,
			"dense", dense,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index built",
			"docs", docs,
			"dense", dense,
		)
	}
}

// LogRetrieve logs a retrieval operation.
func (l *Logger) LogRetrieve(ctx context.Context, mode Mode, topK, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "retrieve failed",
			"mode", mode.String(),
			"top_k", topK,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "retrieve completed",
			"mode", mode.String(),
			"top_k", topK,
			"results", results,
		)
	}
}

// LogGenerate logs an answer generation.
func (l *Logger) LogGenerate(ctx context.Context, generator string, contexts int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generate failed",
			"generator", generator,
			"contexts", contexts,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "generate completed",
			"generator", generator,
			"contexts", contexts,
		)
	}
}

// LogQuestionDone logs the evaluation outcome of one question.
func (l *Logger) LogQuestionDone(ctx context.Context, questionID string, score float64, tags []string, err error) {
	if err != nil {
		l.WarnContext(ctx, "question failed",
			"question_id", questionID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "question evaluated",
			"question_id", questionID,
			"score", score,
			"tags", tags,
		)
	}
}

// LogRunDone logs the completion of an evaluation run.
func (l *Logger) LogRunDone(ctx context.Context, runID string, items, errors int, avgScore float64) {
	if errors > 0 {
		l.WarnContext(ctx, "run completed with failures",
			"run_id", runID,
			"items", items,
			"errors", errors,
			"avg_score", avgScore,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"run_id", runID,
			"items", items,
			"avg_score", avgScore,
		)
	}
}
