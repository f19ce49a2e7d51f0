// Package observability provides structured logging, metrics, and
// distributed tracing helpers for pipeline runs.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
// Returns a new logger with run_id and stage_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "run-123", "generate_faq")
//	enriched.Info("doing work") // includes run_id, stage_id
func EnrichLogger(logger *slog.Logger, runID, stageID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("stage_id", stageID),
	)
}

// LogRunStart logs the start of a pipeline run.
func LogRunStart(logger *slog.Logger, runID string, stageCount int) {
	if logger == nil {
		return
	}
	logger.Info("pipeline run starting",
		slog.String("run_id", runID),
		slog.Int("stages", stageCount),
	)
}

// LogRunComplete logs successful pipeline run completion.
func LogRunComplete(logger *slog.Logger, runID string, durationMs float64, stageCount int) {
	if logger == nil {
		return
	}
	logger.Info("pipeline run completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("stages_executed", stageCount),
	)
}

// LogRunError logs pipeline run failure.
func LogRunError(logger *slog.Logger, runID string, err error, durationMs float64, lastStage string) {
	if logger == nil {
		return
	}
	logger.Error("pipeline run failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_stage", lastStage),
	)
}

// LogStageStart logs stage execution start.
func LogStageStart(logger *slog.Logger, stageID string) {
	if logger == nil {
		return
	}
	logger.Debug("stage starting",
		slog.String("stage_id", stageID),
	)
}

// LogStageComplete logs successful stage completion.
func LogStageComplete(logger *slog.Logger, stageID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("stage completed",
		slog.String("stage_id", stageID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStageError logs stage execution error.
func LogStageError(logger *slog.Logger, stageID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("stage failed",
		slog.String("stage_id", stageID),
		slog.String("error", err.Error()),
	)
}

// LogJournal logs a journal entry write.
func LogJournal(logger *slog.Logger, stageID string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("journal entry saved",
		slog.String("stage_id", stageID),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogJournalError logs a journal failure (non-fatal).
func LogJournalError(logger *slog.Logger, stageID string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal write failed",
		slog.String("stage_id", stageID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogFallback logs that a stage fell back to template content.
func LogFallback(logger *slog.Logger, stageID, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("stage using fallback content",
		slog.String("stage_id", stageID),
		slog.String("reason", reason),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
